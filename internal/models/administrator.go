package models

import (
	"time"

	"gorm.io/gorm"
)

// Administrador global: acesso a todas as empresas
type Administrator struct {
	ID       uint   `gorm:"column:admin_id;primaryKey" json:"id"`
	PersonID uint   `gorm:"column:pessoa_id;uniqueIndex;not null" json:"person_id"`
	Level    string `gorm:"column:nivel;size:50;default:'super'" json:"level"`
	Active   bool   `gorm:"column:ativo;default:true" json:"active"`

	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Administrator) TableName() string { return "administradores" }
