package models

import (
	"time"

	"gorm.io/gorm"
)

// Funcionário vinculado a uma pessoa e a uma empresa
type Staff struct {
	ID        uint   `gorm:"column:funcionario_id;primaryKey" json:"id"`
	PersonID  uint   `gorm:"column:pessoa_id;not null;index" json:"person_id"`
	CompanyID uint   `gorm:"column:empresa_id;not null;index" json:"company_id"`
	Role      string `gorm:"column:cargo;size:100" json:"role"`
	Active    bool   `gorm:"column:ativo;default:true" json:"active"`

	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Staff) TableName() string { return "funcionarios" }
