package models

import (
	"time"

	"gorm.io/gorm"
)

// Cliente de uma empresa (uma pessoa pode ser cliente de várias)
type Client struct {
	ID        uint    `gorm:"column:cliente_id;primaryKey" json:"id"`
	PersonID  uint    `gorm:"column:pessoa_id;not null;index" json:"person_id"`
	CompanyID uint    `gorm:"column:empresa_id;not null;index" json:"company_id"`
	Notes     *string `gorm:"column:observacoes;type:text" json:"notes"`

	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Client) TableName() string { return "clientes" }
