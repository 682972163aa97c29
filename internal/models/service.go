package models

import (
	"time"

	"gorm.io/gorm"
)

type Service struct {
	ID          uint    `gorm:"column:servico_id;primaryKey" json:"id"`
	CompanyID   uint    `gorm:"column:empresa_id;not null;index" json:"company_id"`
	Name        string  `gorm:"column:nome;size:255;not null" json:"name"`
	DurationMin int     `gorm:"column:duracao_minutos;default:60" json:"duration_min"`
	Price       float64 `gorm:"column:preco;type:decimal(10,2)" json:"price"`
	Active      bool    `gorm:"column:ativo;default:true" json:"active"`

	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Service) TableName() string { return "servicos" }
