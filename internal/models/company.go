package models

import (
	"time"

	"gorm.io/gorm"
)

type Company struct {
	ID        uint   `gorm:"column:empresa_id;primaryKey" json:"id"`
	TradeName string `gorm:"column:nome_fantasia;size:255;not null" json:"trade_name"`
	Slug      string `gorm:"column:slug;size:255;not null" json:"slug"`
	Active    bool   `gorm:"column:ativo;default:true" json:"active"`

	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Company) TableName() string { return "empresas" }
