package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Agendamento. Data e horários são locais da empresa, sem fuso.
type Appointment struct {
	ID uint `gorm:"column:agendamento_id;primaryKey" json:"id"`

	CompanyID uint `gorm:"column:empresa_id;not null;index" json:"company_id"`
	ClientID  uint `gorm:"column:cliente_id;not null;index" json:"client_id"`
	StaffID   uint `gorm:"column:funcionario_id;not null;index:idx_agendamentos_agenda,priority:1" json:"staff_id"`
	ServiceID uint `gorm:"column:servico_id;not null" json:"service_id"`

	Date      datatypes.Date `gorm:"column:data_agendamento;type:date;not null;index:idx_agendamentos_agenda,priority:2" json:"date"`
	StartTime datatypes.Time `gorm:"column:horario_inicio;type:time;not null" json:"start_time"`
	EndTime   datatypes.Time `gorm:"column:horario_fim;type:time;not null" json:"end_time"`

	Status string `gorm:"column:status;size:20;not null;default:'agendado'" json:"status"`

	Value *float64 `gorm:"column:valor;type:decimal(10,2)" json:"value"`
	Notes *string  `gorm:"column:observacoes;type:text" json:"notes"`

	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Appointment) TableName() string { return "agendamentos" }
