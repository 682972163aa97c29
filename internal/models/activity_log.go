package models

import (
	"time"

	"gorm.io/datatypes"
)

type ActivityLog struct {
	ID uint `gorm:"column:log_id;primaryKey" json:"id"`

	UserID   uint   `gorm:"column:usuario_id;not null" json:"user_id"`
	Action   string `gorm:"column:acao;size:100;not null" json:"action"`
	Table    string `gorm:"column:tabela_afetada;size:50" json:"table"`
	RecordID *uint  `gorm:"column:registro_id" json:"record_id"`

	Before datatypes.JSON `gorm:"column:dados_anteriores;type:jsonb" json:"before"`
	After  datatypes.JSON `gorm:"column:dados_novos;type:jsonb" json:"after"`

	IPAddress string `gorm:"column:ip_address;size:45" json:"ip_address"`
	UserAgent string `gorm:"column:user_agent;type:text" json:"user_agent"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ActivityLog) TableName() string { return "logs_atividades" }
