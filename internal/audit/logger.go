package audit

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

// Logger grava eventos em logs_atividades.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Record(ctx context.Context, ev Event) error {
	row := ToActivityLog(ev)
	return l.db.WithContext(ctx).Create(&row).Error
}

func ToActivityLog(ev Event) models.ActivityLog {
	return models.ActivityLog{
		UserID:    ev.UserID,
		Action:    ev.Action,
		Table:     ev.Table,
		RecordID:  ev.RecordID,
		Before:    snapshot(ev.Before),
		After:     snapshot(ev.After),
		IPAddress: ev.IPAddress,
		UserAgent: ev.UserAgent,
	}
}

func snapshot(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

var _ Recorder = (*Logger)(nil)

// History lista os eventos de um registro, mais recentes primeiro.
func (l *Logger) History(
	ctx context.Context,
	table string,
	recordID uint,
	page, limit int,
) ([]models.ActivityLog, int64, error) {

	q := l.db.WithContext(ctx).
		Model(&models.ActivityLog{}).
		Where("tabela_afetada = ? AND registro_id = ?", table, recordID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := []models.ActivityLog{}
	if err := q.
		Order("created_at DESC, log_id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
