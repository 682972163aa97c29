package appointment

import (
	"context"

	accessdomain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

// HistoryReader é implementado por audit.Logger.
type HistoryReader interface {
	History(ctx context.Context, table string, recordID uint, page, limit int) ([]models.ActivityLog, int64, error)
}

const maxHistoryLimit = 200

type HistoryPage struct {
	Page  int
	Limit int
	Total int64
	Logs  []models.ActivityLog
}

type AppointmentHistory struct {
	repo    domain.Repository
	policy  AccessPolicy
	history HistoryReader
}

func NewAppointmentHistory(
	repo domain.Repository,
	policy AccessPolicy,
	history HistoryReader,
) *AppointmentHistory {
	return &AppointmentHistory{
		repo:    repo,
		policy:  policy,
		history: history,
	}
}

func (uc *AppointmentHistory) Execute(
	ctx context.Context,
	principal accessdomain.Principal,
	appointmentID uint,
	page, limit int,
) (*HistoryPage, error) {

	if page <= 0 {
		page = 1
	}
	switch {
	case limit <= 0:
		limit = 50
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	if _, err := loadAuthorized(ctx, uc.repo, uc.policy, appointmentID, principal); err != nil {
		return nil, err
	}

	logs, total, err := uc.history.History(ctx, auditTable, appointmentID, page, limit)
	if err != nil {
		return nil, httperr.Persistence("list activity log", err)
	}

	return &HistoryPage{
		Page:  page,
		Limit: limit,
		Total: total,
		Logs:  logs,
	}, nil
}
