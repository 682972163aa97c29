package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/agenda-scheduler/internal/audit"
	accessdomain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
)

type ExcludeAppointment struct {
	repo   domain.Repository
	policy AccessPolicy
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewExcludeAppointment(
	repo domain.Repository,
	policy AccessPolicy,
	audit *audit.Dispatcher,
	now func() time.Time,
) *ExcludeAppointment {
	return &ExcludeAppointment{
		repo:   repo,
		policy: policy,
		audit:  audit,
		now:    now,
	}
}

// Execute faz a exclusão lógica (deleted_at); só a partir de cancelado.
func (uc *ExcludeAppointment) Execute(
	ctx context.Context,
	principal accessdomain.Principal,
	appointmentID uint,
) error {

	ap, err := loadAuthorized(ctx, uc.repo, uc.policy, appointmentID, principal)
	if err != nil {
		return err
	}

	before := *ap
	if err := domain.Exclude(ap, uc.now()); err != nil {
		return err
	}

	if err := uc.repo.SoftDeleteAppointment(ctx, ap, before.UpdatedAt); err != nil {
		if rerr := writeRace(err); rerr != nil {
			return rerr
		}
		return httperr.Persistence("delete appointment", err)
	}

	uc.audit.Dispatch(ctx, audit.Event{
		UserID:   principal.UserID,
		Action:   "agendamento_excluido",
		Table:    auditTable,
		RecordID: &ap.ID,
		Before:   before,
	})

	return nil
}
