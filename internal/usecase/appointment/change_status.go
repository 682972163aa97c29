package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/agenda-scheduler/internal/audit"
	accessdomain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/lock"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

type ChangeStatus struct {
	repo   domain.Repository
	policy AccessPolicy
	writer slotWriter
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewChangeStatus(
	repo domain.Repository,
	policy AccessPolicy,
	locker lock.Locker,
	audit *audit.Dispatcher,
	now func() time.Time,
) *ChangeStatus {
	return &ChangeStatus{
		repo:   repo,
		policy: policy,
		writer: slotWriter{repo: repo, locker: locker},
		audit:  audit,
		now:    now,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	principal accessdomain.Principal,
	appointmentID uint,
	rawStatus string,
) (*models.Appointment, error) {

	ap, err := loadAuthorized(ctx, uc.repo, uc.policy, appointmentID, principal)
	if err != nil {
		return nil, err
	}

	to, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	before := *ap
	if err := domain.Transition(ap, to, uc.now()); err != nil {
		return nil, err
	}

	id := ap.ID
	q := domain.ConflictQuery{
		StaffID:   ap.StaffID,
		Date:      ap.Date,
		Start:     ap.StartTime,
		End:       ap.EndTime,
		ExcludeID: &id,
	}

	// remarcar um cancelado: o horário pode ter sido ocupado nesse meio tempo
	if domain.Status(before.Status) == domain.StatusCancelled {
		err = uc.writer.within(ctx, []string{domain.SlotKey(ap.StaffID, ap.Date)}, func(tx domain.Repository) error {
			if err := assertNoConflict(ctx, tx, q); err != nil {
				return err
			}
			return tx.UpdateAppointment(ctx, ap, before.UpdatedAt)
		})
	} else {
		err = uc.repo.UpdateAppointment(ctx, ap, before.UpdatedAt)
	}
	if err := uc.writer.finish(ctx, "update appointment status", q, err); err != nil {
		return nil, err
	}

	action := "status_alterado"
	if to == domain.StatusCancelled {
		action = "agendamento_cancelado"
	}

	uc.audit.Dispatch(ctx, audit.Event{
		UserID:   principal.UserID,
		Action:   action,
		Table:    auditTable,
		RecordID: &ap.ID,
		Before:   map[string]string{"status": before.Status},
		After:    map[string]string{"status": ap.Status},
	})

	return ap, nil
}

// CancelAppointment é a transição para cancelado.
type CancelAppointment struct {
	status *ChangeStatus
}

func NewCancelAppointment(status *ChangeStatus) *CancelAppointment {
	return &CancelAppointment{status: status}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	principal accessdomain.Principal,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.status.Execute(ctx, principal, appointmentID, string(domain.StatusCancelled))
}
