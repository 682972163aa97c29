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

// UpdateAppointmentInput: campos nil não são alterados. ClearValue e
// ClearNotes apagam valor e observações.
type UpdateAppointmentInput struct {
	StaffID   *uint
	ServiceID *uint

	Date      *string
	StartTime *string
	EndTime   *string

	Value  *float64
	Notes  *string
	Status *string

	ClearValue bool
	ClearNotes bool
}

func (in UpdateAppointmentInput) reschedules() bool {
	return in.StartTime != nil || in.EndTime != nil || in.StaffID != nil || in.Date != nil
}

type UpdateAppointment struct {
	repo   domain.Repository
	policy AccessPolicy
	writer slotWriter
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewUpdateAppointment(
	repo domain.Repository,
	policy AccessPolicy,
	locker lock.Locker,
	audit *audit.Dispatcher,
	now func() time.Time,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:   repo,
		policy: policy,
		writer: slotWriter{repo: repo, locker: locker},
		audit:  audit,
		now:    now,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	principal accessdomain.Principal,
	appointmentID uint,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Carrega + acesso
	// --------------------------------------------------
	ap, err := loadAuthorized(ctx, uc.repo, uc.policy, appointmentID, principal)
	if err != nil {
		return nil, err
	}

	current := domain.Status(ap.Status)

	// concluído não aceita nenhuma edição, nem consulta de conflito
	if err := domain.CanUpdate(current); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Valores efetivos
	// --------------------------------------------------
	staffID := ap.StaffID
	if in.StaffID != nil {
		staffID = *in.StaffID
	}

	date := ap.Date
	if in.Date != nil {
		if date, err = domain.ParseDate(*in.Date); err != nil {
			return nil, err
		}
	}

	start := ap.StartTime
	if in.StartTime != nil {
		if start, err = domain.ParseClock("horário de início", *in.StartTime); err != nil {
			return nil, err
		}
	}

	end := ap.EndTime
	if in.EndTime != nil {
		if end, err = domain.ParseClock("horário de fim", *in.EndTime); err != nil {
			return nil, err
		}
	}

	if in.reschedules() {
		if err := domain.ValidateWindow(start, end); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 3️⃣ Status (mesma máquina de estados do PATCH)
	// --------------------------------------------------
	target := current
	if in.Status != nil {
		s, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		if s != current {
			if err := domain.CanTransition(current, s); err != nil {
				return nil, err
			}
		}
		target = s
	}
	reactivates := current == domain.StatusCancelled && target == domain.StatusScheduled

	// --------------------------------------------------
	// 4️⃣ Funcionário / serviço da mesma empresa
	// --------------------------------------------------
	if err := validateLinks(ctx, uc.repo, ap.CompanyID, links{
		StaffID:   in.StaffID,
		ServiceID: in.ServiceID,
	}); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Aplica + grava
	// --------------------------------------------------
	before := *ap

	ap.StaffID = staffID
	ap.Date = date
	ap.StartTime = start
	ap.EndTime = end
	ap.Status = string(target)
	if in.ServiceID != nil {
		ap.ServiceID = *in.ServiceID
	}
	switch {
	case in.Value != nil:
		ap.Value = in.Value
	case in.ClearValue:
		ap.Value = nil
	}
	switch {
	case in.Notes != nil:
		ap.Notes = in.Notes
	case in.ClearNotes:
		ap.Notes = nil
	}

	id := ap.ID
	q := domain.ConflictQuery{
		StaffID:   staffID,
		Date:      date,
		Start:     start,
		End:       end,
		ExcludeID: &id,
	}
	checkConflicts := in.reschedules() || reactivates

	keys := []string{domain.SlotKey(staffID, date)}
	if checkConflicts {
		keys = append(keys, domain.SlotKey(before.StaffID, before.Date))
	}

	err = uc.writer.within(ctx, keys, func(tx domain.Repository) error {
		if checkConflicts {
			if err := assertNoConflict(ctx, tx, q); err != nil {
				return err
			}
		}

		ap.UpdatedAt = uc.now()
		return tx.UpdateAppointment(ctx, ap, before.UpdatedAt)
	})
	if err := uc.writer.finish(ctx, "update appointment", q, err); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		UserID:   principal.UserID,
		Action:   "agendamento_atualizado",
		Table:    auditTable,
		RecordID: &ap.ID,
		Before:   before,
		After:    *ap,
	})

	return ap, nil
}
