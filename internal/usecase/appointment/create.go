package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/agenda-scheduler/internal/audit"
	accessdomain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/lock"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CompanyID uint
	ClientID  uint
	StaffID   uint
	ServiceID uint

	Date      string
	StartTime string
	EndTime   string

	Value *float64
	Notes *string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	policy AccessPolicy
	writer slotWriter
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	policy AccessPolicy,
	locker lock.Locker,
	audit *audit.Dispatcher,
	now func() time.Time,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		policy: policy,
		writer: slotWriter{repo: repo, locker: locker},
		audit:  audit,
		now:    now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	principal accessdomain.Principal,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.CompanyID == 0 || in.ClientID == 0 || in.StaffID == 0 || in.ServiceID == 0 {
		return nil, httperr.InvalidInput(
			"missing_fields",
			"Empresa, cliente, funcionário e serviço são obrigatórios.",
		)
	}

	// --------------------------------------------------
	// 1️⃣ Acesso à empresa
	// --------------------------------------------------
	if err := requireCompanyAccess(
		ctx, uc.policy, in.CompanyID, principal,
		"company_access_denied", "Acesso negado à empresa.",
	); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Data / horários
	// --------------------------------------------------
	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	start, err := domain.ParseClock("horário de início", in.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseClock("horário de fim", in.EndTime)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateWindow(start, end); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Cliente / funcionário / serviço da mesma empresa
	// --------------------------------------------------
	if err := validateLinks(ctx, uc.repo, in.CompanyID, links{
		ClientID:  &in.ClientID,
		StaffID:   &in.StaffID,
		ServiceID: &in.ServiceID,
	}); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Conflito + criação (status sempre inicial)
	// --------------------------------------------------
	ap := &models.Appointment{
		CompanyID: in.CompanyID,
		ClientID:  in.ClientID,
		StaffID:   in.StaffID,
		ServiceID: in.ServiceID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.InitialStatus()),
		Value:     in.Value,
		Notes:     in.Notes,
	}

	q := domain.ConflictQuery{
		StaffID: in.StaffID,
		Date:    date,
		Start:   start,
		End:     end,
	}

	err = uc.writer.within(ctx, []string{domain.SlotKey(in.StaffID, date)}, func(tx domain.Repository) error {
		if err := assertNoConflict(ctx, tx, q); err != nil {
			return err
		}

		now := uc.now()
		ap.CreatedAt = now
		ap.UpdatedAt = now
		return tx.CreateAppointment(ctx, ap)
	})
	if err := uc.writer.finish(ctx, "create appointment", q, err); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(ctx, audit.Event{
		UserID:   principal.UserID,
		Action:   "agendamento_criado",
		Table:    auditTable,
		RecordID: &ap.ID,
		After:    *ap,
	})

	return ap, nil
}
