package appointment

import (
	"context"
	"errors"
	"sort"

	accessdomain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/lock"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

// AccessPolicy é implementada por usecase/access.Policy.
type AccessPolicy interface {
	HasCompanyAccess(ctx context.Context, companyID uint, principal accessdomain.Principal) (bool, error)
	HasAppointmentAccess(ctx context.Context, appointmentID uint, principal accessdomain.Principal) (bool, error)
	AccessibleCompanies(ctx context.Context, principal accessdomain.Principal) (accessdomain.Scope, error)
}

const auditTable = "agendamentos"

const conflictMessage = "Já existe um agendamento para este funcionário neste horário."

// ======================================================
// Loading + authorization
// ======================================================

func loadAuthorized(
	ctx context.Context,
	repo domain.Repository,
	policy AccessPolicy,
	id uint,
	principal accessdomain.Principal,
) (*models.Appointment, error) {

	ap, err := getAppointment(ctx, repo, id)
	if err != nil {
		return nil, err
	}

	ok, err := policy.HasAppointmentAccess(ctx, id, principal)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.AccessDenied(
			"appointment_access_denied",
			"Acesso negado ao agendamento.",
		)
	}

	return ap, nil
}

func getAppointment(ctx context.Context, repo domain.Repository, id uint) (*models.Appointment, error) {
	ap, err := repo.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("appointment_not_found", "Agendamento não encontrado.")
		}
		return nil, httperr.Persistence("load appointment", err)
	}
	return ap, nil
}

func requireCompanyAccess(
	ctx context.Context,
	policy AccessPolicy,
	companyID uint,
	principal accessdomain.Principal,
	code, message string,
) error {
	ok, err := policy.HasCompanyAccess(ctx, companyID, principal)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.AccessDenied(code, message)
	}
	return nil
}

// ======================================================
// Related entities
// ======================================================

func getStaff(ctx context.Context, repo domain.Repository, id uint) (*models.Staff, error) {
	s, err := repo.GetStaff(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("staff_not_found", "Funcionário não encontrado.")
		}
		return nil, httperr.Persistence("load staff", err)
	}
	return s, nil
}

func getClient(ctx context.Context, repo domain.Repository, id uint) (*models.Client, error) {
	c, err := repo.GetClient(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("client_not_found", "Cliente não encontrado.")
		}
		return nil, httperr.Persistence("load client", err)
	}
	return c, nil
}

func getService(ctx context.Context, repo domain.Repository, id uint) (*models.Service, error) {
	s, err := repo.GetService(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("service_not_found", "Serviço não encontrado.")
		}
		return nil, httperr.Persistence("load service", err)
	}
	return s, nil
}

// links: nil pula a verificação daquele vínculo
type links struct {
	ClientID  *uint
	StaffID   *uint
	ServiceID *uint
}

// validateLinks: cada registro precisa existir (NotFound) e pertencer à
// empresa do agendamento (InvalidInput).
func validateLinks(ctx context.Context, repo domain.Repository, companyID uint, l links) error {
	if l.ClientID != nil {
		c, err := getClient(ctx, repo, *l.ClientID)
		if err != nil {
			return err
		}
		if c.CompanyID != companyID {
			return httperr.InvalidInput(
				"client_company_mismatch",
				"O cliente não pertence à empresa do agendamento.",
			)
		}
	}

	if l.StaffID != nil {
		s, err := getStaff(ctx, repo, *l.StaffID)
		if err != nil {
			return err
		}
		if s.CompanyID != companyID {
			return httperr.InvalidInput(
				"staff_company_mismatch",
				"O funcionário não pertence à empresa do agendamento.",
			)
		}
	}

	if l.ServiceID != nil {
		s, err := getService(ctx, repo, *l.ServiceID)
		if err != nil {
			return err
		}
		if s.CompanyID != companyID {
			return httperr.InvalidInput(
				"service_company_mismatch",
				"O serviço não pertence à empresa do agendamento.",
			)
		}
	}

	return nil
}

// ======================================================
// Conflicts + guarded writes
// ======================================================

func conflictError(conflicts []models.Appointment) error {
	if conflicts == nil {
		conflicts = []models.Appointment{}
	}
	return httperr.Conflict("time_conflict", conflictMessage, conflicts)
}

func assertNoConflict(ctx context.Context, repo domain.Repository, q domain.ConflictQuery) error {
	conflicts, err := repo.FindConflicts(ctx, q)
	if err != nil {
		return httperr.Persistence("find conflicts", err)
	}
	if len(conflicts) > 0 {
		return conflictError(conflicts)
	}
	return nil
}

// slotWriter trava a agenda (funcionário, dia) e executa fn numa transação.
type slotWriter struct {
	repo   domain.Repository
	locker lock.Locker
}

func (w slotWriter) within(
	ctx context.Context,
	keys []string,
	fn func(tx domain.Repository) error,
) error {

	// ordem fixa para não haver deadlock entre duas remarcações
	keys = uniqueSorted(keys)

	for _, key := range keys {
		release, err := w.locker.Acquire(ctx, key)
		if err != nil {
			if errors.Is(err, lock.ErrNotAcquired) {
				return httperr.Conflict(
					"slot_busy",
					"A agenda deste funcionário está sendo alterada. Tente novamente.",
					nil,
				)
			}
			return httperr.Persistence("acquire slot lock", err)
		}
		defer release()
	}

	return w.repo.WithinTransaction(ctx, fn)
}

// finish traduz o erro de uma escrita. ErrSlotTaken vem da constraint de
// exclusão: os conflitos são consultados de novo para o payload.
func (w slotWriter) finish(ctx context.Context, op string, q domain.ConflictQuery, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrSlotTaken) {
		conflicts, qerr := w.repo.FindConflicts(ctx, q)
		if qerr != nil {
			return conflictError(nil)
		}
		return conflictError(conflicts)
	}

	if _, ok := httperr.As(err); ok {
		return err
	}
	if ferr := writeRace(err); ferr != nil {
		return ferr
	}
	return httperr.Persistence(op, err)
}

// writeRace traduz uma escrita recusada porque a linha foi excluída ou
// alterada depois da leitura. Devolve nil para os demais erros.
func writeRace(err error) error {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return httperr.NotFoundErr("appointment_not_found", "Agendamento não encontrado.")
	case errors.Is(err, domain.ErrStaleRecord):
		return httperr.Conflict(
			"appointment_changed",
			"O agendamento foi alterado por outra operação. Tente novamente.",
			nil,
		)
	}
	return nil
}

func uniqueSorted(keys []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
