package appointment

import (
	"context"

	accessdomain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

type FindConflictsInput struct {
	StaffID   uint
	Date      string
	StartTime string
	EndTime   string
	ExcludeID *uint
}

type FindConflicts struct {
	repo   domain.Repository
	policy AccessPolicy
}

func NewFindConflicts(repo domain.Repository, policy AccessPolicy) *FindConflicts {
	return &FindConflicts{repo: repo, policy: policy}
}

// Execute lista os agendamentos que bloqueiam o horário. Sem efeitos colaterais.
func (uc *FindConflicts) Execute(
	ctx context.Context,
	principal *accessdomain.Principal,
	in FindConflictsInput,
) ([]models.Appointment, error) {

	// validação completa antes de qualquer consulta
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

	if principal != nil {
		staff, err := getStaff(ctx, uc.repo, in.StaffID)
		if err != nil {
			return nil, err
		}
		if err := requireCompanyAccess(
			ctx, uc.policy, staff.CompanyID, *principal,
			"staff_company_access_denied", "Acesso negado à empresa do funcionário.",
		); err != nil {
			return nil, err
		}
	}

	conflicts, err := uc.repo.FindConflicts(ctx, domain.ConflictQuery{
		StaffID:   in.StaffID,
		Date:      date,
		Start:     start,
		End:       end,
		ExcludeID: in.ExcludeID,
	})
	if err != nil {
		return nil, httperr.Persistence("find conflicts", err)
	}
	return conflicts, nil
}
