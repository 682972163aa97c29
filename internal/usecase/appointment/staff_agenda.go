package appointment

import (
	"context"

	accessdomain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

type StaffAgenda struct {
	repo   domain.Repository
	policy AccessPolicy
}

func NewStaffAgenda(repo domain.Repository, policy AccessPolicy) *StaffAgenda {
	return &StaffAgenda{repo: repo, policy: policy}
}

// Execute devolve a agenda do dia, sem cancelados, por horário de início.
func (uc *StaffAgenda) Execute(
	ctx context.Context,
	principal *accessdomain.Principal,
	staffID uint,
	rawDate string,
) ([]models.Appointment, error) {

	date, err := domain.ParseDate(rawDate)
	if err != nil {
		return nil, err
	}

	staff, err := getStaff(ctx, uc.repo, staffID)
	if err != nil {
		return nil, err
	}

	if principal != nil {
		if err := requireCompanyAccess(
			ctx, uc.policy, staff.CompanyID, *principal,
			"staff_company_access_denied", "Acesso negado à empresa do funcionário.",
		); err != nil {
			return nil, err
		}
	}

	aps, err := uc.repo.ListAppointments(ctx, domain.Filter{
		StaffID:          &staffID,
		DateFrom:         &date,
		DateTo:           &date,
		ExcludeCancelled: true,
		Order:            domain.OrderStartAsc,
	})
	if err != nil {
		return nil, httperr.Persistence("list staff agenda", err)
	}
	return aps, nil
}
