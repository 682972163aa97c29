package appointment

import (
	"context"

	accessdomain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

// ListAppointmentsInput: todos opcionais, combinados com AND.
type ListAppointmentsInput struct {
	Status    *string
	DateFrom  *string
	DateTo    *string
	ClientID  *uint
	StaffID   *uint
	ServiceID *uint
	CompanyID *uint
}

type ListAppointments struct {
	repo   domain.Repository
	policy AccessPolicy
}

func NewListAppointments(repo domain.Repository, policy AccessPolicy) *ListAppointments {
	return &ListAppointments{repo: repo, policy: policy}
}

// All lista tudo o que o principal enxerga.
func (uc *ListAppointments) All(
	ctx context.Context,
	principal accessdomain.Principal,
) ([]models.Appointment, error) {
	return uc.Execute(ctx, principal, ListAppointmentsInput{})
}

// Execute aplica os filtros dentro das empresas acessíveis ao principal.
// Ordem: data DESC, início ASC.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	principal accessdomain.Principal,
	in ListAppointmentsInput,
) ([]models.Appointment, error) {

	f := domain.Filter{
		ClientID:  in.ClientID,
		StaffID:   in.StaffID,
		ServiceID: in.ServiceID,
		CompanyID: in.CompanyID,
		Order:     domain.OrderDateDescStartAsc,
	}

	if err := parseCommonFilter(&f, in.Status, in.DateFrom, in.DateTo); err != nil {
		return nil, err
	}

	scope, err := uc.policy.AccessibleCompanies(ctx, principal)
	if err != nil {
		return nil, err
	}
	if !scope.All {
		f.Scoped = true
		f.CompanyIn = scope.CompanyIDs
	}

	aps, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, httperr.Persistence("list appointments", err)
	}
	return aps, nil
}

func parseCommonFilter(f *domain.Filter, status, from, to *string) error {
	if status != nil {
		s, err := domain.ParseStatus(*status)
		if err != nil {
			return err
		}
		f.Status = &s
	}
	if from != nil {
		d, err := domain.ParseDate(*from)
		if err != nil {
			return err
		}
		f.DateFrom = &d
	}
	if to != nil {
		d, err := domain.ParseDate(*to)
		if err != nil {
			return err
		}
		f.DateTo = &d
	}
	return nil
}
