package appointment

import (
	"context"

	accessdomain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

type ClientAppointmentsInput struct {
	Status   *string
	DateFrom *string
	DateTo   *string
}

type ClientAppointments struct {
	repo   domain.Repository
	policy AccessPolicy
}

func NewClientAppointments(repo domain.Repository, policy AccessPolicy) *ClientAppointments {
	return &ClientAppointments{repo: repo, policy: policy}
}

// Execute: intervalo inclusivo (ambos, só início ou só fim).
// Ordem: data DESC, início DESC.
func (uc *ClientAppointments) Execute(
	ctx context.Context,
	principal *accessdomain.Principal,
	clientID uint,
	in ClientAppointmentsInput,
) ([]models.Appointment, error) {

	f := domain.Filter{
		ClientID: &clientID,
		Order:    domain.OrderDateDescStartDesc,
	}
	if err := parseCommonFilter(&f, in.Status, in.DateFrom, in.DateTo); err != nil {
		return nil, err
	}

	client, err := getClient(ctx, uc.repo, clientID)
	if err != nil {
		return nil, err
	}

	if principal != nil {
		if err := requireCompanyAccess(
			ctx, uc.policy, client.CompanyID, *principal,
			"client_company_access_denied", "Acesso negado à empresa do cliente.",
		); err != nil {
			return nil, err
		}
	}

	aps, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, httperr.Persistence("list client appointments", err)
	}
	return aps, nil
}
