package access

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

type AppointmentFinder interface {
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
}

// Policy decide se um principal pode agir sobre uma empresa ou agendamento.
type Policy struct {
	repo         domain.Repository
	appointments AppointmentFinder
}

func NewPolicy(repo domain.Repository, appointments AppointmentFinder) *Policy {
	return &Policy{
		repo:         repo,
		appointments: appointments,
	}
}

// HasCompanyAccess: administrador OU funcionário da empresa OU cliente da empresa.
func (p *Policy) HasCompanyAccess(
	ctx context.Context,
	companyID uint,
	principal domain.Principal,
) (bool, error) {

	isAdmin, err := p.repo.IsAdministrator(ctx, principal.PersonID)
	if err != nil {
		return false, httperr.Persistence("check administrator", err)
	}
	if isAdmin {
		return true, nil
	}

	isStaff, err := p.repo.IsStaffOfCompany(ctx, principal.PersonID, companyID)
	if err != nil {
		return false, httperr.Persistence("check staff link", err)
	}
	if isStaff {
		return true, nil
	}

	isClient, err := p.repo.IsClientOfCompany(ctx, principal.PersonID, companyID)
	if err != nil {
		return false, httperr.Persistence("check client link", err)
	}
	return isClient, nil
}

// HasAppointmentAccess exige acesso à empresa do agendamento e que o principal
// seja o funcionário ou o cliente do agendamento (ou administrador).
func (p *Policy) HasAppointmentAccess(
	ctx context.Context,
	appointmentID uint,
	principal domain.Principal,
) (bool, error) {

	ap, err := p.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointment.ErrRecordNotFound) {
			return false, httperr.NotFoundErr("appointment_not_found", "Agendamento não encontrado.")
		}
		return false, httperr.Persistence("load appointment", err)
	}

	ok, err := p.HasCompanyAccess(ctx, ap.CompanyID, principal)
	if err != nil || !ok {
		return false, err
	}

	isStaff, err := p.repo.IsStaffRecord(ctx, principal.PersonID, ap.StaffID)
	if err != nil {
		return false, httperr.Persistence("check appointment staff", err)
	}
	if isStaff {
		return true, nil
	}

	isClient, err := p.repo.IsClientRecord(ctx, principal.PersonID, ap.ClientID)
	if err != nil {
		return false, httperr.Persistence("check appointment client", err)
	}
	if isClient {
		return true, nil
	}

	// redundante com HasCompanyAccess, mas avaliado de forma independente
	isAdmin, err := p.repo.IsAdministrator(ctx, principal.PersonID)
	if err != nil {
		return false, httperr.Persistence("check administrator", err)
	}
	return isAdmin, nil
}

// AccessibleCompanies devolve o escopo de empresas visíveis ao principal.
func (p *Policy) AccessibleCompanies(
	ctx context.Context,
	principal domain.Principal,
) (domain.Scope, error) {

	isAdmin, err := p.repo.IsAdministrator(ctx, principal.PersonID)
	if err != nil {
		return domain.Scope{}, httperr.Persistence("check administrator", err)
	}
	if isAdmin {
		return domain.Scope{All: true}, nil
	}

	ids, err := p.repo.CompaniesOfPerson(ctx, principal.PersonID)
	if err != nil {
		return domain.Scope{}, httperr.Persistence("list person companies", err)
	}
	return domain.Scope{CompanyIDs: ids}, nil
}
