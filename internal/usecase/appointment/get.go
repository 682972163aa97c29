package appointment

import (
	"context"

	accessdomain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

type GetAppointment struct {
	repo   domain.Repository
	policy AccessPolicy
}

func NewGetAppointment(repo domain.Repository, policy AccessPolicy) *GetAppointment {
	return &GetAppointment{repo: repo, policy: policy}
}

// Execute sem principal não verifica acesso (uso interno).
func (uc *GetAppointment) Execute(
	ctx context.Context,
	principal *accessdomain.Principal,
	appointmentID uint,
) (*models.Appointment, error) {
	if principal == nil {
		return getAppointment(ctx, uc.repo, appointmentID)
	}
	return loadAuthorized(ctx, uc.repo, uc.policy, appointmentID, *principal)
}
