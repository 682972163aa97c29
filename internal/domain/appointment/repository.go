package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

var (
	ErrRecordNotFound = errors.New("record not found")

	// ErrSlotTaken indica que o banco recusou a escrita por sobreposição
	// (constraint de exclusão).
	ErrSlotTaken = errors.New("slot already taken")

	// ErrStaleRecord: a linha mudou depois da leitura (updated_at diferente).
	ErrStaleRecord = errors.New("record changed concurrently")
)

//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mock_appointment

type Repository interface {
	// -------- Transaction --------
	WithinTransaction(
		ctx context.Context,
		fn func(repo Repository) error,
	) error

	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// Update e SoftDelete só gravam linhas ativas cujo updated_at ainda é
	// seen; caso contrário ErrRecordNotFound ou ErrStaleRecord.
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		seen time.Time,
	) error

	SoftDeleteAppointment(
		ctx context.Context,
		ap *models.Appointment,
		seen time.Time,
	) error

	FindConflicts(
		ctx context.Context,
		q ConflictQuery,
	) ([]models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		f Filter,
	) ([]models.Appointment, error)

	// -------- Related entities --------
	GetStaff(
		ctx context.Context,
		id uint,
	) (*models.Staff, error)

	GetClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)
}
