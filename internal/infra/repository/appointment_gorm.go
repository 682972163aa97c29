package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

// código do Postgres para violação de constraint de exclusão
const exclusionViolation = "23P01"

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *AppointmentGormRepository) WithinTransaction(
	ctx context.Context,
	fn func(repo domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		First(&ap, "agendamento_id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return translate(r.db.WithContext(ctx).Create(ap).Error)
}

// UpdateAppointment grava todas as colunas editáveis. Nunca insere: linha
// excluída ou alterada depois da leitura não é tocada.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	seen time.Time,
) error {

	res := r.db.WithContext(ctx).
		Model(ap).
		Select("*").
		Omit("agendamento_id", "created_at", "deleted_at").
		Where("deleted_at IS NULL AND updated_at = ?", seen).
		Updates(ap)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return r.missingOrStale(ctx, ap.ID)
	}
	return nil
}

// SoftDeleteAppointment grava o deleted_at já preenchido em ap.
func (r *AppointmentGormRepository) SoftDeleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
	seen time.Time,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("agendamento_id = ? AND deleted_at IS NULL AND updated_at = ?", ap.ID, seen).
		Update("deleted_at", ap.DeletedAt)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return r.missingOrStale(ctx, ap.ID)
	}
	return nil
}

// missingOrStale explica uma escrita que não afetou nenhuma linha.
func (r *AppointmentGormRepository) missingOrStale(ctx context.Context, id uint) error {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("agendamento_id = ?", id).
		Count(&n).Error; err != nil {
		return translate(err)
	}
	if n == 0 {
		return domain.ErrRecordNotFound
	}
	return domain.ErrStaleRecord
}

// FindConflicts trava as linhas sobrepostas (FOR UPDATE) quando chamado
// dentro de WithinTransaction.
func (r *AppointmentGormRepository) FindConflicts(
	ctx context.Context,
	q domain.ConflictQuery,
) ([]models.Appointment, error) {

	query := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("funcionario_id = ? AND data_agendamento = ? AND status <> ?",
			q.StaffID,
			domain.FormatDate(q.Date),
			string(domain.StatusCancelled),
		).
		Where("horario_inicio < ? AND horario_fim > ?", q.End, q.Start)

	if q.ExcludeID != nil {
		query = query.Where("agendamento_id <> ?", *q.ExcludeID)
	}

	var out []models.Appointment
	if err := query.
		Order("horario_inicio ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.Filter,
) ([]models.Appointment, error) {

	out := []models.Appointment{}

	if f.Scoped && len(f.CompanyIn) == 0 {
		return out, nil
	}

	query := r.db.WithContext(ctx).Model(&models.Appointment{})

	if f.Status != nil {
		query = query.Where("status = ?", string(*f.Status))
	}
	if f.ExcludeCancelled {
		query = query.Where("status <> ?", string(domain.StatusCancelled))
	}
	if f.DateFrom != nil {
		query = query.Where("data_agendamento >= ?", domain.FormatDate(*f.DateFrom))
	}
	if f.DateTo != nil {
		query = query.Where("data_agendamento <= ?", domain.FormatDate(*f.DateTo))
	}
	if f.ClientID != nil {
		query = query.Where("cliente_id = ?", *f.ClientID)
	}
	if f.StaffID != nil {
		query = query.Where("funcionario_id = ?", *f.StaffID)
	}
	if f.ServiceID != nil {
		query = query.Where("servico_id = ?", *f.ServiceID)
	}
	if f.CompanyID != nil {
		query = query.Where("empresa_id = ?", *f.CompanyID)
	}
	if f.Scoped {
		query = query.Where("empresa_id IN ?", f.CompanyIn)
	}

	if err := query.
		Order(orderBy(f.Order)).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func orderBy(o domain.Order) string {
	switch o {
	case domain.OrderStartAsc:
		return "data_agendamento ASC, horario_inicio ASC, agendamento_id ASC"
	case domain.OrderDateDescStartDesc:
		return "data_agendamento DESC, horario_inicio DESC, agendamento_id ASC"
	default:
		return "data_agendamento DESC, horario_inicio ASC, agendamento_id ASC"
	}
}

// --------------------------------------------------
// Related entities
// --------------------------------------------------

func (r *AppointmentGormRepository) GetStaff(
	ctx context.Context,
	id uint,
) (*models.Staff, error) {

	var s models.Staff
	if err := r.db.WithContext(ctx).
		First(&s, "funcionario_id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).
		First(&c, "cliente_id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).
		First(&s, "servico_id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

// --------------------------------------------------
// Errors
// --------------------------------------------------

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrRecordNotFound
	}
	if isExclusionViolation(err) {
		return domain.ErrSlotTaken
	}
	return err
}

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == exclusionViolation
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
