package repository

import (
	"context"
	"sort"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

// AccessGormRepository lê os vínculos de uma pessoa. Registros excluídos
// (deleted_at) ficam de fora pelo escopo padrão do gorm.
type AccessGormRepository struct {
	db *gorm.DB
}

func NewAccessGormRepository(db *gorm.DB) *AccessGormRepository {
	return &AccessGormRepository{db: db}
}

func (r *AccessGormRepository) exists(ctx context.Context, model any, query string, args ...any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(model).
		Where(query, args...).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AccessGormRepository) IsAdministrator(ctx context.Context, personID uint) (bool, error) {
	return r.exists(ctx, &models.Administrator{}, "pessoa_id = ?", personID)
}

func (r *AccessGormRepository) IsStaffOfCompany(ctx context.Context, personID, companyID uint) (bool, error) {
	return r.exists(ctx, &models.Staff{}, "pessoa_id = ? AND empresa_id = ?", personID, companyID)
}

func (r *AccessGormRepository) IsClientOfCompany(ctx context.Context, personID, companyID uint) (bool, error) {
	return r.exists(ctx, &models.Client{}, "pessoa_id = ? AND empresa_id = ?", personID, companyID)
}

func (r *AccessGormRepository) IsStaffRecord(ctx context.Context, personID, staffID uint) (bool, error) {
	return r.exists(ctx, &models.Staff{}, "pessoa_id = ? AND funcionario_id = ?", personID, staffID)
}

func (r *AccessGormRepository) IsClientRecord(ctx context.Context, personID, clientID uint) (bool, error) {
	return r.exists(ctx, &models.Client{}, "pessoa_id = ? AND cliente_id = ?", personID, clientID)
}

func (r *AccessGormRepository) CompaniesOfPerson(ctx context.Context, personID uint) ([]uint, error) {
	var staffCompanies, clientCompanies []uint

	if err := r.db.WithContext(ctx).
		Model(&models.Staff{}).
		Where("pessoa_id = ?", personID).
		Distinct().
		Pluck("empresa_id", &staffCompanies).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("pessoa_id = ?", personID).
		Distinct().
		Pluck("empresa_id", &clientCompanies).Error; err != nil {
		return nil, err
	}

	seen := map[uint]bool{}
	ids := make([]uint, 0, len(staffCompanies)+len(clientCompanies))
	for _, id := range append(staffCompanies, clientCompanies...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Compile-time check
var _ domain.Repository = (*AccessGormRepository)(nil)
