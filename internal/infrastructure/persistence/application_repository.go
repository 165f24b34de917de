package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturehub/backend/internal/domain/incubation"
	"github.com/venturehub/backend/internal/domain/shared"
)

// GormApplicationRepository implements ApplicationRepository using GORM
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewGormApplicationRepository creates a new GormApplicationRepository
func NewGormApplicationRepository(db *gorm.DB) *GormApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// FindByID finds an application by its ID
func (r *GormApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*incubation.Application, error) {
	var app incubation.Application
	if err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// FindByCohortID finds applications of a cohort
func (r *GormApplicationRepository) FindByCohortID(ctx context.Context, cohortID uuid.UUID, filter shared.Filter) ([]incubation.Application, error) {
	var apps []incubation.Application
	query := r.db.WithContext(ctx).Model(&incubation.Application{}).
		Where("cohort_id = ?", cohortID)
	query = applyKeyFilters(query, filter, map[string]string{
		"status": "status",
	})
	query = applyFilter(query, filter)

	if err := query.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// CountByCohortAndStatus counts applications of a cohort in one status
func (r *GormApplicationRepository) CountByCohortAndStatus(ctx context.Context, cohortID uuid.UUID, status incubation.ApplicationStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&incubation.Application{}).
		Where("cohort_id = ? AND status = ?", cohortID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindAll finds all applications matching the filter
func (r *GormApplicationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]incubation.Application, error) {
	var apps []incubation.Application
	query := r.db.WithContext(ctx).Model(&incubation.Application{})
	query = applyKeyFilters(query, filter, map[string]string{
		"cohort_id": "cohort_id",
		"status":    "status",
	})
	query = applyFilter(query, filter)

	if err := query.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Save creates or updates an application
func (r *GormApplicationRepository) Save(ctx context.Context, app *incubation.Application) error {
	return r.db.WithContext(ctx).Save(app).Error
}

// Delete deletes an application
func (r *GormApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&incubation.Application{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts applications matching the filter
func (r *GormApplicationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&incubation.Application{})
	query = applyKeyFilters(query, filter, map[string]string{
		"cohort_id": "cohort_id",
		"status":    "status",
	})

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormApplicationRepository implements ApplicationRepository
var _ incubation.ApplicationRepository = (*GormApplicationRepository)(nil)
