package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/venturehub/backend/internal/domain/incubation"
	"github.com/venturehub/backend/internal/domain/shared"
)

// GormCohortRepository implements CohortRepository using GORM
type GormCohortRepository struct {
	db *gorm.DB
}

// NewGormCohortRepository creates a new GormCohortRepository
func NewGormCohortRepository(db *gorm.DB) *GormCohortRepository {
	return &GormCohortRepository{db: db}
}

// FindByID finds a cohort by its ID
func (r *GormCohortRepository) FindByID(ctx context.Context, id uuid.UUID) (*incubation.Cohort, error) {
	var cohort incubation.Cohort
	if err := r.db.WithContext(ctx).First(&cohort, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cohort, nil
}

// FindByIDForUpdate loads the cohort row under a SELECT ... FOR UPDATE
// lock so concurrent acceptances serialize on the capacity check
func (r *GormCohortRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*incubation.Cohort, error) {
	var cohort incubation.Cohort
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&cohort, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cohort, nil
}

// FindAll finds all cohorts matching the filter
func (r *GormCohortRepository) FindAll(ctx context.Context, filter shared.Filter) ([]incubation.Cohort, error) {
	var cohorts []incubation.Cohort
	query := r.db.WithContext(ctx).Model(&incubation.Cohort{})
	query = applyKeyFilters(query, filter, map[string]string{
		"status": "status",
	})
	query = applyFilter(query, filter)

	if err := query.Find(&cohorts).Error; err != nil {
		return nil, err
	}
	return cohorts, nil
}

// Save creates or updates a cohort
func (r *GormCohortRepository) Save(ctx context.Context, cohort *incubation.Cohort) error {
	return r.db.WithContext(ctx).Save(cohort).Error
}

// Delete deletes a cohort
func (r *GormCohortRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&incubation.Cohort{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts cohorts matching the filter
func (r *GormCohortRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&incubation.Cohort{})
	query = applyKeyFilters(query, filter, map[string]string{
		"status": "status",
	})

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormCohortRepository implements CohortRepository
var _ incubation.CohortRepository = (*GormCohortRepository)(nil)
