package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturehub/backend/internal/domain/mentorship"
	"github.com/venturehub/backend/internal/domain/shared"
)

// GormMentorRepository implements MentorRepository using GORM
type GormMentorRepository struct {
	db *gorm.DB
}

// NewGormMentorRepository creates a new GormMentorRepository
func NewGormMentorRepository(db *gorm.DB) *GormMentorRepository {
	return &GormMentorRepository{db: db}
}

// FindByID finds a mentor by its ID
func (r *GormMentorRepository) FindByID(ctx context.Context, id uuid.UUID) (*mentorship.Mentor, error) {
	var mentor mentorship.Mentor
	if err := r.db.WithContext(ctx).First(&mentor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &mentor, nil
}

// FindByEmail finds a mentor by email address
func (r *GormMentorRepository) FindByEmail(ctx context.Context, email string) (*mentorship.Mentor, error) {
	var mentor mentorship.Mentor
	if err := r.db.WithContext(ctx).First(&mentor, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &mentor, nil
}

// FindAll finds all mentors matching the filter
func (r *GormMentorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]mentorship.Mentor, error) {
	var mentors []mentorship.Mentor
	query := r.db.WithContext(ctx).Model(&mentorship.Mentor{})
	query = applyKeyFilters(query, filter, map[string]string{
		"active": "active",
	})
	query = applyFilter(query, filter)

	if err := query.Find(&mentors).Error; err != nil {
		return nil, err
	}
	return mentors, nil
}

// Save creates or updates a mentor
func (r *GormMentorRepository) Save(ctx context.Context, mentor *mentorship.Mentor) error {
	return r.db.WithContext(ctx).Save(mentor).Error
}

// Delete deletes a mentor
func (r *GormMentorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&mentorship.Mentor{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts mentors matching the filter
func (r *GormMentorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&mentorship.Mentor{})
	query = applyKeyFilters(query, filter, map[string]string{
		"active": "active",
	})

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormMentorRepository implements MentorRepository
var _ mentorship.MentorRepository = (*GormMentorRepository)(nil)
