package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturehub/backend/internal/domain/mentorship"
	"github.com/venturehub/backend/internal/domain/shared"
)

// GormSessionRepository implements SessionRepository using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GormSessionRepository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// FindByID finds a session by its ID
func (r *GormSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*mentorship.Session, error) {
	var session mentorship.Session
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindByMentorBetween returns the mentor's sessions intersecting [from, to).
// All statuses are returned; callers filter out cancelled sessions.
func (r *GormSessionRepository) FindByMentorBetween(ctx context.Context, mentorID uuid.UUID, from, to time.Time) ([]mentorship.Session, error) {
	var sessions []mentorship.Session
	if err := r.db.WithContext(ctx).
		Where("mentor_id = ? AND start_at < ? AND end_at > ?", mentorID, to, from).
		Order("start_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// FindByApplicationID finds all sessions booked for one application
func (r *GormSessionRepository) FindByApplicationID(ctx context.Context, applicationID uuid.UUID) ([]mentorship.Session, error) {
	var sessions []mentorship.Session
	if err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("start_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// FindAll finds all sessions matching the filter
func (r *GormSessionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]mentorship.Session, error) {
	var sessions []mentorship.Session
	query := r.db.WithContext(ctx).Model(&mentorship.Session{})
	query = applyKeyFilters(query, filter, map[string]string{
		"mentor_id":      "mentor_id",
		"application_id": "application_id",
		"status":         "status",
	})
	query = applyFilter(query, filter)

	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// Save creates or updates a session
func (r *GormSessionRepository) Save(ctx context.Context, session *mentorship.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// Delete deletes a session
func (r *GormSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&mentorship.Session{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts sessions matching the filter
func (r *GormSessionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&mentorship.Session{})
	query = applyKeyFilters(query, filter, map[string]string{
		"mentor_id":      "mentor_id",
		"application_id": "application_id",
		"status":         "status",
	})

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormSessionRepository implements SessionRepository
var _ mentorship.SessionRepository = (*GormSessionRepository)(nil)
