package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/domain/ticketing"
)

// GormEventRepository implements EventRepository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// FindByID finds an event by its ID
func (r *GormEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*ticketing.Event, error) {
	var event ticketing.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// FindBySlug finds an event by its URL slug
func (r *GormEventRepository) FindBySlug(ctx context.Context, slug string) (*ticketing.Event, error) {
	var event ticketing.Event
	if err := r.db.WithContext(ctx).First(&event, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// FindAll finds all events matching the filter
func (r *GormEventRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ticketing.Event, error) {
	var events []ticketing.Event
	query := r.db.WithContext(ctx).Model(&ticketing.Event{})
	query = applyKeyFilters(query, filter, map[string]string{
		"published": "published",
		"venue":     "venue",
	})
	query = applyFilter(query, filter)

	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Save creates or updates an event
func (r *GormEventRepository) Save(ctx context.Context, event *ticketing.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// SaveWithLock saves with an optimistic version check. The row is only
// updated when it still carries the expected version; a zero row count
// means another transaction got there first.
func (r *GormEventRepository) SaveWithLock(ctx context.Context, event *ticketing.Event, expectedVersion int) error {
	event.Version = expectedVersion + 1
	result := r.db.WithContext(ctx).
		Model(&ticketing.Event{}).
		Where("id = ? AND version = ?", event.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":                   event.Name,
			"description":            event.Description,
			"venue":                  event.Venue,
			"starts_at":              event.StartsAt,
			"ends_at":                event.EndsAt,
			"registration_opens_at":  event.RegistrationOpensAt,
			"registration_closes_at": event.RegistrationClosesAt,
			"allow_guests":           event.AllowGuests,
			"max_tickets_per_order":  event.MaxTicketsPerOrder,
			"registered_count":       event.RegisteredCount,
			"published":              event.Published,
			"version":                event.Version,
			"updated_at":             event.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes an event
func (r *GormEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ticketing.Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts events matching the filter
func (r *GormEventRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&ticketing.Event{})
	query = applyKeyFilters(query, filter, map[string]string{
		"published": "published",
		"venue":     "venue",
	})

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormEventRepository implements EventRepository
var _ ticketing.EventRepository = (*GormEventRepository)(nil)
