package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/domain/ticketing"
)

// GormTicketTypeRepository implements TicketTypeRepository using GORM
type GormTicketTypeRepository struct {
	db *gorm.DB
}

// NewGormTicketTypeRepository creates a new GormTicketTypeRepository
func NewGormTicketTypeRepository(db *gorm.DB) *GormTicketTypeRepository {
	return &GormTicketTypeRepository{db: db}
}

// FindByID finds a ticket type by its ID
func (r *GormTicketTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*ticketing.TicketType, error) {
	var tt ticketing.TicketType
	if err := r.db.WithContext(ctx).First(&tt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tt, nil
}

// FindByIDForUpdate loads the row under a SELECT ... FOR UPDATE lock.
// Stock mutations go through this so concurrent bookings serialize on
// the ticket type row.
func (r *GormTicketTypeRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ticketing.TicketType, error) {
	var tt ticketing.TicketType
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&tt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tt, nil
}

// FindByEventID finds all ticket types of an event
func (r *GormTicketTypeRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]ticketing.TicketType, error) {
	var types []ticketing.TicketType
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// FindAll finds all ticket types matching the filter
func (r *GormTicketTypeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ticketing.TicketType, error) {
	var types []ticketing.TicketType
	query := r.db.WithContext(ctx).Model(&ticketing.TicketType{})
	query = applyKeyFilters(query, filter, map[string]string{
		"event_id": "event_id",
		"status":   "status",
	})
	query = applyFilter(query, filter)

	if err := query.Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// Save creates or updates a ticket type
func (r *GormTicketTypeRepository) Save(ctx context.Context, tt *ticketing.TicketType) error {
	return r.db.WithContext(ctx).Save(tt).Error
}

// Delete deletes a ticket type
func (r *GormTicketTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ticketing.TicketType{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts ticket types matching the filter
func (r *GormTicketTypeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&ticketing.TicketType{})
	query = applyKeyFilters(query, filter, map[string]string{
		"event_id": "event_id",
		"status":   "status",
	})

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormTicketTypeRepository implements TicketTypeRepository
var _ ticketing.TicketTypeRepository = (*GormTicketTypeRepository)(nil)
