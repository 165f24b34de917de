package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/domain/ticketing"
)

// GormAttendeeRepository implements AttendeeRepository using GORM
type GormAttendeeRepository struct {
	db *gorm.DB
}

// NewGormAttendeeRepository creates a new GormAttendeeRepository
func NewGormAttendeeRepository(db *gorm.DB) *GormAttendeeRepository {
	return &GormAttendeeRepository{db: db}
}

// FindByID finds an attendee by its ID
func (r *GormAttendeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*ticketing.Attendee, error) {
	var attendee ticketing.Attendee
	if err := r.db.WithContext(ctx).First(&attendee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &attendee, nil
}

// FindByTicketCode finds an attendee by its ticket code
func (r *GormAttendeeRepository) FindByTicketCode(ctx context.Context, code string) (*ticketing.Attendee, error) {
	var attendee ticketing.Attendee
	if err := r.db.WithContext(ctx).First(&attendee, "ticket_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &attendee, nil
}

// FindByEventID finds attendees of an event
func (r *GormAttendeeRepository) FindByEventID(ctx context.Context, eventID uuid.UUID, filter shared.Filter) ([]ticketing.Attendee, error) {
	var attendees []ticketing.Attendee
	query := r.db.WithContext(ctx).Model(&ticketing.Attendee{}).
		Where("event_id = ?", eventID)
	query = applyKeyFilters(query, filter, map[string]string{
		"status":         "status",
		"ticket_type_id": "ticket_type_id",
	})
	query = applyFilter(query, filter)

	if err := query.Find(&attendees).Error; err != nil {
		return nil, err
	}
	return attendees, nil
}

// FindByInvoiceID finds all attendees billed on one invoice
func (r *GormAttendeeRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]ticketing.Attendee, error) {
	var attendees []ticketing.Attendee
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Find(&attendees).Error; err != nil {
		return nil, err
	}
	return attendees, nil
}

// CountByEventAndStatus counts attendees of an event in one status
func (r *GormAttendeeRepository) CountByEventAndStatus(ctx context.Context, eventID uuid.UUID, status ticketing.AttendeeStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ticketing.Attendee{}).
		Where("event_id = ? AND status = ?", eventID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindAll finds all attendees matching the filter
func (r *GormAttendeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ticketing.Attendee, error) {
	var attendees []ticketing.Attendee
	query := r.db.WithContext(ctx).Model(&ticketing.Attendee{})
	query = applyKeyFilters(query, filter, map[string]string{
		"event_id":       "event_id",
		"status":         "status",
		"ticket_type_id": "ticket_type_id",
	})
	query = applyFilter(query, filter)

	if err := query.Find(&attendees).Error; err != nil {
		return nil, err
	}
	return attendees, nil
}

// Save creates or updates an attendee
func (r *GormAttendeeRepository) Save(ctx context.Context, attendee *ticketing.Attendee) error {
	return r.db.WithContext(ctx).Save(attendee).Error
}

// Delete deletes an attendee
func (r *GormAttendeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ticketing.Attendee{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts attendees matching the filter
func (r *GormAttendeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&ticketing.Attendee{})
	query = applyKeyFilters(query, filter, map[string]string{
		"event_id":       "event_id",
		"status":         "status",
		"ticket_type_id": "ticket_type_id",
	})

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormAttendeeRepository implements AttendeeRepository
var _ ticketing.AttendeeRepository = (*GormAttendeeRepository)(nil)
