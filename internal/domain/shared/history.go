package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EntityType identifies the kind of aggregate a status history entry belongs to
type EntityType string

const (
	EntityTypeOrder       EntityType = "order"
	EntityTypeAttendee    EntityType = "attendee"
	EntityTypeTicketType  EntityType = "ticket_type"
	EntityTypeApplication EntityType = "application"
	EntityTypeCohort      EntityType = "cohort"
	EntityTypeSession     EntityType = "mentorship_session"
	EntityTypeInvoice     EntityType = "invoice"
)

// StatusChange describes a single validated status transition.
// FromStatus is nil for the initial status recorded at creation.
type StatusChange struct {
	EntityType EntityType
	EntityID   uuid.UUID
	FromStatus *string
	ToStatus   string
	ActorID    *uuid.UUID
	Notes      string
	ChangedAt  time.Time
}

// StatusHistoryEntry is the persisted audit record of a status transition
type StatusHistoryEntry struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EntityType EntityType `gorm:"type:varchar(50);not null;index:idx_status_history_entity" json:"entity_type"`
	EntityID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_status_history_entity" json:"entity_id"`
	FromStatus *string    `gorm:"type:varchar(50)" json:"from_status,omitempty"`
	ToStatus   string     `gorm:"type:varchar(50);not null" json:"to_status"`
	ActorID    *uuid.UUID `gorm:"type:uuid" json:"actor_id,omitempty"`
	Notes      string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
}

// TableName overrides the gorm table name
func (StatusHistoryEntry) TableName() string {
	return "status_history_entries"
}

// NewStatusHistoryEntry builds a persistable entry from a buffered status change
func NewStatusHistoryEntry(change StatusChange) *StatusHistoryEntry {
	createdAt := change.ChangedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return &StatusHistoryEntry{
		ID:         uuid.New(),
		EntityType: change.EntityType,
		EntityID:   change.EntityID,
		FromStatus: change.FromStatus,
		ToStatus:   change.ToStatus,
		ActorID:    change.ActorID,
		Notes:      change.Notes,
		CreatedAt:  createdAt,
	}
}

// StatusTracked is implemented by aggregates that buffer status changes
type StatusTracked interface {
	GetStatusChanges() []StatusChange
	ClearStatusChanges()
}

// RecordStatusChanges persists the buffered status changes of the given
// aggregates and clears their buffers. Called inside the transaction
// that saves the aggregates so history and state commit together.
func RecordStatusChanges(ctx context.Context, repo StatusHistoryRepository, aggregates ...StatusTracked) error {
	for _, agg := range aggregates {
		for _, change := range agg.GetStatusChanges() {
			if err := repo.Record(ctx, NewStatusHistoryEntry(change)); err != nil {
				return err
			}
		}
		agg.ClearStatusChanges()
	}
	return nil
}

// StatusHistoryRepository persists and queries status history entries
type StatusHistoryRepository interface {
	// Record appends one entry; called in the same transaction as the aggregate save
	Record(ctx context.Context, entry *StatusHistoryEntry) error
	// FindByEntity returns the full history of one entity, oldest first
	FindByEntity(ctx context.Context, entityType EntityType, entityID uuid.UUID) ([]StatusHistoryEntry, error)
	// FindLatest returns the most recent entry for one entity
	FindLatest(ctx context.Context, entityType EntityType, entityID uuid.UUID) (*StatusHistoryEntry, error)
}
