package ticketing

import (
	"context"

	"github.com/google/uuid"

	"github.com/venturehub/backend/internal/domain/shared"
)

// EventRepository persists Event aggregates
type EventRepository interface {
	shared.Repository[Event]
	FindBySlug(ctx context.Context, slug string) (*Event, error)
	// SaveWithLock saves with an optimistic version check
	SaveWithLock(ctx context.Context, event *Event, expectedVersion int) error
}

// TicketTypeRepository persists TicketType aggregates
type TicketTypeRepository interface {
	shared.Repository[TicketType]
	FindByEventID(ctx context.Context, eventID uuid.UUID) ([]TicketType, error)
	// FindByIDForUpdate loads the row under a pessimistic lock; stock
	// mutations must go through it so concurrent bookings serialize
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*TicketType, error)
}

// AttendeeRepository persists Attendee aggregates
type AttendeeRepository interface {
	shared.Repository[Attendee]
	FindByEventID(ctx context.Context, eventID uuid.UUID, filter shared.Filter) ([]Attendee, error)
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]Attendee, error)
	FindByTicketCode(ctx context.Context, code string) (*Attendee, error)
	CountByEventAndStatus(ctx context.Context, eventID uuid.UUID, status AttendeeStatus) (int64, error)
}
