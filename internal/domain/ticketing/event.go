package ticketing

import (
	"fmt"
	"time"

	"github.com/venturehub/backend/internal/domain/shared"
)

// Event represents a bookable event aggregate root. It owns the
// registration rules a booking must satisfy; ticket stock lives on the
// TicketType aggregates attached to it.
type Event struct {
	shared.BaseAggregateRoot
	Name                 string     `gorm:"type:varchar(200);not null"`
	Slug                 string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description          string     `gorm:"type:text"`
	Venue                string     `gorm:"type:varchar(200)"`
	StartsAt             time.Time  `gorm:"not null"`
	EndsAt               time.Time  `gorm:"not null"`
	RegistrationOpensAt  *time.Time
	RegistrationClosesAt *time.Time
	AllowGuests          bool `gorm:"not null;default:true"`
	MaxTicketsPerOrder   int  `gorm:"not null;default:10"`
	RegisteredCount      int  `gorm:"not null;default:0"`
	Published            bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Event) TableName() string {
	return "events"
}

// NewEvent creates a new event
func NewEvent(name, slug string, startsAt, endsAt time.Time) (*Event, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Event name cannot be empty")
	}
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Event slug cannot be empty")
	}
	if !endsAt.After(startsAt) {
		return nil, shared.NewDomainError("INVALID_SCHEDULE", "Event must end after it starts")
	}

	event := &Event{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Name:               name,
		Slug:               slug,
		StartsAt:           startsAt,
		EndsAt:             endsAt,
		AllowGuests:        true,
		MaxTicketsPerOrder: 10,
	}

	event.AddDomainEvent(NewEventCreatedEvent(event))

	return event, nil
}

// IsRegistrationOpen reports whether registrations are accepted at the
// given time. A nil boundary means the window is open on that side; the
// event start acts as the implicit close when none is set.
func (e *Event) IsRegistrationOpen(now time.Time) bool {
	if !e.Published {
		return false
	}
	if e.RegistrationOpensAt != nil && now.Before(*e.RegistrationOpensAt) {
		return false
	}
	closesAt := e.StartsAt
	if e.RegistrationClosesAt != nil {
		closesAt = *e.RegistrationClosesAt
	}
	return now.Before(closesAt)
}

// ValidateOrderQuantity checks the per-order ticket cap
func (e *Event) ValidateOrderQuantity(qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if e.MaxTicketsPerOrder > 0 && qty > e.MaxTicketsPerOrder {
		return shared.NewDomainError("QUANTITY_EXCEEDS_LIMIT",
			fmt.Sprintf("At most %d tickets may be booked per order", e.MaxTicketsPerOrder))
	}
	return nil
}

// Publish makes the event visible and bookable
func (e *Event) Publish() {
	if e.Published {
		return
	}
	e.Published = true
	e.UpdatedAt = time.Now()
	e.AddDomainEvent(NewEventPublishedEvent(e))
}

// IncrementRegistered bumps the registered attendee counter
func (e *Event) IncrementRegistered(n int) {
	if n <= 0 {
		return
	}
	e.RegisteredCount += n
	e.UpdatedAt = time.Now()
}

// DecrementRegistered lowers the registered attendee counter, clamped at zero
func (e *Event) DecrementRegistered(n int) {
	if n <= 0 {
		return
	}
	e.RegisteredCount -= n
	if e.RegisteredCount < 0 {
		e.RegisteredCount = 0
	}
	e.UpdatedAt = time.Now()
}
