package ticketing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venturehub/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeEvent      = "Event"
	AggregateTypeTicketType = "TicketType"
	AggregateTypeAttendee   = "Attendee"
)

// Event type constants
const (
	EventTypeEventCreated       = "EventCreated"
	EventTypeEventPublished     = "EventPublished"
	EventTypeTicketTypeSoldOut  = "TicketTypeSoldOut"
	EventTypeAttendeeRegistered = "AttendeeRegistered"
	EventTypeAttendeeConfirmed  = "AttendeeConfirmed"
	EventTypeAttendeeCheckedIn  = "AttendeeCheckedIn"
	EventTypeAttendeeCancelled  = "AttendeeCancelled"
	EventTypeAttendeeExpired    = "AttendeeExpired"
	EventTypeBookingCreated     = "BookingCreated"
	EventTypeBookingCompleted   = "BookingCompleted"
)

// EventCreatedEvent is raised when a new event is created
type EventCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewEventCreatedEvent creates a new EventCreatedEvent
func NewEventCreatedEvent(event *Event) *EventCreatedEvent {
	return &EventCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEventCreated, AggregateTypeEvent, event.ID),
		Name:            event.Name,
		Slug:            event.Slug,
	}
}

// EventPublishedEvent is raised when an event becomes bookable
type EventPublishedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewEventPublishedEvent creates a new EventPublishedEvent
func NewEventPublishedEvent(event *Event) *EventPublishedEvent {
	return &EventPublishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEventPublished, AggregateTypeEvent, event.ID),
		Name:            event.Name,
	}
}

// TicketTypeSoldOutEvent is raised when the last unit of a ticket type sells
type TicketTypeSoldOutEvent struct {
	shared.BaseDomainEvent
	OwnerEventID uuid.UUID `json:"event_id"`
	Name         string    `json:"name"`
	Sold         int       `json:"sold"`
}

// NewTicketTypeSoldOutEvent creates a new TicketTypeSoldOutEvent
func NewTicketTypeSoldOutEvent(tt *TicketType) *TicketTypeSoldOutEvent {
	return &TicketTypeSoldOutEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTicketTypeSoldOut, AggregateTypeTicketType, tt.ID),
		OwnerEventID:    tt.EventID,
		Name:            tt.Name,
		Sold:            tt.Sold,
	}
}

// AttendeeRegisteredEvent is raised when an attendee record is created
type AttendeeRegisteredEvent struct {
	shared.BaseDomainEvent
	OwnerEventID uuid.UUID `json:"event_id"`
	TicketTypeID uuid.UUID `json:"ticket_type_id"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
}

// NewAttendeeRegisteredEvent creates a new AttendeeRegisteredEvent
func NewAttendeeRegisteredEvent(a *Attendee) *AttendeeRegisteredEvent {
	return &AttendeeRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAttendeeRegistered, AggregateTypeAttendee, a.ID),
		OwnerEventID:    a.EventID,
		TicketTypeID:    a.TicketTypeID,
		Email:           a.Email,
		Status:          a.Status.String(),
	}
}

// AttendeeConfirmedEvent is raised when an attendee's booking is confirmed
type AttendeeConfirmedEvent struct {
	shared.BaseDomainEvent
	OwnerEventID uuid.UUID       `json:"event_id"`
	TicketCode   string          `json:"ticket_code"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
}

// NewAttendeeConfirmedEvent creates a new AttendeeConfirmedEvent
func NewAttendeeConfirmedEvent(a *Attendee) *AttendeeConfirmedEvent {
	return &AttendeeConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAttendeeConfirmed, AggregateTypeAttendee, a.ID),
		OwnerEventID:    a.EventID,
		TicketCode:      a.TicketCode,
		AmountPaid:      a.AmountPaid,
	}
}

// AttendeeCheckedInEvent is raised when an attendee checks in at the event
type AttendeeCheckedInEvent struct {
	shared.BaseDomainEvent
	OwnerEventID uuid.UUID `json:"event_id"`
	TicketCode   string    `json:"ticket_code"`
}

// NewAttendeeCheckedInEvent creates a new AttendeeCheckedInEvent
func NewAttendeeCheckedInEvent(a *Attendee) *AttendeeCheckedInEvent {
	return &AttendeeCheckedInEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAttendeeCheckedIn, AggregateTypeAttendee, a.ID),
		OwnerEventID:    a.EventID,
		TicketCode:      a.TicketCode,
	}
}

// AttendeeCancelledEvent is raised when an attendee's booking is cancelled
type AttendeeCancelledEvent struct {
	shared.BaseDomainEvent
	OwnerEventID uuid.UUID `json:"event_id"`
	PriorStatus  string    `json:"prior_status"`
	Reason       string    `json:"reason"`
}

// NewAttendeeCancelledEvent creates a new AttendeeCancelledEvent
func NewAttendeeCancelledEvent(a *Attendee, prior AttendeeStatus) *AttendeeCancelledEvent {
	return &AttendeeCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAttendeeCancelled, AggregateTypeAttendee, a.ID),
		OwnerEventID:    a.EventID,
		PriorStatus:     prior.String(),
		Reason:          a.CancelReason,
	}
}

// AttendeeExpiredEvent is raised when a pending attendee's payment window lapses
type AttendeeExpiredEvent struct {
	shared.BaseDomainEvent
	OwnerEventID uuid.UUID `json:"event_id"`
}

// NewAttendeeExpiredEvent creates a new AttendeeExpiredEvent
func NewAttendeeExpiredEvent(a *Attendee) *AttendeeExpiredEvent {
	return &AttendeeExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAttendeeExpired, AggregateTypeAttendee, a.ID),
		OwnerEventID:    a.EventID,
	}
}

// BookingCreatedEvent is raised when a booking (one or more attendees)
// is created for an event
type BookingCreatedEvent struct {
	shared.BaseDomainEvent
	AttendeeIDs []uuid.UUID `json:"attendee_ids"`
	InvoiceID   *uuid.UUID  `json:"invoice_id,omitempty"`
	Free        bool        `json:"free"`
}

// NewBookingCreatedEvent creates a new BookingCreatedEvent
func NewBookingCreatedEvent(eventID uuid.UUID, attendeeIDs []uuid.UUID, invoiceID *uuid.UUID, free bool) *BookingCreatedEvent {
	return &BookingCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingCreated, AggregateTypeEvent, eventID),
		AttendeeIDs:     attendeeIDs,
		InvoiceID:       invoiceID,
		Free:            free,
	}
}

// BookingCompletedEvent is raised when every attendee of a booking is confirmed
type BookingCompletedEvent struct {
	shared.BaseDomainEvent
	AttendeeIDs []uuid.UUID `json:"attendee_ids"`
}

// NewBookingCompletedEvent creates a new BookingCompletedEvent
func NewBookingCompletedEvent(eventID uuid.UUID, attendeeIDs []uuid.UUID) *BookingCompletedEvent {
	return &BookingCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingCompleted, AggregateTypeEvent, eventID),
		AttendeeIDs:     attendeeIDs,
	}
}
