package ticketing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/domain/shared/statemachine"
)

// AttendeeStatus represents the lifecycle status of an attendee
type AttendeeStatus string

const (
	AttendeeStatusPendingPayment AttendeeStatus = "PENDING_PAYMENT"
	AttendeeStatusConfirmed      AttendeeStatus = "CONFIRMED"
	AttendeeStatusCheckedIn      AttendeeStatus = "CHECKED_IN"
	AttendeeStatusCancelled      AttendeeStatus = "CANCELLED"
	AttendeeStatusExpired        AttendeeStatus = "EXPIRED"
)

var attendeeTransitions = statemachine.Graph[AttendeeStatus]{
	AttendeeStatusPendingPayment: {AttendeeStatusConfirmed, AttendeeStatusExpired, AttendeeStatusCancelled},
	AttendeeStatusConfirmed:      {AttendeeStatusCheckedIn, AttendeeStatusCancelled},
}

// IsValid checks if the status is a valid AttendeeStatus
func (s AttendeeStatus) IsValid() bool {
	switch s {
	case AttendeeStatusPendingPayment, AttendeeStatusConfirmed, AttendeeStatusCheckedIn,
		AttendeeStatusCancelled, AttendeeStatusExpired:
		return true
	}
	return false
}

// String returns the string representation of AttendeeStatus
func (s AttendeeStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s AttendeeStatus) CanTransitionTo(target AttendeeStatus) bool {
	return attendeeTransitions.CanTransition(s, target)
}

// IsTerminal reports whether the status allows no further transitions
func (s AttendeeStatus) IsTerminal() bool {
	return attendeeTransitions.IsTerminal(s)
}

// Attendee represents one booked ticket: a person attached to a ticket
// type of an event. Each attendee carries exactly one unit of the
// ticket type's stock, so reservation release and sale confirmation
// are addressable per attendee and guarded by its own status.
type Attendee struct {
	shared.BaseAggregateRoot
	EventID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	TicketTypeID uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceID    *uuid.UUID      `gorm:"type:uuid;index"`
	UserID       *uuid.UUID      `gorm:"type:uuid;index"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Email        string          `gorm:"type:varchar(200);not null"`
	TicketCode   string          `gorm:"type:varchar(40);not null;uniqueIndex"`
	Status       AttendeeStatus  `gorm:"type:varchar(20);not null"`
	AmountPaid   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ConfirmedAt  *time.Time
	CheckedInAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Attendee) TableName() string {
	return "attendees"
}

// NewAttendee creates a new attendee in the given initial status.
// Free bookings start CONFIRMED, paid bookings start PENDING_PAYMENT.
func NewAttendee(eventID, ticketTypeID uuid.UUID, name, email string, initial AttendeeStatus) (*Attendee, error) {
	if eventID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EVENT", "Event ID cannot be empty")
	}
	if ticketTypeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TICKET_TYPE", "Ticket type ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Attendee name cannot be empty")
	}
	if !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Attendee email is invalid")
	}
	if initial != AttendeeStatusPendingPayment && initial != AttendeeStatusConfirmed {
		return nil, shared.NewDomainError("INVALID_STATE", "Attendees start pending payment or confirmed")
	}

	attendee := &Attendee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EventID:           eventID,
		TicketTypeID:      ticketTypeID,
		Name:              name,
		Email:             email,
		TicketCode:        newTicketCode(),
		Status:            initial,
		AmountPaid:        decimal.Zero,
	}
	if initial == AttendeeStatusConfirmed {
		now := attendee.CreatedAt
		attendee.ConfirmedAt = &now
	}

	attendee.TrackStatusChange(shared.StatusChange{
		EntityType: shared.EntityTypeAttendee,
		EntityID:   attendee.ID,
		ToStatus:   initial.String(),
		ChangedAt:  attendee.CreatedAt,
	})
	attendee.AddDomainEvent(NewAttendeeRegisteredEvent(attendee))

	return attendee, nil
}

// newTicketCode derives a short human-readable code from a fresh UUID
func newTicketCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "VH-" + strings.ToUpper(raw[:12])
}

// Confirm transitions the attendee to CONFIRMED after payment settles
func (a *Attendee) Confirm(amountPaid decimal.Decimal) error {
	if !a.Status.CanTransitionTo(AttendeeStatusConfirmed) {
		return shared.NewInvalidTransitionError(shared.EntityTypeAttendee, a.Status.String(), AttendeeStatusConfirmed.String())
	}

	now := time.Now()
	a.changeStatus(AttendeeStatusConfirmed, nil, "")
	a.AmountPaid = amountPaid
	a.ConfirmedAt = &now

	a.AddDomainEvent(NewAttendeeConfirmedEvent(a))

	return nil
}

// CheckIn marks a confirmed attendee as present at the event
func (a *Attendee) CheckIn(actorID *uuid.UUID) error {
	if !a.Status.CanTransitionTo(AttendeeStatusCheckedIn) {
		return shared.NewInvalidTransitionError(shared.EntityTypeAttendee, a.Status.String(), AttendeeStatusCheckedIn.String())
	}

	now := time.Now()
	a.changeStatus(AttendeeStatusCheckedIn, actorID, "")
	a.CheckedInAt = &now

	a.AddDomainEvent(NewAttendeeCheckedInEvent(a))

	return nil
}

// Expire voids a pending attendee whose payment never settled
func (a *Attendee) Expire() error {
	if !a.Status.CanTransitionTo(AttendeeStatusExpired) {
		return shared.NewInvalidTransitionError(shared.EntityTypeAttendee, a.Status.String(), AttendeeStatusExpired.String())
	}

	a.changeStatus(AttendeeStatusExpired, nil, "payment not completed")
	a.AddDomainEvent(NewAttendeeExpiredEvent(a))

	return nil
}

// Cancel transitions the attendee to CANCELLED and returns the status it
// held before. The caller chooses refund vs release from that prior
// status, so it must be captured before the mutation.
func (a *Attendee) Cancel(reason string, actorID *uuid.UUID) (AttendeeStatus, error) {
	prior := a.Status
	if !a.Status.CanTransitionTo(AttendeeStatusCancelled) {
		return prior, shared.NewInvalidTransitionError(shared.EntityTypeAttendee, a.Status.String(), AttendeeStatusCancelled.String())
	}

	now := time.Now()
	a.changeStatus(AttendeeStatusCancelled, actorID, reason)
	a.CancelledAt = &now
	a.CancelReason = reason

	a.AddDomainEvent(NewAttendeeCancelledEvent(a, prior))

	return prior, nil
}

// AttachInvoice links the attendee to the invoice covering its booking
func (a *Attendee) AttachInvoice(invoiceID uuid.UUID) error {
	if invoiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	a.InvoiceID = &invoiceID
	a.UpdatedAt = time.Now()
	return nil
}

func (a *Attendee) changeStatus(to AttendeeStatus, actorID *uuid.UUID, notes string) {
	from := a.Status.String()
	now := time.Now()
	a.Status = to
	a.UpdatedAt = now

	a.TrackStatusChange(shared.StatusChange{
		EntityType: shared.EntityTypeAttendee,
		EntityID:   a.ID,
		FromStatus: &from,
		ToStatus:   to.String(),
		ActorID:    actorID,
		Notes:      notes,
		ChangedAt:  now,
	})
}

// DisplayName returns a readable identification of the attendee
func (a *Attendee) DisplayName() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}
