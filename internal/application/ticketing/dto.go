package ticketing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venturehub/backend/internal/domain/billing"
	"github.com/venturehub/backend/internal/domain/ticketing"
)

// BookingAttendeeRequest describes one person to register on a booking
type BookingAttendeeRequest struct {
	TicketTypeID uuid.UUID `json:"ticket_type_id" binding:"required"`
	Name         string    `json:"name" binding:"required,max=200"`
	Email        string    `json:"email" binding:"required,email"`
}

// CreateBookingRequest is the inbound payload for creating a booking.
// Each attendee claims one unit of its ticket type; multi-unit bookings
// list one entry per person.
type CreateBookingRequest struct {
	Attendees []BookingAttendeeRequest `json:"attendees" binding:"required,min=1,dive"`
	UserID    *uuid.UUID               `json:"user_id"`
}

// AttendeeResponse is the outbound representation of an attendee
type AttendeeResponse struct {
	ID           uuid.UUID       `json:"id"`
	EventID      uuid.UUID       `json:"event_id"`
	TicketTypeID uuid.UUID       `json:"ticket_type_id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	TicketCode   string          `json:"ticket_code"`
	Status       string          `json:"status"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	ConfirmedAt  *time.Time      `json:"confirmed_at,omitempty"`
	CheckedInAt  *time.Time      `json:"checked_in_at,omitempty"`
}

// InvoiceSummaryResponse is the outbound summary of a booking's invoice
type InvoiceSummaryResponse struct {
	ID       uuid.UUID       `json:"id"`
	Number   string          `json:"number"`
	Status   string          `json:"status"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

// BookingResponse is the outcome of a booking request. Invoice is nil
// for free bookings.
type BookingResponse struct {
	EventID   uuid.UUID               `json:"event_id"`
	Attendees []AttendeeResponse      `json:"attendees"`
	Invoice   *InvoiceSummaryResponse `json:"invoice,omitempty"`
}

// ToAttendeeResponse maps an attendee aggregate to its response shape
func ToAttendeeResponse(a *ticketing.Attendee) AttendeeResponse {
	return AttendeeResponse{
		ID:           a.ID,
		EventID:      a.EventID,
		TicketTypeID: a.TicketTypeID,
		Name:         a.Name,
		Email:        a.Email,
		TicketCode:   a.TicketCode,
		Status:       a.Status.String(),
		AmountPaid:   a.AmountPaid,
		ConfirmedAt:  a.ConfirmedAt,
		CheckedInAt:  a.CheckedInAt,
	}
}

// ToInvoiceSummaryResponse maps an invoice to its booking summary shape
func ToInvoiceSummaryResponse(i *billing.Invoice) *InvoiceSummaryResponse {
	return &InvoiceSummaryResponse{
		ID:       i.ID,
		Number:   i.Number,
		Status:   i.Status.String(),
		Subtotal: i.Subtotal,
		Tax:      i.TaxAmount,
		Total:    i.Total,
		Currency: string(i.Currency),
	}
}
