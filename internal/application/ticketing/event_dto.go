package ticketing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venturehub/backend/internal/domain/ticketing"
)

// CreateEventRequest is the inbound payload for creating an event
type CreateEventRequest struct {
	Name                 string     `json:"name" binding:"required,max=200"`
	Slug                 string     `json:"slug" binding:"required,max=200"`
	Description          string     `json:"description"`
	Venue                string     `json:"venue" binding:"max=200"`
	StartsAt             time.Time  `json:"starts_at" binding:"required"`
	EndsAt               time.Time  `json:"ends_at" binding:"required"`
	RegistrationOpensAt  *time.Time `json:"registration_opens_at"`
	RegistrationClosesAt *time.Time `json:"registration_closes_at"`
	AllowGuests          *bool      `json:"allow_guests"`
	MaxTicketsPerOrder   *int       `json:"max_tickets_per_order" binding:"omitempty,min=1"`
}

// CreateTicketTypeRequest is the inbound payload for adding a ticket
// type to an event. A nil Quantity means unlimited stock.
type CreateTicketTypeRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency" binding:"omitempty,len=3"`
	Quantity    *int            `json:"quantity" binding:"omitempty,min=0"`
	MinPerOrder *int            `json:"min_per_order" binding:"omitempty,min=1"`
	MaxPerOrder *int            `json:"max_per_order" binding:"omitempty,min=0"`
	SaleStartAt *time.Time      `json:"sale_start_at"`
	SaleEndAt   *time.Time      `json:"sale_end_at"`
	Hidden      bool            `json:"hidden"`
}

// EventResponse is the outbound representation of an event
type EventResponse struct {
	ID                   uuid.UUID  `json:"id"`
	Name                 string     `json:"name"`
	Slug                 string     `json:"slug"`
	Description          string     `json:"description,omitempty"`
	Venue                string     `json:"venue,omitempty"`
	StartsAt             time.Time  `json:"starts_at"`
	EndsAt               time.Time  `json:"ends_at"`
	RegistrationOpensAt  *time.Time `json:"registration_opens_at,omitempty"`
	RegistrationClosesAt *time.Time `json:"registration_closes_at,omitempty"`
	AllowGuests          bool       `json:"allow_guests"`
	MaxTicketsPerOrder   int        `json:"max_tickets_per_order"`
	RegisteredCount      int        `json:"registered_count"`
	Published            bool       `json:"published"`
	CreatedAt            time.Time  `json:"created_at"`
}

// TicketTypeResponse is the outbound representation of a ticket type.
// Available is nil for unlimited types.
type TicketTypeResponse struct {
	ID          uuid.UUID       `json:"id"`
	EventID     uuid.UUID       `json:"event_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Quantity    *int            `json:"quantity,omitempty"`
	Sold        int             `json:"sold"`
	Reserved    int             `json:"reserved"`
	Available   *int            `json:"available,omitempty"`
	MinPerOrder int             `json:"min_per_order"`
	MaxPerOrder int             `json:"max_per_order"`
	SaleStartAt *time.Time      `json:"sale_start_at,omitempty"`
	SaleEndAt   *time.Time      `json:"sale_end_at,omitempty"`
	Status      string          `json:"status"`
	Hidden      bool            `json:"hidden"`
}

// ToEventResponse maps an event aggregate to its response shape
func ToEventResponse(e *ticketing.Event) EventResponse {
	return EventResponse{
		ID:                   e.ID,
		Name:                 e.Name,
		Slug:                 e.Slug,
		Description:          e.Description,
		Venue:                e.Venue,
		StartsAt:             e.StartsAt,
		EndsAt:               e.EndsAt,
		RegistrationOpensAt:  e.RegistrationOpensAt,
		RegistrationClosesAt: e.RegistrationClosesAt,
		AllowGuests:          e.AllowGuests,
		MaxTicketsPerOrder:   e.MaxTicketsPerOrder,
		RegisteredCount:      e.RegisteredCount,
		Published:            e.Published,
		CreatedAt:            e.CreatedAt,
	}
}

// ToTicketTypeResponse maps a ticket type aggregate to its response shape
func ToTicketTypeResponse(t *ticketing.TicketType) TicketTypeResponse {
	resp := TicketTypeResponse{
		ID:          t.ID,
		EventID:     t.EventID,
		Name:        t.Name,
		Description: t.Description,
		Price:       t.Price,
		Currency:    string(t.Currency),
		Quantity:    t.Quantity,
		Sold:        t.Sold,
		Reserved:    t.Reserved,
		MinPerOrder: t.MinPerOrder,
		MaxPerOrder: t.MaxPerOrder,
		SaleStartAt: t.SaleStartAt,
		SaleEndAt:   t.SaleEndAt,
		Status:      t.Status.String(),
		Hidden:      t.Hidden,
	}
	if available, capped := t.Available(); capped {
		resp.Available = &available
	}
	return resp
}
