package ticketing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/domain/shared/statemachine"
	"github.com/venturehub/backend/internal/domain/shared/valueobject"
)

// TicketTypeStatus represents the sale status of a ticket type
type TicketTypeStatus string

const (
	TicketTypeStatusActive  TicketTypeStatus = "ACTIVE"
	TicketTypeStatusPaused  TicketTypeStatus = "PAUSED"
	TicketTypeStatusSoldOut TicketTypeStatus = "SOLD_OUT"
)

var ticketTypeTransitions = statemachine.Graph[TicketTypeStatus]{
	TicketTypeStatusActive:  {TicketTypeStatusPaused, TicketTypeStatusSoldOut},
	TicketTypeStatusPaused:  {TicketTypeStatusActive},
	TicketTypeStatusSoldOut: {TicketTypeStatusActive},
}

// IsValid checks if the status is a valid TicketTypeStatus
func (s TicketTypeStatus) IsValid() bool {
	switch s {
	case TicketTypeStatusActive, TicketTypeStatusPaused, TicketTypeStatusSoldOut:
		return true
	}
	return false
}

// String returns the string representation of TicketTypeStatus
func (s TicketTypeStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s TicketTypeStatus) CanTransitionTo(target TicketTypeStatus) bool {
	return ticketTypeTransitions.CanTransition(s, target)
}

// TicketType represents a sellable ticket category of an event.
// It is the unit of inventory accounting: Quantity caps the total,
// Sold and Reserved track committed and held stock. A nil Quantity
// means unlimited availability.
type TicketType struct {
	shared.BaseAggregateRoot
	EventID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	Name        string               `gorm:"type:varchar(200);not null"`
	Description string               `gorm:"type:text"`
	Price       decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	Currency    valueobject.Currency `gorm:"type:varchar(3);not null;default:'EUR'"`
	Quantity    *int
	Sold        int `gorm:"not null;default:0"`
	Reserved    int `gorm:"not null;default:0"`
	MinPerOrder int `gorm:"not null;default:1"`
	MaxPerOrder int `gorm:"not null;default:10"`
	SaleStartAt *time.Time
	SaleEndAt   *time.Time
	Status      TicketTypeStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	Hidden      bool             `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (TicketType) TableName() string {
	return "ticket_types"
}

// NewTicketType creates a new ticket type for an event
func NewTicketType(eventID uuid.UUID, name string, price valueobject.Money, quantity *int) (*TicketType, error) {
	if eventID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EVENT", "Event ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Ticket type name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if quantity != nil && *quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	tt := &TicketType{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EventID:           eventID,
		Name:              name,
		Price:             price.Amount(),
		Currency:          price.Currency(),
		Quantity:          quantity,
		MinPerOrder:       1,
		MaxPerOrder:       10,
		Status:            TicketTypeStatusActive,
	}

	tt.TrackStatusChange(shared.StatusChange{
		EntityType: shared.EntityTypeTicketType,
		EntityID:   tt.ID,
		ToStatus:   tt.Status.String(),
		ChangedAt:  tt.CreatedAt,
	})

	return tt, nil
}

// IsFree reports whether the ticket type costs nothing
func (t *TicketType) IsFree() bool {
	return t.Price.IsZero()
}

// PriceMoney returns the price as a Money value object
func (t *TicketType) PriceMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(t.Price, t.Currency)
	return m
}

// Unlimited reports whether the ticket type has no quantity cap
func (t *TicketType) Unlimited() bool {
	return t.Quantity == nil
}

// Available returns the remaining sellable quantity and whether the
// ticket type is capped. For unlimited types the count is meaningless
// and the second return is false.
func (t *TicketType) Available() (int, bool) {
	if t.Quantity == nil {
		return 0, false
	}
	available := *t.Quantity - t.Sold - t.Reserved
	if available < 0 {
		available = 0
	}
	return available, true
}

// IsOnSale reports whether the ticket type can be booked at the given time
func (t *TicketType) IsOnSale(now time.Time) bool {
	if t.Status != TicketTypeStatusActive {
		return false
	}
	if t.SaleStartAt != nil && now.Before(*t.SaleStartAt) {
		return false
	}
	if t.SaleEndAt != nil && !now.Before(*t.SaleEndAt) {
		return false
	}
	return true
}

// Reserve places a hold on qty units.
// Fails with INSUFFICIENT_STOCK when fewer units are available; the
// caller runs this under a row lock so the check cannot race.
func (t *TicketType) Reserve(qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if available, capped := t.Available(); capped && qty > available {
		return shared.NewInsufficientStockError(qty, available)
	}

	t.Reserved += qty
	t.UpdatedAt = time.Now()

	return nil
}

// Release returns qty held units to the pool, clamped so the reserved
// counter never goes negative
func (t *TicketType) Release(qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	t.Reserved -= qty
	if t.Reserved < 0 {
		t.Reserved = 0
	}
	t.UpdatedAt = time.Now()

	return nil
}

// ConfirmSale converts qty held units into sold units. When the last
// unit is committed the ticket type flips to SOLD_OUT.
func (t *TicketType) ConfirmSale(qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	t.Sold += qty
	t.Reserved -= qty
	if t.Reserved < 0 {
		t.Reserved = 0
	}
	t.UpdatedAt = time.Now()

	if available, capped := t.Available(); capped && available == 0 && t.Status == TicketTypeStatusActive {
		t.changeStatus(TicketTypeStatusSoldOut, "all tickets sold")
	}

	return nil
}

// Refund returns qty sold units to the pool, clamped at zero.
// A SOLD_OUT ticket type becomes ACTIVE again once stock frees up.
func (t *TicketType) Refund(qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	t.Sold -= qty
	if t.Sold < 0 {
		t.Sold = 0
	}
	t.UpdatedAt = time.Now()

	if t.Status == TicketTypeStatusSoldOut {
		if available, capped := t.Available(); !capped || available > 0 {
			t.changeStatus(TicketTypeStatusActive, "stock returned after refund")
		}
	}

	return nil
}

// Pause suspends sales
func (t *TicketType) Pause() error {
	if !t.Status.CanTransitionTo(TicketTypeStatusPaused) {
		return shared.NewInvalidTransitionError(shared.EntityTypeTicketType, t.Status.String(), TicketTypeStatusPaused.String())
	}
	t.changeStatus(TicketTypeStatusPaused, "")
	return nil
}

// Activate resumes sales from PAUSED or SOLD_OUT
func (t *TicketType) Activate() error {
	if !t.Status.CanTransitionTo(TicketTypeStatusActive) {
		return shared.NewInvalidTransitionError(shared.EntityTypeTicketType, t.Status.String(), TicketTypeStatusActive.String())
	}
	t.changeStatus(TicketTypeStatusActive, "")
	return nil
}

func (t *TicketType) changeStatus(to TicketTypeStatus, notes string) {
	from := t.Status.String()
	now := time.Now()
	t.Status = to
	t.UpdatedAt = now

	t.TrackStatusChange(shared.StatusChange{
		EntityType: shared.EntityTypeTicketType,
		EntityID:   t.ID,
		FromStatus: &from,
		ToStatus:   to.String(),
		Notes:      notes,
		ChangedAt:  now,
	})

	if to == TicketTypeStatusSoldOut {
		t.AddDomainEvent(NewTicketTypeSoldOutEvent(t))
	}
}
