package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/domain/shared/statemachine"
)

// OrderStatus represents the fulfilment status of a merchandise order
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusProcessing     OrderStatus = "PROCESSING"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
	OrderStatusRefunded       OrderStatus = "REFUNDED"
)

var orderTransitions = statemachine.Graph[OrderStatus]{
	OrderStatusPending:        {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing:     {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:        {OrderStatusOutForDelivery, OrderStatusCancelled},
	OrderStatusOutForDelivery: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:      {OrderStatusCompleted, OrderStatusRefunded, OrderStatusCancelled},
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusOutForDelivery,
		OrderStatusDelivered, OrderStatusCompleted, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	return orderTransitions.CanTransition(s, target)
}

// IsTerminal reports whether the status allows no further transitions
func (s OrderStatus) IsTerminal() bool {
	return orderTransitions.IsTerminal(s)
}

// Order represents a merchandise order aggregate root.
// PreviousStatus keeps the last status before the current one for audit
// display; the full trail lives in the status history ledger.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber    string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName   string          `gorm:"type:varchar(200);not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null"`
	PreviousStatus *OrderStatus    `gorm:"type:varchar(20)"`
	TrackingCode   string          `gorm:"type:varchar(100)"`
	PaidAt         *time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CompletedAt    *time.Time
	CancelledAt    *time.Time
	RefundedAt     *time.Time
	CancelReason   string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in PENDING status
func NewOrder(orderNumber string, customerID uuid.UUID, customerName string, totalAmount decimal.Decimal) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if totalAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Order total cannot be negative")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		TotalAmount:       totalAmount,
		Status:            OrderStatusPending,
	}

	order.TrackStatusChange(shared.StatusChange{
		EntityType: shared.EntityTypeOrder,
		EntityID:   order.ID,
		ToStatus:   order.Status.String(),
		ChangedAt:  order.CreatedAt,
	})
	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// StartProcessing moves the order to PROCESSING
func (o *Order) StartProcessing(actorID *uuid.UUID) error {
	if err := o.transition(OrderStatusProcessing, actorID, ""); err != nil {
		return err
	}
	return nil
}

// Ship marks the order as handed to the carrier
func (o *Order) Ship(trackingCode string, actorID *uuid.UUID) error {
	if err := o.transition(OrderStatusShipped, actorID, ""); err != nil {
		return err
	}
	now := time.Now()
	o.TrackingCode = trackingCode
	o.ShippedAt = &now
	o.AddDomainEvent(NewOrderShippedEvent(o))
	return nil
}

// MarkOutForDelivery marks the order as out for delivery
func (o *Order) MarkOutForDelivery(actorID *uuid.UUID) error {
	return o.transition(OrderStatusOutForDelivery, actorID, "")
}

// MarkDelivered marks the order as delivered to the customer
func (o *Order) MarkDelivered(actorID *uuid.UUID) error {
	if err := o.transition(OrderStatusDelivered, actorID, ""); err != nil {
		return err
	}
	now := time.Now()
	o.DeliveredAt = &now
	return nil
}

// Complete closes a delivered order
func (o *Order) Complete(actorID *uuid.UUID) error {
	if err := o.transition(OrderStatusCompleted, actorID, ""); err != nil {
		return err
	}
	now := time.Now()
	o.CompletedAt = &now
	o.AddDomainEvent(NewOrderCompletedEvent(o))
	return nil
}

// Cancel aborts a non-terminal order
func (o *Order) Cancel(reason string, actorID *uuid.UUID) error {
	if err := o.transition(OrderStatusCancelled, actorID, reason); err != nil {
		return err
	}
	now := time.Now()
	o.CancelledAt = &now
	o.CancelReason = reason
	o.AddDomainEvent(NewOrderCancelledEvent(o))
	return nil
}

// Refund refunds a delivered order
func (o *Order) Refund(actorID *uuid.UUID, notes string) error {
	if err := o.transition(OrderStatusRefunded, actorID, notes); err != nil {
		return err
	}
	now := time.Now()
	o.RefundedAt = &now
	o.AddDomainEvent(NewOrderRefundedEvent(o))
	return nil
}

// MarkPaid records the payment timestamp; not a status transition
func (o *Order) MarkPaid(at time.Time) {
	o.PaidAt = &at
	o.UpdatedAt = time.Now()
}

func (o *Order) transition(target OrderStatus, actorID *uuid.UUID, notes string) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewInvalidTransitionError(shared.EntityTypeOrder, o.Status.String(), target.String())
	}

	from := o.Status
	fromStr := from.String()
	now := time.Now()
	o.PreviousStatus = &from
	o.Status = target
	o.UpdatedAt = now

	o.TrackStatusChange(shared.StatusChange{
		EntityType: shared.EntityTypeOrder,
		EntityID:   o.ID,
		FromStatus: &fromStr,
		ToStatus:   target.String(),
		ActorID:    actorID,
		Notes:      notes,
		ChangedAt:  now,
	})

	return nil
}
