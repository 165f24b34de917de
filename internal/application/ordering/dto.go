package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venturehub/backend/internal/domain/ordering"
	"github.com/venturehub/backend/internal/domain/shared"
)

// CreateOrderRequest is the inbound payload for creating a merchandise order
type CreateOrderRequest struct {
	OrderNumber  string          `json:"order_number" binding:"required,max=50"`
	CustomerID   uuid.UUID       `json:"customer_id" binding:"required"`
	CustomerName string          `json:"customer_name" binding:"required,max=200"`
	TotalAmount  decimal.Decimal `json:"total_amount" binding:"required"`
}

// ShipOrderRequest carries the carrier tracking code
type ShipOrderRequest struct {
	TrackingCode string `json:"tracking_code" binding:"required,max=100"`
}

// CancelOrderRequest carries the cancellation reason
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// RefundOrderRequest carries optional operator notes
type RefundOrderRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

// OrderResponse is the outbound representation of an order
type OrderResponse struct {
	ID             uuid.UUID       `json:"id"`
	OrderNumber    string          `json:"order_number"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Status         string          `json:"status"`
	PreviousStatus *string         `json:"previous_status,omitempty"`
	TrackingCode   string          `json:"tracking_code,omitempty"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	ShippedAt      *time.Time      `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time      `json:"delivered_at,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	CancelledAt    *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// StatusHistoryResponse is one audit trail entry of an order
type StatusHistoryResponse struct {
	FromStatus *string    `json:"from_status,omitempty"`
	ToStatus   string     `json:"to_status"`
	ActorID    *uuid.UUID `json:"actor_id,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	ChangedAt  time.Time  `json:"changed_at"`
}

// ToOrderResponse maps an order aggregate to its response shape
func ToOrderResponse(o *ordering.Order) OrderResponse {
	resp := OrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		TotalAmount:  o.TotalAmount,
		Status:       o.Status.String(),
		TrackingCode: o.TrackingCode,
		PaidAt:       o.PaidAt,
		ShippedAt:    o.ShippedAt,
		DeliveredAt:  o.DeliveredAt,
		CompletedAt:  o.CompletedAt,
		CancelledAt:  o.CancelledAt,
		CreatedAt:    o.CreatedAt,
	}
	if o.PreviousStatus != nil {
		prev := o.PreviousStatus.String()
		resp.PreviousStatus = &prev
	}
	return resp
}

// ToStatusHistoryResponse maps a history entry to its response shape
func ToStatusHistoryResponse(e shared.StatusHistoryEntry) StatusHistoryResponse {
	return StatusHistoryResponse{
		FromStatus: e.FromStatus,
		ToStatus:   e.ToStatus,
		ActorID:    e.ActorID,
		Notes:      e.Notes,
		ChangedAt:  e.CreatedAt,
	}
}
