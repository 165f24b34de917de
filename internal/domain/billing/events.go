package billing

import (
	"github.com/shopspring/decimal"

	"github.com/venturehub/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// Event type constants
const (
	EventTypeInvoiceSent          = "InvoiceSent"
	EventTypeInvoicePaid          = "InvoicePaid"
	EventTypeInvoicePaymentFailed = "InvoicePaymentFailed"
)

// InvoiceSentEvent is raised when an invoice is issued
type InvoiceSentEvent struct {
	shared.BaseDomainEvent
	Number string          `json:"number"`
	Total  decimal.Decimal `json:"total"`
}

// NewInvoiceSentEvent creates a new InvoiceSentEvent
func NewInvoiceSentEvent(i *Invoice) *InvoiceSentEvent {
	return &InvoiceSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceSent, AggregateTypeInvoice, i.ID),
		Number:          i.Number,
		Total:           i.Total,
	}
}

// InvoicePaidEvent is raised when an invoice settles
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	Number     string          `json:"number"`
	Total      decimal.Decimal `json:"total"`
	GatewayRef string          `json:"gateway_ref"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(i *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, AggregateTypeInvoice, i.ID),
		Number:          i.Number,
		Total:           i.Total,
		GatewayRef:      i.GatewayRef,
	}
}

// InvoicePaymentFailedEvent is raised when a payment attempt fails
type InvoicePaymentFailedEvent struct {
	shared.BaseDomainEvent
	Number     string `json:"number"`
	GatewayRef string `json:"gateway_ref"`
}

// NewInvoicePaymentFailedEvent creates a new InvoicePaymentFailedEvent
func NewInvoicePaymentFailedEvent(i *Invoice) *InvoicePaymentFailedEvent {
	return &InvoicePaymentFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaymentFailed, AggregateTypeInvoice, i.ID),
		Number:          i.Number,
		GatewayRef:      i.GatewayRef,
	}
}
