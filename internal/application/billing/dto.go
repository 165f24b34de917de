package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venturehub/backend/internal/domain/billing"
)

// CreateInvoiceRequest is the inbound payload for raising a manual invoice
type CreateInvoiceRequest struct {
	BillableKind string          `json:"billable_kind" binding:"required,oneof=USER MEMBER"`
	BillableID   uuid.UUID       `json:"billable_id" binding:"required"`
	Origin       string          `json:"origin" binding:"required,max=50"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	Currency     string          `json:"currency" binding:"omitempty,len=3"`
}

// AddLineItemRequest appends a billed position to a draft invoice
type AddLineItemRequest struct {
	Description string          `json:"description" binding:"required,max=300"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CancelInvoiceRequest carries the cancellation note
type CancelInvoiceRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

// LineItemResponse is one billed position of an invoice
type LineItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse is the outbound representation of an invoice
type InvoiceResponse struct {
	ID           uuid.UUID          `json:"id"`
	Number       string             `json:"number"`
	BillableKind string             `json:"billable_kind"`
	BillableID   uuid.UUID          `json:"billable_id"`
	Origin       string             `json:"origin"`
	Items        []LineItemResponse `json:"items"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	TaxRate      decimal.Decimal    `json:"tax_rate"`
	TaxAmount    decimal.Decimal    `json:"tax_amount"`
	Total        decimal.Decimal    `json:"total"`
	Currency     string             `json:"currency"`
	Status       string             `json:"status"`
	GatewayRef   string             `json:"gateway_ref,omitempty"`
	SentAt       *time.Time         `json:"sent_at,omitempty"`
	PaidAt       *time.Time         `json:"paid_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// ToInvoiceResponse maps an invoice aggregate to its response shape
func ToInvoiceResponse(i *billing.Invoice) InvoiceResponse {
	items := make([]LineItemResponse, len(i.Items))
	for idx, item := range i.Items {
		items[idx] = LineItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return InvoiceResponse{
		ID:           i.ID,
		Number:       i.Number,
		BillableKind: string(i.Billable.Kind),
		BillableID:   i.Billable.ID,
		Origin:       i.Origin,
		Items:        items,
		Subtotal:     i.Subtotal,
		TaxRate:      i.TaxRate,
		TaxAmount:    i.TaxAmount,
		Total:        i.Total,
		Currency:     string(i.Currency),
		Status:       i.Status.String(),
		GatewayRef:   i.GatewayRef,
		SentAt:       i.SentAt,
		PaidAt:       i.PaidAt,
		CreatedAt:    i.CreatedAt,
	}
}
