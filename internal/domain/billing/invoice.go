package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/domain/shared/statemachine"
	"github.com/venturehub/backend/internal/domain/shared/valueobject"
)

// BillableKind is the closed set of party types an invoice can bill
type BillableKind string

const (
	BillableKindUser   BillableKind = "USER"
	BillableKindMember BillableKind = "MEMBER"
)

// IsValid checks if the kind is a valid BillableKind
func (k BillableKind) IsValid() bool {
	return k == BillableKindUser || k == BillableKindMember
}

// Billable identifies the party an invoice bills as a typed kind+id
// pair; the kind enum keeps the polymorphic relation exhaustive.
type Billable struct {
	Kind BillableKind `gorm:"type:varchar(20);not null" json:"kind"`
	ID   uuid.UUID    `gorm:"type:uuid;not null" json:"id"`
}

// NewUserBillable creates a Billable referring to a platform user
func NewUserBillable(id uuid.UUID) Billable {
	return Billable{Kind: BillableKindUser, ID: id}
}

// NewMemberBillable creates a Billable referring to a space member
func NewMemberBillable(id uuid.UUID) Billable {
	return Billable{Kind: BillableKindMember, ID: id}
}

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusFailed    InvoiceStatus = "FAILED"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

var invoiceTransitions = statemachine.Graph[InvoiceStatus]{
	InvoiceStatusDraft: {InvoiceStatusSent, InvoiceStatusCancelled},
	InvoiceStatusSent:  {InvoiceStatusPaid, InvoiceStatusFailed, InvoiceStatusCancelled},
}

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusFailed, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	return invoiceTransitions.CanTransition(s, target)
}

// InvoiceLineItem is one billed position on an invoice
type InvoiceLineItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Description string          `gorm:"type:varchar(300);not null" json:"description"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
}

// TableName returns the table name for GORM
func (InvoiceLineItem) TableName() string {
	return "invoice_line_items"
}

// Invoice represents a bill issued for a booking or membership charge
type Invoice struct {
	shared.BaseAggregateRoot
	Number     string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	Billable   Billable             `gorm:"embedded;embeddedPrefix:billable_"`
	Origin     string               `gorm:"type:varchar(50);not null"`
	Items      []InvoiceLineItem    `gorm:"foreignKey:InvoiceID;references:ID"`
	Subtotal   decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	TaxRate    decimal.Decimal      `gorm:"type:decimal(5,4);not null;default:0"`
	TaxAmount  decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	Total      decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	Currency   valueobject.Currency `gorm:"type:varchar(3);not null;default:'EUR'"`
	Status     InvoiceStatus        `gorm:"type:varchar(20);not null"`
	GatewayRef string               `gorm:"type:varchar(100);index"`
	SentAt     *time.Time
	PaidAt     *time.Time
	FailedAt   *time.Time
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a draft invoice for the given billable party.
// Origin names the subsystem that raised it, e.g. "event_booking".
func NewInvoice(number string, billable Billable, origin string, taxRate decimal.Decimal, currency valueobject.Currency) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if !billable.Kind.IsValid() || billable.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BILLABLE", "Invoice billable party is invalid")
	}
	if taxRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	invoice := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Billable:          billable,
		Origin:            origin,
		Items:             make([]InvoiceLineItem, 0),
		Subtotal:          decimal.Zero,
		TaxRate:           taxRate,
		TaxAmount:         decimal.Zero,
		Total:             decimal.Zero,
		Currency:          currency,
		Status:            InvoiceStatusDraft,
	}

	invoice.TrackStatusChange(shared.StatusChange{
		EntityType: shared.EntityTypeInvoice,
		EntityID:   invoice.ID,
		ToStatus:   invoice.Status.String(),
		ChangedAt:  invoice.CreatedAt,
	})

	return invoice, nil
}

// AddLineItem appends a billed position; only allowed while DRAFT
func (i *Invoice) AddLineItem(description string, quantity int, unitPrice decimal.Decimal) error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft invoice")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Line item description cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Line item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Line item price cannot be negative")
	}

	item := InvoiceLineItem{
		ID:          uuid.New(),
		InvoiceID:   i.ID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:   time.Now(),
	}
	i.Items = append(i.Items, item)
	i.recalculateTotals()

	return nil
}

func (i *Invoice) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range i.Items {
		subtotal = subtotal.Add(item.Amount)
	}
	i.Subtotal = subtotal
	i.TaxAmount = subtotal.Mul(i.TaxRate).Round(2)
	i.Total = subtotal.Add(i.TaxAmount)
	i.UpdatedAt = time.Now()
}

// TotalMoney returns the invoice total as a Money value object
func (i *Invoice) TotalMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(i.Total, i.Currency)
	return m
}

// Send issues the invoice to the billable party
func (i *Invoice) Send() error {
	if len(i.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot send an invoice without line items")
	}
	if err := i.transition(InvoiceStatusSent, ""); err != nil {
		return err
	}
	now := time.Now()
	i.SentAt = &now
	i.AddDomainEvent(NewInvoiceSentEvent(i))
	return nil
}

// MarkPaid settles the invoice after a successful payment
func (i *Invoice) MarkPaid(gatewayRef string) error {
	if err := i.transition(InvoiceStatusPaid, fmt.Sprintf("gateway ref %s", gatewayRef)); err != nil {
		return err
	}
	now := time.Now()
	i.GatewayRef = gatewayRef
	i.PaidAt = &now
	i.AddDomainEvent(NewInvoicePaidEvent(i))
	return nil
}

// MarkFailed records a failed payment attempt
func (i *Invoice) MarkFailed(gatewayRef string) error {
	if err := i.transition(InvoiceStatusFailed, fmt.Sprintf("gateway ref %s", gatewayRef)); err != nil {
		return err
	}
	now := time.Now()
	i.GatewayRef = gatewayRef
	i.FailedAt = &now
	i.AddDomainEvent(NewInvoicePaymentFailedEvent(i))
	return nil
}

// Cancel voids a draft or sent invoice
func (i *Invoice) Cancel(notes string) error {
	return i.transition(InvoiceStatusCancelled, notes)
}

func (i *Invoice) transition(target InvoiceStatus, notes string) error {
	if !i.Status.CanTransitionTo(target) {
		return shared.NewInvalidTransitionError(shared.EntityTypeInvoice, i.Status.String(), target.String())
	}

	from := i.Status.String()
	now := time.Now()
	i.Status = target
	i.UpdatedAt = now

	i.TrackStatusChange(shared.StatusChange{
		EntityType: shared.EntityTypeInvoice,
		EntityID:   i.ID,
		FromStatus: &from,
		ToStatus:   target.String(),
		Notes:      notes,
		ChangedAt:  now,
	})

	return nil
}
