package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venturehub/backend/internal/domain/shared/valueobject"
)

func newTestInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv, err := NewInvoice("INV-2026-0001", NewUserBillable(uuid.New()), "event_booking",
		decimal.RequireFromString("0.19"), valueobject.EUR)
	require.NoError(t, err)
	return inv
}

func TestNewInvoice(t *testing.T) {
	t.Run("valid invoice", func(t *testing.T) {
		inv := newTestInvoice(t)
		assert.Equal(t, InvoiceStatusDraft, inv.Status)
		assert.Equal(t, BillableKindUser, inv.Billable.Kind)
		assert.True(t, inv.Total.IsZero())
	})

	t.Run("invalid billable rejected", func(t *testing.T) {
		_, err := NewInvoice("INV-1", Billable{Kind: "ROBOT", ID: uuid.New()}, "x", decimal.Zero, valueobject.EUR)
		assert.Error(t, err)

		_, err = NewInvoice("INV-2", Billable{Kind: BillableKindUser, ID: uuid.Nil}, "x", decimal.Zero, valueobject.EUR)
		assert.Error(t, err)
	})

	t.Run("negative tax rate rejected", func(t *testing.T) {
		_, err := NewInvoice("INV-3", NewMemberBillable(uuid.New()), "x", decimal.NewFromInt(-1), valueobject.EUR)
		assert.Error(t, err)
	})
}

func TestInvoice_LineItemsAndTotals(t *testing.T) {
	inv := newTestInvoice(t)

	require.NoError(t, inv.AddLineItem("General Admission x2", 2, decimal.RequireFromString("25.00")))
	require.NoError(t, inv.AddLineItem("VIP x1", 1, decimal.RequireFromString("80.00")))

	assert.True(t, inv.Subtotal.Equal(decimal.RequireFromString("130.00")), "subtotal is %s", inv.Subtotal)
	assert.True(t, inv.TaxAmount.Equal(decimal.RequireFromString("24.70")), "tax is %s", inv.TaxAmount)
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("154.70")), "total is %s", inv.Total)
}

func TestInvoice_Send(t *testing.T) {
	t.Run("sends a draft with items", func(t *testing.T) {
		inv := newTestInvoice(t)
		require.NoError(t, inv.AddLineItem("Ticket", 1, decimal.NewFromInt(10)))

		require.NoError(t, inv.Send())
		assert.Equal(t, InvoiceStatusSent, inv.Status)
		assert.NotNil(t, inv.SentAt)
	})

	t.Run("empty invoice cannot send", func(t *testing.T) {
		inv := newTestInvoice(t)
		assert.Error(t, inv.Send())
		assert.Equal(t, InvoiceStatusDraft, inv.Status)
	})

	t.Run("items frozen after send", func(t *testing.T) {
		inv := newTestInvoice(t)
		require.NoError(t, inv.AddLineItem("Ticket", 1, decimal.NewFromInt(10)))
		require.NoError(t, inv.Send())

		assert.Error(t, inv.AddLineItem("Another", 1, decimal.NewFromInt(5)))
	})
}

func TestInvoice_PaymentOutcomes(t *testing.T) {
	sent := func(t *testing.T) *Invoice {
		inv := newTestInvoice(t)
		require.NoError(t, inv.AddLineItem("Ticket", 1, decimal.NewFromInt(10)))
		require.NoError(t, inv.Send())
		return inv
	}

	t.Run("mark paid", func(t *testing.T) {
		inv := sent(t)
		require.NoError(t, inv.MarkPaid("pi_123"))
		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		assert.Equal(t, "pi_123", inv.GatewayRef)
		assert.NotNil(t, inv.PaidAt)
	})

	t.Run("mark failed", func(t *testing.T) {
		inv := sent(t)
		require.NoError(t, inv.MarkFailed("pi_456"))
		assert.Equal(t, InvoiceStatusFailed, inv.Status)
	})

	t.Run("draft cannot be paid", func(t *testing.T) {
		inv := newTestInvoice(t)
		assert.Error(t, inv.MarkPaid("pi_789"))
	})

	t.Run("paid invoice is terminal", func(t *testing.T) {
		inv := sent(t)
		require.NoError(t, inv.MarkPaid("pi_123"))
		assert.Error(t, inv.MarkFailed("pi_123"))
		assert.Error(t, inv.Cancel("oops"))
	})
}

func TestInvoice_StatusHistory(t *testing.T) {
	inv := newTestInvoice(t)
	require.NoError(t, inv.AddLineItem("Ticket", 1, decimal.NewFromInt(10)))
	require.NoError(t, inv.Send())
	require.NoError(t, inv.MarkPaid("pi_1"))

	changes := inv.GetStatusChanges()
	require.Len(t, changes, 3)
	assert.Equal(t, "DRAFT", changes[0].ToStatus)
	assert.Equal(t, "SENT", changes[1].ToStatus)
	assert.Equal(t, "PAID", changes[2].ToStatus)
}
