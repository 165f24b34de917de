package ticketing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venturehub/backend/internal/domain/billing"
	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/domain/shared/valueobject"
	"github.com/venturehub/backend/internal/domain/ticketing"
)

// ---- in-memory fakes ----

type memEventRepo struct {
	mu     sync.Mutex
	events map[uuid.UUID]*ticketing.Event
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: map[uuid.UUID]*ticketing.Event{}}
}

func (r *memEventRepo) FindByID(_ context.Context, id uuid.UUID) (*ticketing.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *memEventRepo) FindAll(_ context.Context, _ shared.Filter) ([]ticketing.Event, error) {
	return nil, nil
}

func (r *memEventRepo) Save(_ context.Context, e *ticketing.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// buffered events and status changes are not columns, they must not
	// survive the round trip
	copied := *e
	copied.ClearDomainEvents()
	copied.ClearStatusChanges()
	r.events[e.ID] = &copied
	return nil
}

func (r *memEventRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.events, id)
	return nil
}

func (r *memEventRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.events)), nil
}

func (r *memEventRepo) FindBySlug(_ context.Context, slug string) (*ticketing.Event, error) {
	for _, e := range r.events {
		if e.Slug == slug {
			copied := *e
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memEventRepo) SaveWithLock(ctx context.Context, e *ticketing.Event, _ int) error {
	return r.Save(ctx, e)
}

type memTicketTypeRepo struct {
	mu    sync.Mutex
	types map[uuid.UUID]*ticketing.TicketType
}

func newMemTicketTypeRepo() *memTicketTypeRepo {
	return &memTicketTypeRepo{types: map[uuid.UUID]*ticketing.TicketType{}}
}

func (r *memTicketTypeRepo) FindByID(_ context.Context, id uuid.UUID) (*ticketing.TicketType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tt, ok := r.types[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *tt
	return &copied, nil
}

func (r *memTicketTypeRepo) FindAll(_ context.Context, _ shared.Filter) ([]ticketing.TicketType, error) {
	return nil, nil
}

func (r *memTicketTypeRepo) Save(_ context.Context, tt *ticketing.TicketType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *tt
	copied.ClearDomainEvents()
	copied.ClearStatusChanges()
	r.types[tt.ID] = &copied
	return nil
}

func (r *memTicketTypeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.types, id)
	return nil
}

func (r *memTicketTypeRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.types)), nil
}

func (r *memTicketTypeRepo) FindByEventID(_ context.Context, eventID uuid.UUID) ([]ticketing.TicketType, error) {
	var out []ticketing.TicketType
	for _, tt := range r.types {
		if tt.EventID == eventID {
			out = append(out, *tt)
		}
	}
	return out, nil
}

func (r *memTicketTypeRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ticketing.TicketType, error) {
	return r.FindByID(ctx, id)
}

type memAttendeeRepo struct {
	mu        sync.Mutex
	attendees map[uuid.UUID]*ticketing.Attendee
}

func newMemAttendeeRepo() *memAttendeeRepo {
	return &memAttendeeRepo{attendees: map[uuid.UUID]*ticketing.Attendee{}}
}

func (r *memAttendeeRepo) FindByID(_ context.Context, id uuid.UUID) (*ticketing.Attendee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attendees[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *memAttendeeRepo) FindAll(_ context.Context, _ shared.Filter) ([]ticketing.Attendee, error) {
	return nil, nil
}

func (r *memAttendeeRepo) Save(_ context.Context, a *ticketing.Attendee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *a
	copied.ClearDomainEvents()
	copied.ClearStatusChanges()
	r.attendees[a.ID] = &copied
	return nil
}

func (r *memAttendeeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.attendees, id)
	return nil
}

func (r *memAttendeeRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.attendees)), nil
}

func (r *memAttendeeRepo) FindByEventID(_ context.Context, eventID uuid.UUID, _ shared.Filter) ([]ticketing.Attendee, error) {
	var out []ticketing.Attendee
	for _, a := range r.attendees {
		if a.EventID == eventID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAttendeeRepo) FindByInvoiceID(_ context.Context, invoiceID uuid.UUID) ([]ticketing.Attendee, error) {
	var out []ticketing.Attendee
	for _, a := range r.attendees {
		if a.InvoiceID != nil && *a.InvoiceID == invoiceID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAttendeeRepo) FindByTicketCode(_ context.Context, code string) (*ticketing.Attendee, error) {
	for _, a := range r.attendees {
		if a.TicketCode == code {
			copied := *a
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memAttendeeRepo) CountByEventAndStatus(_ context.Context, eventID uuid.UUID, status ticketing.AttendeeStatus) (int64, error) {
	var n int64
	for _, a := range r.attendees {
		if a.EventID == eventID && a.Status == status {
			n++
		}
	}
	return n, nil
}

type memInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[uuid.UUID]*billing.Invoice
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{invoices: map[uuid.UUID]*billing.Invoice{}}
}

func (r *memInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *inv
	return &copied, nil
}

func (r *memInvoiceRepo) FindAll(_ context.Context, _ shared.Filter) ([]billing.Invoice, error) {
	return nil, nil
}

func (r *memInvoiceRepo) Save(_ context.Context, inv *billing.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *inv
	copied.ClearDomainEvents()
	copied.ClearStatusChanges()
	r.invoices[inv.ID] = &copied
	return nil
}

func (r *memInvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.invoices, id)
	return nil
}

func (r *memInvoiceRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.invoices)), nil
}

func (r *memInvoiceRepo) FindByNumber(_ context.Context, number string) (*billing.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.Number == number {
			copied := *inv
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memInvoiceRepo) FindByGatewayRef(_ context.Context, ref string) (*billing.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.GatewayRef == ref {
			copied := *inv
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

type memHistoryRepo struct {
	mu      sync.Mutex
	entries []shared.StatusHistoryEntry
}

func (r *memHistoryRepo) Record(_ context.Context, entry *shared.StatusHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memHistoryRepo) FindByEntity(_ context.Context, entityType shared.EntityType, entityID uuid.UUID) ([]shared.StatusHistoryEntry, error) {
	var out []shared.StatusHistoryEntry
	for _, e := range r.entries {
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memHistoryRepo) FindLatest(ctx context.Context, entityType shared.EntityType, entityID uuid.UUID) (*shared.StatusHistoryEntry, error) {
	all, _ := r.FindByEntity(ctx, entityType, entityID)
	if len(all) == 0 {
		return nil, shared.ErrNotFound
	}
	return &all[len(all)-1], nil
}

type memIdempotencyStore struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemIdempotencyStore() *memIdempotencyStore {
	return &memIdempotencyStore{seen: map[string]bool{}}
}

func (s *memIdempotencyStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[key] {
		return false, nil
	}
	s.seen[key] = true
	return true, nil
}

func (s *memIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[key], nil
}

func (s *memIdempotencyStore) Close() error { return nil }

type recordingIssuer struct {
	mu     sync.Mutex
	issued []string
}

func (i *recordingIssuer) Issue(_ context.Context, attendee *ticketing.Attendee, _ *ticketing.Event) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.issued = append(i.issued, attendee.TicketCode)
	return nil
}

// flakyTransactionScope fails the first executions with a transient
// error before delegating to the real scope
type flakyTransactionScope struct {
	inner    TransactionScope
	failures int
}

func (s *flakyTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	if s.failures > 0 {
		s.failures--
		return errors.New("driver: bad connection")
	}
	return s.inner.Execute(ctx, fn)
}

// ---- fixture ----

type bookingFixture struct {
	service   *BookingService
	events    *memEventRepo
	types     *memTicketTypeRepo
	attendees *memAttendeeRepo
	invoices  *memInvoiceRepo
	history   *memHistoryRepo
	issuer    *recordingIssuer
	event     *ticketing.Event
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	f := &bookingFixture{
		events:    newMemEventRepo(),
		types:     newMemTicketTypeRepo(),
		attendees: newMemAttendeeRepo(),
		invoices:  newMemInvoiceRepo(),
		history:   &memHistoryRepo{},
		issuer:    &recordingIssuer{},
	}

	scope := NewNoOpTransactionScope(f.events, f.types, f.attendees, f.invoices, f.history)
	f.service = NewBookingService(scope, f.issuer, newMemIdempotencyStore(),
		decimal.RequireFromString("0.19"), zap.NewNop())

	event, err := ticketing.NewEvent("Founder Summit", "founder-summit",
		time.Now().Add(30*24*time.Hour), time.Now().Add(31*24*time.Hour))
	require.NoError(t, err)
	event.Publish()
	event.ClearDomainEvents()
	require.NoError(t, f.events.Save(context.Background(), event))
	f.event = event

	return f
}

func (f *bookingFixture) addTicketType(t *testing.T, name string, price string, quantity *int) *ticketing.TicketType {
	t.Helper()
	tt, err := ticketing.NewTicketType(f.event.ID, name,
		valueobject.NewMoneyEUR(decimal.RequireFromString(price)), quantity)
	require.NoError(t, err)
	tt.ClearStatusChanges()
	require.NoError(t, f.types.Save(context.Background(), tt))
	return tt
}

func intPtr(n int) *int { return &n }

// ---- tests ----

func TestBookingService_CreateBooking_Free(t *testing.T) {
	f := newBookingFixture(t)
	tt := f.addTicketType(t, "Community Pass", "0", intPtr(100))

	resp, err := f.service.CreateBooking(context.Background(), f.event.ID, CreateBookingRequest{
		Attendees: []BookingAttendeeRequest{
			{TicketTypeID: tt.ID, Name: "Ada", Email: "ada@example.com"},
			{TicketTypeID: tt.ID, Name: "Grace", Email: "grace@example.com"},
		},
	})
	require.NoError(t, err)

	assert.Len(t, resp.Attendees, 2)
	assert.Nil(t, resp.Invoice)
	for _, a := range resp.Attendees {
		assert.Equal(t, "CONFIRMED", a.Status)
		assert.NotEmpty(t, a.TicketCode)
	}

	stored, err := f.types.FindByID(context.Background(), tt.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Sold)
	assert.Equal(t, 0, stored.Reserved)

	event, err := f.events.FindByID(context.Background(), f.event.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, event.RegisteredCount)

	assert.Len(t, f.issuer.issued, 2)
}

func TestBookingService_CreateBooking_Paid(t *testing.T) {
	f := newBookingFixture(t)
	tt := f.addTicketType(t, "General Admission", "25.00", intPtr(50))

	userID := uuid.New()
	resp, err := f.service.CreateBooking(context.Background(), f.event.ID, CreateBookingRequest{
		Attendees: []BookingAttendeeRequest{
			{TicketTypeID: tt.ID, Name: "Ada", Email: "ada@example.com"},
			{TicketTypeID: tt.ID, Name: "Grace", Email: "grace@example.com"},
		},
		UserID: &userID,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Invoice)
	assert.Equal(t, "SENT", resp.Invoice.Status)
	assert.True(t, resp.Invoice.Subtotal.Equal(decimal.RequireFromString("50.00")),
		"subtotal is %s", resp.Invoice.Subtotal)
	assert.True(t, resp.Invoice.Total.Equal(decimal.RequireFromString("59.50")),
		"total is %s", resp.Invoice.Total)

	for _, a := range resp.Attendees {
		assert.Equal(t, "PENDING_PAYMENT", a.Status)
	}

	stored, err := f.types.FindByID(context.Background(), tt.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Sold)
	assert.Equal(t, 2, stored.Reserved)

	event, err := f.events.FindByID(context.Background(), f.event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, event.RegisteredCount, "registration counts only after payment")

	assert.Empty(t, f.issuer.issued, "no tickets before payment")
}

func TestBookingService_CreateBooking_InsufficientStock(t *testing.T) {
	f := newBookingFixture(t)
	tt := f.addTicketType(t, "VIP", "80.00", intPtr(1))

	_, err := f.service.CreateBooking(context.Background(), f.event.ID, CreateBookingRequest{
		Attendees: []BookingAttendeeRequest{
			{TicketTypeID: tt.ID, Name: "Ada", Email: "ada@example.com"},
			{TicketTypeID: tt.ID, Name: "Grace", Email: "grace@example.com"},
		},
		UserID: uuidPtr(uuid.New()),
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)

	// nothing booked, nothing held
	stored, findErr := f.types.FindByID(context.Background(), tt.ID)
	require.NoError(t, findErr)
	assert.Equal(t, 0, stored.Reserved)
	assert.Equal(t, 0, stored.Sold)
	count, _ := f.attendees.Count(context.Background(), shared.DefaultFilter())
	assert.Zero(t, count)
}

func TestBookingService_CreateBooking_Guards(t *testing.T) {
	t.Run("unpublished event rejects bookings", func(t *testing.T) {
		f := newBookingFixture(t)
		tt := f.addTicketType(t, "GA", "10.00", nil)

		f.event.Published = false
		require.NoError(t, f.events.Save(context.Background(), f.event))

		_, err := f.service.CreateBooking(context.Background(), f.event.ID, CreateBookingRequest{
			Attendees: []BookingAttendeeRequest{{TicketTypeID: tt.ID, Name: "Ada", Email: "a@example.com"}},
			UserID:    uuidPtr(uuid.New()),
		})
		assert.ErrorIs(t, err, shared.ErrRegistrationClosed)
	})

	t.Run("guests rejected when not allowed", func(t *testing.T) {
		f := newBookingFixture(t)
		tt := f.addTicketType(t, "GA", "10.00", nil)

		f.event.AllowGuests = false
		require.NoError(t, f.events.Save(context.Background(), f.event))

		_, err := f.service.CreateBooking(context.Background(), f.event.ID, CreateBookingRequest{
			Attendees: []BookingAttendeeRequest{{TicketTypeID: tt.ID, Name: "Ada", Email: "a@example.com"}},
		})
		assert.ErrorIs(t, err, shared.ErrGuestNotAllowed)
	})

	t.Run("per order cap enforced", func(t *testing.T) {
		f := newBookingFixture(t)
		tt := f.addTicketType(t, "GA", "10.00", nil)

		f.event.MaxTicketsPerOrder = 1
		require.NoError(t, f.events.Save(context.Background(), f.event))

		_, err := f.service.CreateBooking(context.Background(), f.event.ID, CreateBookingRequest{
			Attendees: []BookingAttendeeRequest{
				{TicketTypeID: tt.ID, Name: "Ada", Email: "a@example.com"},
				{TicketTypeID: tt.ID, Name: "Grace", Email: "g@example.com"},
			},
			UserID: uuidPtr(uuid.New()),
		})
		assert.Error(t, err)
	})

	t.Run("paused ticket type not purchasable", func(t *testing.T) {
		f := newBookingFixture(t)
		tt := f.addTicketType(t, "GA", "10.00", nil)
		require.NoError(t, tt.Pause())
		require.NoError(t, f.types.Save(context.Background(), tt))

		_, err := f.service.CreateBooking(context.Background(), f.event.ID, CreateBookingRequest{
			Attendees: []BookingAttendeeRequest{{TicketTypeID: tt.ID, Name: "Ada", Email: "a@example.com"}},
			UserID:    uuidPtr(uuid.New()),
		})
		assert.ErrorIs(t, err, shared.ErrTicketTypeNotOnSale)
	})
}

func TestBookingService_HandlePaymentCompleted(t *testing.T) {
	f := newBookingFixture(t)
	tt := f.addTicketType(t, "General Admission", "25.00", intPtr(50))

	resp, err := f.service.CreateBooking(context.Background(), f.event.ID, CreateBookingRequest{
		Attendees: []BookingAttendeeRequest{
			{TicketTypeID: tt.ID, Name: "Ada", Email: "ada@example.com"},
			{TicketTypeID: tt.ID, Name: "Grace", Email: "grace@example.com"},
		},
		UserID: uuidPtr(uuid.New()),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Invoice)

	require.NoError(t, f.service.HandlePaymentCompleted(context.Background(), resp.Invoice.ID, "pi_abc"))

	stored, err := f.types.FindByID(context.Background(), tt.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Sold)
	assert.Equal(t, 0, stored.Reserved)

	for _, a := range resp.Attendees {
		attendee, err := f.attendees.FindByID(context.Background(), a.ID)
		require.NoError(t, err)
		assert.Equal(t, ticketing.AttendeeStatusConfirmed, attendee.Status)
		assert.True(t, attendee.AmountPaid.Equal(decimal.RequireFromString("25.00")))
	}

	invoice, err := f.invoices.FindByID(context.Background(), resp.Invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusPaid, invoice.Status)
	assert.Equal(t, "pi_abc", invoice.GatewayRef)

	event, err := f.events.FindByID(context.Background(), f.event.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, event.RegisteredCount)

	assert.Len(t, f.issuer.issued, 2)

	t.Run("duplicate callback is a no-op", func(t *testing.T) {
		require.NoError(t, f.service.HandlePaymentCompleted(context.Background(), resp.Invoice.ID, "pi_abc"))

		stored, err := f.types.FindByID(context.Background(), tt.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.Sold)
		assert.Len(t, f.issuer.issued, 2, "no duplicate tickets")
	})
}

func TestBookingService_HandlePaymentCompleted_RetryAfterTransientError(t *testing.T) {
	f := newBookingFixture(t)
	tt := f.addTicketType(t, "General Admission", "25.00", intPtr(50))

	resp, err := f.service.CreateBooking(context.Background(), f.event.ID, CreateBookingRequest{
		Attendees: []BookingAttendeeRequest{{TicketTypeID: tt.ID, Name: "Ada", Email: "ada@example.com"}},
		UserID:    uuidPtr(uuid.New()),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Invoice)

	flaky := &flakyTransactionScope{
		inner:    NewNoOpTransactionScope(f.events, f.types, f.attendees, f.invoices, f.history),
		failures: 1,
	}
	svc := NewBookingService(flaky, f.issuer, newMemIdempotencyStore(),
		decimal.RequireFromString("0.19"), zap.NewNop())

	require.Error(t, svc.HandlePaymentCompleted(context.Background(), resp.Invoice.ID, "pi_retry"))

	// the gateway redelivers the same callback; the failed attempt must
	// not have consumed its key
	require.NoError(t, svc.HandlePaymentCompleted(context.Background(), resp.Invoice.ID, "pi_retry"))

	attendee, err := f.attendees.FindByID(context.Background(), resp.Attendees[0].ID)
	require.NoError(t, err)
	assert.Equal(t, ticketing.AttendeeStatusConfirmed, attendee.Status)

	stored, err := f.types.FindByID(context.Background(), tt.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Sold)
	assert.Equal(t, 0, stored.Reserved)

	t.Run("later delivery is a duplicate", func(t *testing.T) {
		require.NoError(t, svc.HandlePaymentCompleted(context.Background(), resp.Invoice.ID, "pi_retry"))

		stored, err := f.types.FindByID(context.Background(), tt.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.Sold, "no double sale")
	})
}

func TestBookingService_HandlePaymentFailed(t *testing.T) {
	f := newBookingFixture(t)
	tt := f.addTicketType(t, "General Admission", "25.00", intPtr(50))

	resp, err := f.service.CreateBooking(context.Background(), f.event.ID, CreateBookingRequest{
		Attendees: []BookingAttendeeRequest{{TicketTypeID: tt.ID, Name: "Ada", Email: "ada@example.com"}},
		UserID:    uuidPtr(uuid.New()),
	})
	require.NoError(t, err)

	require.NoError(t, f.service.HandlePaymentFailed(context.Background(), resp.Invoice.ID, "pi_bad"))

	stored, err := f.types.FindByID(context.Background(), tt.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Sold)
	assert.Equal(t, 0, stored.Reserved, "hold returned to the pool")

	attendee, err := f.attendees.FindByID(context.Background(), resp.Attendees[0].ID)
	require.NoError(t, err)
	assert.Equal(t, ticketing.AttendeeStatusExpired, attendee.Status)

	invoice, err := f.invoices.FindByID(context.Background(), resp.Invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusFailed, invoice.Status)
}

func TestBookingService_CancelBooking(t *testing.T) {
	t.Run("confirmed attendee refunds the seat", func(t *testing.T) {
		f := newBookingFixture(t)
		tt := f.addTicketType(t, "Community Pass", "0", intPtr(10))

		resp, err := f.service.CreateBooking(context.Background(), f.event.ID, CreateBookingRequest{
			Attendees: []BookingAttendeeRequest{{TicketTypeID: tt.ID, Name: "Ada", Email: "ada@example.com"}},
		})
		require.NoError(t, err)

		require.NoError(t, f.service.CancelBooking(context.Background(), resp.Attendees[0].ID, "cannot make it", nil))

		stored, err := f.types.FindByID(context.Background(), tt.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, stored.Sold)

		event, err := f.events.FindByID(context.Background(), f.event.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, event.RegisteredCount)
	})

	t.Run("pending attendee releases the hold", func(t *testing.T) {
		f := newBookingFixture(t)
		tt := f.addTicketType(t, "General Admission", "25.00", intPtr(10))

		resp, err := f.service.CreateBooking(context.Background(), f.event.ID, CreateBookingRequest{
			Attendees: []BookingAttendeeRequest{{TicketTypeID: tt.ID, Name: "Ada", Email: "ada@example.com"}},
			UserID:    uuidPtr(uuid.New()),
		})
		require.NoError(t, err)

		require.NoError(t, f.service.CancelBooking(context.Background(), resp.Attendees[0].ID, "changed mind", nil))

		stored, err := f.types.FindByID(context.Background(), tt.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, stored.Reserved)
		assert.Equal(t, 0, stored.Sold)
	})

	t.Run("cancelled attendee cannot cancel again", func(t *testing.T) {
		f := newBookingFixture(t)
		tt := f.addTicketType(t, "Community Pass", "0", intPtr(10))

		resp, err := f.service.CreateBooking(context.Background(), f.event.ID, CreateBookingRequest{
			Attendees: []BookingAttendeeRequest{{TicketTypeID: tt.ID, Name: "Ada", Email: "ada@example.com"}},
		})
		require.NoError(t, err)
		require.NoError(t, f.service.CancelBooking(context.Background(), resp.Attendees[0].ID, "x", nil))

		err = f.service.CancelBooking(context.Background(), resp.Attendees[0].ID, "again", nil)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	})
}

func TestBookingService_StatusHistoryTrail(t *testing.T) {
	f := newBookingFixture(t)
	tt := f.addTicketType(t, "General Admission", "25.00", intPtr(10))

	resp, err := f.service.CreateBooking(context.Background(), f.event.ID, CreateBookingRequest{
		Attendees: []BookingAttendeeRequest{{TicketTypeID: tt.ID, Name: "Ada", Email: "ada@example.com"}},
		UserID:    uuidPtr(uuid.New()),
	})
	require.NoError(t, err)
	require.NoError(t, f.service.HandlePaymentCompleted(context.Background(), resp.Invoice.ID, "pi_1"))
	require.NoError(t, f.service.CheckInAttendee(context.Background(), resp.Attendees[0].ID, nil))

	trail, err := f.history.FindByEntity(context.Background(), shared.EntityTypeAttendee, resp.Attendees[0].ID)
	require.NoError(t, err)
	require.Len(t, trail, 3)
	assert.Nil(t, trail[0].FromStatus)
	assert.Equal(t, "PENDING_PAYMENT", trail[0].ToStatus)
	assert.Equal(t, "CONFIRMED", trail[1].ToStatus)
	assert.Equal(t, "CHECKED_IN", trail[2].ToStatus)

	invoiceTrail, err := f.history.FindByEntity(context.Background(), shared.EntityTypeInvoice, resp.Invoice.ID)
	require.NoError(t, err)
	require.Len(t, invoiceTrail, 3)
	assert.Equal(t, "PAID", invoiceTrail[2].ToStatus)
}

func TestBookingService_ResendTicket(t *testing.T) {
	f := newBookingFixture(t)
	tt := f.addTicketType(t, "Community Pass", "0", intPtr(10))

	resp, err := f.service.CreateBooking(context.Background(), f.event.ID, CreateBookingRequest{
		Attendees: []BookingAttendeeRequest{{TicketTypeID: tt.ID, Name: "Ada", Email: "ada@example.com"}},
	})
	require.NoError(t, err)
	require.Len(t, f.issuer.issued, 1)

	require.NoError(t, f.service.ResendTicket(context.Background(), resp.Attendees[0].ID))
	assert.Len(t, f.issuer.issued, 2)

	t.Run("pending attendee cannot receive a ticket", func(t *testing.T) {
		paidType := f.addTicketType(t, "GA", "25.00", intPtr(10))
		pendingResp, err := f.service.CreateBooking(context.Background(), f.event.ID, CreateBookingRequest{
			Attendees: []BookingAttendeeRequest{{TicketTypeID: paidType.ID, Name: "Grace", Email: "g@example.com"}},
			UserID:    uuidPtr(uuid.New()),
		})
		require.NoError(t, err)

		assert.Error(t, f.service.ResendTicket(context.Background(), pendingResp.Attendees[0].ID))
	})
}

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }
