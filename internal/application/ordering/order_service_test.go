package ordering

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venturehub/backend/internal/domain/ordering"
	"github.com/venturehub/backend/internal/domain/shared"
)

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*ordering.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[uuid.UUID]*ordering.Order{}}
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*ordering.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *memOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]ordering.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ordering.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *memOrderRepo) Save(_ context.Context, o *ordering.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// buffered events and status changes are not columns, they must not
	// survive the round trip
	copied := *o
	copied.ClearDomainEvents()
	copied.ClearStatusChanges()
	r.orders[o.ID] = &copied
	return nil
}

func (r *memOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *memOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *memOrderRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*ordering.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			copied := *o
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memOrderRepo) SaveWithLock(ctx context.Context, o *ordering.Order, expectedVersion int) error {
	r.mu.Lock()
	stored, ok := r.orders[o.ID]
	if ok && stored.Version != expectedVersion {
		r.mu.Unlock()
		return shared.ErrConcurrencyConflict
	}
	r.mu.Unlock()
	o.IncrementVersion()
	return r.Save(ctx, o)
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

func newOrderFixture() (*OrderService, *memOrderRepo, *memHistoryRepo) {
	orders := newMemOrderRepo()
	history := &memHistoryRepo{}
	service := NewOrderService(NewNoOpTransactionScope(orders, history), zap.NewNop())
	return service, orders, history
}

func createOrder(t *testing.T, service *OrderService) *OrderResponse {
	t.Helper()
	resp, err := service.CreateOrder(context.Background(), CreateOrderRequest{
		OrderNumber:  "VH-1001",
		CustomerID:   uuid.New(),
		CustomerName: "Ada Lovelace",
		TotalAmount:  decimal.RequireFromString("49.90"),
	})
	require.NoError(t, err)
	return resp
}

func TestOrderService_CreateOrder(t *testing.T) {
	service, _, history := newOrderFixture()

	resp := createOrder(t, service)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Nil(t, resp.PreviousStatus)

	trail, err := history.FindByEntity(context.Background(), shared.EntityTypeOrder, resp.ID)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Nil(t, trail[0].FromStatus)
	assert.Equal(t, "PENDING", trail[0].ToStatus)

	t.Run("duplicate order number rejected", func(t *testing.T) {
		_, err := service.CreateOrder(context.Background(), CreateOrderRequest{
			OrderNumber:  "VH-1001",
			CustomerID:   uuid.New(),
			CustomerName: "Grace Hopper",
			TotalAmount:  decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestOrderService_FulfilmentFlow(t *testing.T) {
	service, _, _ := newOrderFixture()
	actorID := uuid.New()

	resp := createOrder(t, service)

	resp, err := service.StartProcessing(context.Background(), resp.ID, &actorID)
	require.NoError(t, err)
	assert.Equal(t, "PROCESSING", resp.Status)

	resp, err = service.ShipOrder(context.Background(), resp.ID, ShipOrderRequest{TrackingCode: "DHL-42"}, &actorID)
	require.NoError(t, err)
	assert.Equal(t, "SHIPPED", resp.Status)
	assert.Equal(t, "DHL-42", resp.TrackingCode)
	assert.NotNil(t, resp.ShippedAt)

	resp, err = service.MarkOutForDelivery(context.Background(), resp.ID, &actorID)
	require.NoError(t, err)
	resp, err = service.MarkDelivered(context.Background(), resp.ID, &actorID)
	require.NoError(t, err)
	resp, err = service.CompleteOrder(context.Background(), resp.ID, &actorID)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", resp.Status)
	require.NotNil(t, resp.PreviousStatus)
	assert.Equal(t, "DELIVERED", *resp.PreviousStatus)

	trail, err := service.GetOrderHistory(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Len(t, trail, 6)
	assert.Equal(t, "PENDING", trail[0].ToStatus)
	assert.Equal(t, "COMPLETED", trail[5].ToStatus)
	assert.Equal(t, &actorID, trail[5].ActorID)
}

func TestOrderService_SkippingStagesRejected(t *testing.T) {
	service, _, _ := newOrderFixture()

	resp := createOrder(t, service)

	_, err := service.ShipOrder(context.Background(), resp.ID, ShipOrderRequest{TrackingCode: "X"}, nil)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)

	got, err := service.GetOrder(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", got.Status, "failed transition must not mutate")
}

func TestOrderService_CancelAndRefund(t *testing.T) {
	t.Run("cancel mid flight", func(t *testing.T) {
		service, _, _ := newOrderFixture()
		resp := createOrder(t, service)

		resp, err := service.StartProcessing(context.Background(), resp.ID, nil)
		require.NoError(t, err)

		resp, err = service.CancelOrder(context.Background(), resp.ID, CancelOrderRequest{Reason: "customer request"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)
		assert.NotNil(t, resp.CancelledAt)

		_, err = service.StartProcessing(context.Background(), resp.ID, nil)
		assert.Error(t, err, "cancelled order is terminal")
	})

	t.Run("refund after delivery", func(t *testing.T) {
		service, _, _ := newOrderFixture()
		resp := createOrder(t, service)

		for _, step := range []func() (*OrderResponse, error){
			func() (*OrderResponse, error) { return service.StartProcessing(context.Background(), resp.ID, nil) },
			func() (*OrderResponse, error) {
				return service.ShipOrder(context.Background(), resp.ID, ShipOrderRequest{TrackingCode: "T"}, nil)
			},
			func() (*OrderResponse, error) { return service.MarkOutForDelivery(context.Background(), resp.ID, nil) },
			func() (*OrderResponse, error) { return service.MarkDelivered(context.Background(), resp.ID, nil) },
		} {
			var err error
			resp, err = step()
			require.NoError(t, err)
		}

		resp, err := service.RefundOrder(context.Background(), resp.ID, RefundOrderRequest{Notes: "damaged"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "REFUNDED", resp.Status)
	})
}

func TestOrderService_VersionBumpsPerTransition(t *testing.T) {
	service, orders, _ := newOrderFixture()

	resp := createOrder(t, service)
	_, err := service.StartProcessing(context.Background(), resp.ID, nil)
	require.NoError(t, err)

	stored, err := orders.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Version)
}
