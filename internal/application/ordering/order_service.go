package ordering

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venturehub/backend/internal/domain/ordering"
	"github.com/venturehub/backend/internal/domain/shared"
)

// OrderService drives merchandise orders through their fulfilment
// stages. Every transition is validated by the aggregate and leaves one
// entry in the status history ledger.
type OrderService struct {
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(txScope TransactionScope, logger *zap.Logger) *OrderService {
	return &OrderService{
		txScope: txScope,
		logger:  logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateOrder registers a new order in PENDING status
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	var response OrderResponse
	var events []shared.DomainEvent

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if existing, err := repos.OrderRepo().FindByOrderNumber(ctx, req.OrderNumber); err == nil && existing != nil {
			return shared.ErrAlreadyExists
		}

		order, err := ordering.NewOrder(req.OrderNumber, req.CustomerID, req.CustomerName, req.TotalAmount)
		if err != nil {
			return err
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}
		if err := shared.RecordStatusChanges(ctx, repos.HistoryRepo(), order); err != nil {
			return err
		}

		response = ToOrderResponse(order)
		events = order.GetDomainEvents()
		order.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)

	return &response, nil
}

// StartProcessing moves a pending order into fulfilment
func (s *OrderService) StartProcessing(ctx context.Context, orderID uuid.UUID, actorID *uuid.UUID) (*OrderResponse, error) {
	return s.applyTransition(ctx, orderID, func(order *ordering.Order) error {
		return order.StartProcessing(actorID)
	})
}

// ShipOrder marks the order as handed to the carrier
func (s *OrderService) ShipOrder(ctx context.Context, orderID uuid.UUID, req ShipOrderRequest, actorID *uuid.UUID) (*OrderResponse, error) {
	return s.applyTransition(ctx, orderID, func(order *ordering.Order) error {
		return order.Ship(req.TrackingCode, actorID)
	})
}

// MarkOutForDelivery marks the order as out for delivery
func (s *OrderService) MarkOutForDelivery(ctx context.Context, orderID uuid.UUID, actorID *uuid.UUID) (*OrderResponse, error) {
	return s.applyTransition(ctx, orderID, func(order *ordering.Order) error {
		return order.MarkOutForDelivery(actorID)
	})
}

// MarkDelivered marks the order as delivered to the customer
func (s *OrderService) MarkDelivered(ctx context.Context, orderID uuid.UUID, actorID *uuid.UUID) (*OrderResponse, error) {
	return s.applyTransition(ctx, orderID, func(order *ordering.Order) error {
		return order.MarkDelivered(actorID)
	})
}

// CompleteOrder closes a delivered order
func (s *OrderService) CompleteOrder(ctx context.Context, orderID uuid.UUID, actorID *uuid.UUID) (*OrderResponse, error) {
	return s.applyTransition(ctx, orderID, func(order *ordering.Order) error {
		return order.Complete(actorID)
	})
}

// CancelOrder aborts a non-terminal order
func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID, req CancelOrderRequest, actorID *uuid.UUID) (*OrderResponse, error) {
	return s.applyTransition(ctx, orderID, func(order *ordering.Order) error {
		return order.Cancel(req.Reason, actorID)
	})
}

// RefundOrder refunds a delivered order
func (s *OrderService) RefundOrder(ctx context.Context, orderID uuid.UUID, req RefundOrderRequest, actorID *uuid.UUID) (*OrderResponse, error) {
	return s.applyTransition(ctx, orderID, func(order *ordering.Order) error {
		return order.Refund(actorID, req.Notes)
	})
}

// GetOrder loads one order
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var response OrderResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		response = ToOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ListOrders lists orders with pagination
func (s *OrderService) ListOrders(ctx context.Context, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	var page shared.Paginated[OrderResponse]
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		orders, err := repos.OrderRepo().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err := repos.OrderRepo().Count(ctx, filter)
		if err != nil {
			return err
		}
		responses := make([]OrderResponse, len(orders))
		for i := range orders {
			responses[i] = ToOrderResponse(&orders[i])
		}
		page = shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// GetOrderHistory returns the full audit trail of one order, oldest first
func (s *OrderService) GetOrderHistory(ctx context.Context, orderID uuid.UUID) ([]StatusHistoryResponse, error) {
	var responses []StatusHistoryResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.OrderRepo().FindByID(ctx, orderID); err != nil {
			return err
		}
		entries, err := repos.HistoryRepo().FindByEntity(ctx, shared.EntityTypeOrder, orderID)
		if err != nil {
			return err
		}
		responses = make([]StatusHistoryResponse, len(entries))
		for i, entry := range entries {
			responses[i] = ToStatusHistoryResponse(entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// applyTransition loads the order under an optimistic version check,
// applies the aggregate transition and saves state and history together
func (s *OrderService) applyTransition(ctx context.Context, orderID uuid.UUID, fn func(order *ordering.Order) error) (*OrderResponse, error) {
	var response OrderResponse
	var events []shared.DomainEvent

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		expectedVersion := order.Version

		if err := fn(order); err != nil {
			return err
		}

		if err := repos.OrderRepo().SaveWithLock(ctx, order, expectedVersion); err != nil {
			return err
		}
		if err := shared.RecordStatusChanges(ctx, repos.HistoryRepo(), order); err != nil {
			return err
		}

		response = ToOrderResponse(order)
		events = order.GetDomainEvents()
		order.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)

	return &response, nil
}

func (s *OrderService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err), zap.Int("count", len(events)))
	}
}
