package event

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/venturehub/backend/internal/domain/shared"
)

// InMemoryEventBus dispatches domain events synchronously to registered
// handlers in the publishing goroutine. Handler errors are logged and do
// not fail the publish; a failed reaction must not undo a committed
// status transition.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	running  atomic.Bool
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish delivers each event to all handlers subscribed to its type
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if !b.running.Load() {
		return fmt.Errorf("event bus is not running")
	}

	for _, evt := range events {
		handlers := b.registry.HandlersFor(evt.EventType())
		if len(handlers) == 0 {
			b.logger.Debug("no handlers for event", zap.String("event_type", evt.EventType()))
			continue
		}
		for _, handler := range handlers {
			b.dispatch(ctx, handler, evt)
		}
	}
	return nil
}

// Subscribe registers a handler for the given event types
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	b.registry.Register(handler, eventTypes...)
}

// Unsubscribe removes a handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

// Start marks the bus as accepting events
func (b *InMemoryEventBus) Start(_ context.Context) error {
	if !b.running.CompareAndSwap(false, true) {
		return fmt.Errorf("event bus already started")
	}
	b.logger.Info("event bus started")
	return nil
}

// Stop marks the bus as stopped; subsequent publishes fail
func (b *InMemoryEventBus) Stop(_ context.Context) error {
	if !b.running.CompareAndSwap(true, false) {
		return fmt.Errorf("event bus not running")
	}
	b.logger.Info("event bus stopped")
	return nil
}

// dispatch invokes a single handler, recovering from panics so one
// misbehaving handler cannot take down the publisher
func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, evt shared.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("event_type", evt.EventType()),
				zap.String("aggregate_id", evt.AggregateID().String()),
				zap.Any("panic", r),
			)
		}
	}()

	if err := handler.Handle(ctx, evt); err != nil {
		b.logger.Error("event handler failed",
			zap.String("event_type", evt.EventType()),
			zap.String("aggregate_id", evt.AggregateID().String()),
			zap.Error(err),
		)
	}
}
