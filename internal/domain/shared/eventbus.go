package shared

import "context"

// EventPublisher delivers committed domain events to interested parties.
// Application services publish after their transaction commits, so a
// reaction never observes state that may still roll back.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventHandler reacts to domain events, typically across bounded
// contexts (ticket issuing on booking completion, invoice follow-ups).
type EventHandler interface {
	// Handle processes one event. Errors are reported to the bus, not
	// to the publisher; a failed reaction must not undo a commit.
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the event types the handler wants. Empty means
	// all events.
	EventTypes() []string
}

// EventSubscriber manages handler registrations.
type EventSubscriber interface {
	// Subscribe registers a handler for the given event types; with no
	// types the handler's own EventTypes decide.
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is the full publish/subscribe surface with a lifecycle.
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
