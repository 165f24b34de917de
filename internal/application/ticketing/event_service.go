package ticketing

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/domain/shared/valueobject"
	"github.com/venturehub/backend/internal/domain/ticketing"
)

// EventService manages events and their ticket types: the catalog the
// booking workflow sells from.
type EventService struct {
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewEventService creates a new EventService
func NewEventService(txScope TransactionScope, logger *zap.Logger) *EventService {
	return &EventService{
		txScope: txScope,
		logger:  logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *EventService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateEvent creates a new unpublished event
func (s *EventService) CreateEvent(ctx context.Context, req CreateEventRequest) (*EventResponse, error) {
	var (
		response EventResponse
		events   []shared.DomainEvent
	)

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.EventRepo().FindBySlug(ctx, req.Slug); err == nil {
			return shared.NewDomainError("ALREADY_EXISTS", "An event with this slug already exists")
		} else if err != shared.ErrNotFound {
			return err
		}

		event, err := ticketing.NewEvent(req.Name, req.Slug, req.StartsAt, req.EndsAt)
		if err != nil {
			return err
		}
		event.Description = req.Description
		event.Venue = req.Venue
		event.RegistrationOpensAt = req.RegistrationOpensAt
		event.RegistrationClosesAt = req.RegistrationClosesAt
		if req.AllowGuests != nil {
			event.AllowGuests = *req.AllowGuests
		}
		if req.MaxTicketsPerOrder != nil {
			event.MaxTicketsPerOrder = *req.MaxTicketsPerOrder
		}

		if err := repos.EventRepo().Save(ctx, event); err != nil {
			return err
		}

		response = ToEventResponse(event)
		events = append(events, event.GetDomainEvents()...)
		event.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	return &response, nil
}

// PublishEvent makes an event visible and bookable. Guarded by an
// optimistic version check so concurrent edits do not silently clash.
func (s *EventService) PublishEvent(ctx context.Context, eventID uuid.UUID) (*EventResponse, error) {
	var (
		response EventResponse
		events   []shared.DomainEvent
	)

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		event, err := repos.EventRepo().FindByID(ctx, eventID)
		if err != nil {
			return err
		}
		if event.Published {
			response = ToEventResponse(event)
			return nil
		}

		expectedVersion := event.Version
		event.Publish()
		if err := repos.EventRepo().SaveWithLock(ctx, event, expectedVersion); err != nil {
			return err
		}

		response = ToEventResponse(event)
		events = append(events, event.GetDomainEvents()...)
		event.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	return &response, nil
}

// GetEvent loads one event by ID
func (s *EventService) GetEvent(ctx context.Context, eventID uuid.UUID) (*EventResponse, error) {
	var response EventResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		event, err := repos.EventRepo().FindByID(ctx, eventID)
		if err != nil {
			return err
		}
		response = ToEventResponse(event)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetEventBySlug loads one event by its public slug
func (s *EventService) GetEventBySlug(ctx context.Context, slug string) (*EventResponse, error) {
	var response EventResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		event, err := repos.EventRepo().FindBySlug(ctx, slug)
		if err != nil {
			return err
		}
		response = ToEventResponse(event)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ListEvents lists events with pagination
func (s *EventService) ListEvents(ctx context.Context, filter shared.Filter) (*shared.Paginated[EventResponse], error) {
	var result shared.Paginated[EventResponse]
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		events, err := repos.EventRepo().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err := repos.EventRepo().Count(ctx, filter)
		if err != nil {
			return err
		}

		responses := make([]EventResponse, len(events))
		for i := range events {
			responses[i] = ToEventResponse(&events[i])
		}
		result = shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AddTicketType adds a sellable ticket category to an event
func (s *EventService) AddTicketType(ctx context.Context, eventID uuid.UUID, req CreateTicketTypeRequest) (*TicketTypeResponse, error) {
	currency := valueobject.Currency(req.Currency)
	if req.Currency == "" {
		currency = valueobject.DefaultCurrency
	}
	price, err := valueobject.NewMoney(req.Price, currency)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRICE", err.Error())
	}

	var response TicketTypeResponse

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		event, err := repos.EventRepo().FindByID(ctx, eventID)
		if err != nil {
			return err
		}

		tt, err := ticketing.NewTicketType(event.ID, req.Name, price, req.Quantity)
		if err != nil {
			return err
		}
		tt.Description = req.Description
		tt.SaleStartAt = req.SaleStartAt
		tt.SaleEndAt = req.SaleEndAt
		tt.Hidden = req.Hidden
		if req.MinPerOrder != nil {
			tt.MinPerOrder = *req.MinPerOrder
		}
		if req.MaxPerOrder != nil {
			tt.MaxPerOrder = *req.MaxPerOrder
		}
		if tt.MaxPerOrder > 0 && tt.MinPerOrder > tt.MaxPerOrder {
			return shared.NewDomainError("INVALID_INPUT", "Minimum per order cannot exceed maximum per order")
		}

		if err := repos.TicketTypeRepo().Save(ctx, tt); err != nil {
			return err
		}
		if err := shared.RecordStatusChanges(ctx, repos.HistoryRepo(), tt); err != nil {
			return err
		}

		response = ToTicketTypeResponse(tt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// PauseTicketType suspends sales of a ticket type
func (s *EventService) PauseTicketType(ctx context.Context, ticketTypeID uuid.UUID) (*TicketTypeResponse, error) {
	return s.changeTicketTypeStatus(ctx, ticketTypeID, (*ticketing.TicketType).Pause)
}

// ActivateTicketType resumes sales of a paused or sold out ticket type
func (s *EventService) ActivateTicketType(ctx context.Context, ticketTypeID uuid.UUID) (*TicketTypeResponse, error) {
	return s.changeTicketTypeStatus(ctx, ticketTypeID, (*ticketing.TicketType).Activate)
}

// ListTicketTypes lists the ticket types of one event
func (s *EventService) ListTicketTypes(ctx context.Context, eventID uuid.UUID) ([]TicketTypeResponse, error) {
	var responses []TicketTypeResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.EventRepo().FindByID(ctx, eventID); err != nil {
			return err
		}
		types, err := repos.TicketTypeRepo().FindByEventID(ctx, eventID)
		if err != nil {
			return err
		}
		responses = make([]TicketTypeResponse, len(types))
		for i := range types {
			responses[i] = ToTicketTypeResponse(&types[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// changeTicketTypeStatus applies a status transition under the same row
// lock the booking flow uses, so pausing cannot race a reservation
func (s *EventService) changeTicketTypeStatus(
	ctx context.Context,
	ticketTypeID uuid.UUID,
	transition func(*ticketing.TicketType) error,
) (*TicketTypeResponse, error) {
	var (
		response TicketTypeResponse
		events   []shared.DomainEvent
	)

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		tt, err := repos.TicketTypeRepo().FindByIDForUpdate(ctx, ticketTypeID)
		if err != nil {
			return err
		}
		if err := transition(tt); err != nil {
			return err
		}
		if err := repos.TicketTypeRepo().Save(ctx, tt); err != nil {
			return err
		}
		if err := shared.RecordStatusChanges(ctx, repos.HistoryRepo(), tt); err != nil {
			return err
		}

		response = ToTicketTypeResponse(tt)
		events = append(events, tt.GetDomainEvents()...)
		tt.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	return &response, nil
}

func (s *EventService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err), zap.Int("count", len(events)))
	}
}
