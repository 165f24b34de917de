package ticketing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/venturehub/backend/internal/domain/billing"
	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/domain/shared/valueobject"
	"github.com/venturehub/backend/internal/domain/ticketing"
)

// BookingService orchestrates the booking workflow: stock reservation,
// invoice creation, attendee registration and the payment callbacks.
// Every stock-touching path runs inside one transaction with the ticket
// type rows locked, so a multi-unit booking is all-or-nothing.
type BookingService struct {
	txScope        TransactionScope
	issuer         ticketing.TicketIssuer
	eventPublisher shared.EventPublisher
	idempotency    shared.IdempotencyStore
	idempotencyCfg shared.IdempotencyConfig
	taxRate        decimal.Decimal
	logger         *zap.Logger
	now            func() time.Time
}

// NewBookingService creates a new BookingService
func NewBookingService(
	txScope TransactionScope,
	issuer ticketing.TicketIssuer,
	idempotency shared.IdempotencyStore,
	taxRate decimal.Decimal,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		txScope:        txScope,
		issuer:         issuer,
		idempotency:    idempotency,
		idempotencyCfg: shared.DefaultIdempotencyConfig(),
		taxRate:        taxRate,
		logger:         logger,
		now:            time.Now,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *BookingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetClock overrides the time source, used by tests
func (s *BookingService) SetClock(now func() time.Time) {
	s.now = now
}

// SetIdempotencyConfig overrides the payment callback idempotency settings
func (s *BookingService) SetIdempotencyConfig(cfg shared.IdempotencyConfig) {
	s.idempotencyCfg = cfg
}

// CreateBooking books tickets on an event. Free bookings confirm
// immediately; paid bookings hold stock and issue a sent invoice, to be
// settled through HandlePaymentCompleted or HandlePaymentFailed.
func (s *BookingService) CreateBooking(ctx context.Context, eventID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	if len(req.Attendees) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Booking must include at least one attendee")
	}

	now := s.now()
	var (
		response    BookingResponse
		events      []shared.DomainEvent
		issuables   []*ticketing.Attendee
		bookedEvent *ticketing.Event
	)

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		event, err := repos.EventRepo().FindByID(ctx, eventID)
		if err != nil {
			return err
		}
		if !event.IsRegistrationOpen(now) {
			return shared.ErrRegistrationClosed
		}
		if req.UserID == nil && !event.AllowGuests {
			return shared.ErrGuestNotAllowed
		}
		if err := event.ValidateOrderQuantity(len(req.Attendees)); err != nil {
			return err
		}

		requested := groupByTicketType(req.Attendees)
		ticketTypes, err := s.lockAndReserve(ctx, repos, event, requested, now)
		if err != nil {
			return err
		}

		total := decimal.Zero
		currency := billingCurrency(ticketTypes)
		for id, qty := range requested {
			total = total.Add(ticketTypes[id].Price.Mul(decimal.NewFromInt(int64(qty))))
		}
		free := total.IsZero()

		var invoice *billing.Invoice
		if !free {
			invoice, err = s.buildInvoice(req, requested, ticketTypes, currency)
			if err != nil {
				return err
			}
		}

		attendees := make([]*ticketing.Attendee, 0, len(req.Attendees))
		for _, ar := range req.Attendees {
			initial := ticketing.AttendeeStatusPendingPayment
			if free {
				initial = ticketing.AttendeeStatusConfirmed
			}
			attendee, err := ticketing.NewAttendee(event.ID, ar.TicketTypeID, ar.Name, ar.Email, initial)
			if err != nil {
				return err
			}
			if req.UserID != nil {
				attendee.UserID = req.UserID
			}
			if invoice != nil {
				if err := attendee.AttachInvoice(invoice.ID); err != nil {
					return err
				}
			}
			attendees = append(attendees, attendee)
		}

		if free {
			// free flow: the hold converts to a sale immediately
			for id, qty := range requested {
				if err := ticketTypes[id].ConfirmSale(qty); err != nil {
					return err
				}
			}
			event.IncrementRegistered(len(attendees))
		}

		for _, tt := range sortedTicketTypes(ticketTypes) {
			if err := repos.TicketTypeRepo().Save(ctx, tt); err != nil {
				return err
			}
		}
		if invoice != nil {
			if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
				return err
			}
		}
		for _, attendee := range attendees {
			if err := repos.AttendeeRepo().Save(ctx, attendee); err != nil {
				return err
			}
		}
		if err := repos.EventRepo().Save(ctx, event); err != nil {
			return err
		}

		tracked := []shared.StatusTracked{event}
		for _, tt := range sortedTicketTypes(ticketTypes) {
			tracked = append(tracked, tt)
		}
		for _, attendee := range attendees {
			tracked = append(tracked, attendee)
		}
		if invoice != nil {
			tracked = append(tracked, invoice)
		}
		if err := shared.RecordStatusChanges(ctx, repos.HistoryRepo(), tracked...); err != nil {
			return err
		}

		attendeeIDs := make([]uuid.UUID, len(attendees))
		response.EventID = event.ID
		response.Attendees = make([]AttendeeResponse, len(attendees))
		for i, attendee := range attendees {
			attendeeIDs[i] = attendee.ID
			response.Attendees[i] = ToAttendeeResponse(attendee)
			events = append(events, attendee.GetDomainEvents()...)
			attendee.ClearDomainEvents()
		}
		for _, tt := range sortedTicketTypes(ticketTypes) {
			events = append(events, tt.GetDomainEvents()...)
			tt.ClearDomainEvents()
		}

		var invoiceID *uuid.UUID
		if invoice != nil {
			response.Invoice = ToInvoiceSummaryResponse(invoice)
			invoiceID = &invoice.ID
			events = append(events, invoice.GetDomainEvents()...)
			invoice.ClearDomainEvents()
		}

		events = append(events, ticketing.NewBookingCreatedEvent(event.ID, attendeeIDs, invoiceID, free))
		if free {
			events = append(events, ticketing.NewBookingCompletedEvent(event.ID, attendeeIDs))
			issuables = attendees
		}
		bookedEvent = event

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	s.issueTickets(ctx, issuables, bookedEvent)

	return &response, nil
}

// HandlePaymentCompleted settles a paid booking: the invoice is marked
// paid, pending attendees confirm, their holds become sales and tickets
// go out. Deduplicated by gateway reference.
func (s *BookingService) HandlePaymentCompleted(ctx context.Context, invoiceID uuid.UUID, gatewayRef string) error {
	key := fmt.Sprintf("payment_completed:%s:%s", invoiceID, gatewayRef)
	seen, err := s.alreadyProcessed(ctx, key)
	if err != nil {
		return err
	}
	if seen {
		s.logger.Info("duplicate payment completion ignored",
			zap.String("invoice_id", invoiceID.String()),
			zap.String("gateway_ref", gatewayRef))
		return nil
	}

	var (
		events      []shared.DomainEvent
		issuables   []*ticketing.Attendee
		bookedEvent *ticketing.Event
	)

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if invoice.Status == billing.InvoiceStatusPaid {
			s.logger.Info("invoice already paid", zap.String("invoice_id", invoiceID.String()))
			return nil
		}
		if err := invoice.MarkPaid(gatewayRef); err != nil {
			return err
		}

		linked, err := repos.AttendeeRepo().FindByInvoiceID(ctx, invoiceID)
		if err != nil {
			return err
		}
		pending := pendingOnly(linked)
		if len(pending) == 0 {
			// possible after a manual invoice edit or a racing cancel;
			// flagged for operators rather than failed
			s.logger.Warn("paid invoice has no pending attendees",
				zap.String("invoice_id", invoiceID.String()))
		}

		requested := map[uuid.UUID]int{}
		for _, attendee := range pending {
			requested[attendee.TicketTypeID]++
		}
		ticketTypes, err := lockTicketTypes(ctx, repos, keysOf(requested))
		if err != nil {
			return err
		}
		for id, qty := range requested {
			if err := ticketTypes[id].ConfirmSale(qty); err != nil {
				return err
			}
		}

		tracked := []shared.StatusTracked{invoice}
		for _, attendee := range pending {
			if err := attendee.Confirm(ticketTypes[attendee.TicketTypeID].Price); err != nil {
				return err
			}
			if err := repos.AttendeeRepo().Save(ctx, attendee); err != nil {
				return err
			}
			tracked = append(tracked, attendee)
			events = append(events, attendee.GetDomainEvents()...)
			attendee.ClearDomainEvents()
		}
		for _, tt := range sortedTicketTypes(ticketTypes) {
			if err := repos.TicketTypeRepo().Save(ctx, tt); err != nil {
				return err
			}
			tracked = append(tracked, tt)
			events = append(events, tt.GetDomainEvents()...)
			tt.ClearDomainEvents()
		}
		if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
			return err
		}
		events = append(events, invoice.GetDomainEvents()...)
		invoice.ClearDomainEvents()

		if len(pending) > 0 {
			event, err := repos.EventRepo().FindByID(ctx, pending[0].EventID)
			if err != nil {
				return err
			}
			event.IncrementRegistered(len(pending))
			if err := repos.EventRepo().Save(ctx, event); err != nil {
				return err
			}
			tracked = append(tracked, event)
			bookedEvent = event
			attendeeIDs := make([]uuid.UUID, len(pending))
			for i, attendee := range pending {
				attendeeIDs[i] = attendee.ID
			}
			events = append(events, ticketing.NewBookingCompletedEvent(event.ID, attendeeIDs))
			issuables = pending
		}

		return shared.RecordStatusChanges(ctx, repos.HistoryRepo(), tracked...)
	})
	if err != nil {
		return err
	}

	s.markProcessed(ctx, key)
	s.publish(ctx, events)
	s.issueTickets(ctx, issuables, bookedEvent)

	return nil
}

// HandlePaymentFailed voids a paid booking attempt: pending attendees
// expire and their holds return to the pool.
func (s *BookingService) HandlePaymentFailed(ctx context.Context, invoiceID uuid.UUID, gatewayRef string) error {
	key := fmt.Sprintf("payment_failed:%s:%s", invoiceID, gatewayRef)
	seen, err := s.alreadyProcessed(ctx, key)
	if err != nil {
		return err
	}
	if seen {
		s.logger.Info("duplicate payment failure ignored",
			zap.String("invoice_id", invoiceID.String()),
			zap.String("gateway_ref", gatewayRef))
		return nil
	}

	var events []shared.DomainEvent

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if err := invoice.MarkFailed(gatewayRef); err != nil {
			return err
		}

		linked, err := repos.AttendeeRepo().FindByInvoiceID(ctx, invoiceID)
		if err != nil {
			return err
		}
		pending := pendingOnly(linked)

		requested := map[uuid.UUID]int{}
		for _, attendee := range pending {
			requested[attendee.TicketTypeID]++
		}
		ticketTypes, err := lockTicketTypes(ctx, repos, keysOf(requested))
		if err != nil {
			return err
		}
		for id, qty := range requested {
			if err := ticketTypes[id].Release(qty); err != nil {
				return err
			}
		}

		tracked := []shared.StatusTracked{invoice}
		for _, attendee := range pending {
			if err := attendee.Expire(); err != nil {
				return err
			}
			if err := repos.AttendeeRepo().Save(ctx, attendee); err != nil {
				return err
			}
			tracked = append(tracked, attendee)
			events = append(events, attendee.GetDomainEvents()...)
			attendee.ClearDomainEvents()
		}
		for _, tt := range sortedTicketTypes(ticketTypes) {
			if err := repos.TicketTypeRepo().Save(ctx, tt); err != nil {
				return err
			}
			tracked = append(tracked, tt)
		}
		if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
			return err
		}
		events = append(events, invoice.GetDomainEvents()...)
		invoice.ClearDomainEvents()

		return shared.RecordStatusChanges(ctx, repos.HistoryRepo(), tracked...)
	})
	if err != nil {
		return err
	}

	s.markProcessed(ctx, key)
	s.publish(ctx, events)

	return nil
}

// CancelBooking cancels one attendee. The compensating stock action
// depends on the status the attendee held before cancelling: a confirmed
// seat is refunded (sold goes down), a pending one merely releases its
// hold.
func (s *BookingService) CancelBooking(ctx context.Context, attendeeID uuid.UUID, reason string, actorID *uuid.UUID) error {
	var events []shared.DomainEvent

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		attendee, err := repos.AttendeeRepo().FindByID(ctx, attendeeID)
		if err != nil {
			return err
		}

		prior, err := attendee.Cancel(reason, actorID)
		if err != nil {
			return err
		}

		tt, err := repos.TicketTypeRepo().FindByIDForUpdate(ctx, attendee.TicketTypeID)
		if err != nil {
			return err
		}

		tracked := []shared.StatusTracked{attendee, tt}
		switch prior {
		case ticketing.AttendeeStatusConfirmed:
			if err := tt.Refund(1); err != nil {
				return err
			}
			event, err := repos.EventRepo().FindByID(ctx, attendee.EventID)
			if err != nil {
				return err
			}
			event.DecrementRegistered(1)
			if err := repos.EventRepo().Save(ctx, event); err != nil {
				return err
			}
			tracked = append(tracked, event)
		case ticketing.AttendeeStatusPendingPayment:
			if err := tt.Release(1); err != nil {
				return err
			}
		}

		if err := repos.TicketTypeRepo().Save(ctx, tt); err != nil {
			return err
		}
		if err := repos.AttendeeRepo().Save(ctx, attendee); err != nil {
			return err
		}

		events = append(events, attendee.GetDomainEvents()...)
		attendee.ClearDomainEvents()
		events = append(events, tt.GetDomainEvents()...)
		tt.ClearDomainEvents()

		return shared.RecordStatusChanges(ctx, repos.HistoryRepo(), tracked...)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events)

	return nil
}

// CheckInAttendee marks a confirmed attendee as present
func (s *BookingService) CheckInAttendee(ctx context.Context, attendeeID uuid.UUID, actorID *uuid.UUID) error {
	var events []shared.DomainEvent

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		attendee, err := repos.AttendeeRepo().FindByID(ctx, attendeeID)
		if err != nil {
			return err
		}
		if err := attendee.CheckIn(actorID); err != nil {
			return err
		}
		if err := repos.AttendeeRepo().Save(ctx, attendee); err != nil {
			return err
		}
		events = append(events, attendee.GetDomainEvents()...)
		attendee.ClearDomainEvents()
		return shared.RecordStatusChanges(ctx, repos.HistoryRepo(), attendee)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events)

	return nil
}

// ResendTicket re-issues the ticket of a confirmed or checked-in
// attendee, for operators recovering from delivery failures
func (s *BookingService) ResendTicket(ctx context.Context, attendeeID uuid.UUID) error {
	var (
		attendee *ticketing.Attendee
		event    *ticketing.Event
	)

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		attendee, err = repos.AttendeeRepo().FindByID(ctx, attendeeID)
		if err != nil {
			return err
		}
		if attendee.Status != ticketing.AttendeeStatusConfirmed && attendee.Status != ticketing.AttendeeStatusCheckedIn {
			return shared.NewDomainError("INVALID_STATE", "Only confirmed attendees can receive tickets")
		}
		event, err = repos.EventRepo().FindByID(ctx, attendee.EventID)
		return err
	})
	if err != nil {
		return err
	}

	s.issueTickets(ctx, []*ticketing.Attendee{attendee}, event)

	return nil
}

// GetAttendee loads one attendee
func (s *BookingService) GetAttendee(ctx context.Context, attendeeID uuid.UUID) (*AttendeeResponse, error) {
	var response AttendeeResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		attendee, err := repos.AttendeeRepo().FindByID(ctx, attendeeID)
		if err != nil {
			return err
		}
		response = ToAttendeeResponse(attendee)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ListAttendees lists the attendees of one event
func (s *BookingService) ListAttendees(ctx context.Context, eventID uuid.UUID, filter shared.Filter) ([]AttendeeResponse, error) {
	var responses []AttendeeResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		attendees, err := repos.AttendeeRepo().FindByEventID(ctx, eventID, filter)
		if err != nil {
			return err
		}
		responses = make([]AttendeeResponse, len(attendees))
		for i := range attendees {
			responses[i] = ToAttendeeResponse(&attendees[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// lockAndReserve locks every requested ticket type row in a stable
// order, validates purchasability and reserves the requested units
func (s *BookingService) lockAndReserve(
	ctx context.Context,
	repos TransactionalRepositories,
	event *ticketing.Event,
	requested map[uuid.UUID]int,
	now time.Time,
) (map[uuid.UUID]*ticketing.TicketType, error) {
	ticketTypes, err := lockTicketTypes(ctx, repos, keysOf(requested))
	if err != nil {
		return nil, err
	}

	for _, tt := range sortedTicketTypes(ticketTypes) {
		qty := requested[tt.ID]
		if tt.EventID != event.ID {
			return nil, shared.NewDomainError("INVALID_TICKET_TYPE", "Ticket type does not belong to this event")
		}
		if !tt.IsOnSale(now) {
			return nil, shared.ErrTicketTypeNotOnSale
		}
		if qty < tt.MinPerOrder || (tt.MaxPerOrder > 0 && qty > tt.MaxPerOrder) {
			return nil, shared.NewDomainError("QUANTITY_EXCEEDS_LIMIT",
				fmt.Sprintf("Ticket type %q allows between %d and %d tickets per order", tt.Name, tt.MinPerOrder, tt.MaxPerOrder))
		}
		if err := tt.Reserve(qty); err != nil {
			return nil, err
		}
	}

	return ticketTypes, nil
}

func (s *BookingService) buildInvoice(
	req CreateBookingRequest,
	requested map[uuid.UUID]int,
	ticketTypes map[uuid.UUID]*ticketing.TicketType,
	currency valueobject.Currency,
) (*billing.Invoice, error) {
	var billable billing.Billable
	if req.UserID != nil {
		billable = billing.NewUserBillable(*req.UserID)
	} else {
		// guest checkout bills a synthetic user derived from the booking
		billable = billing.NewUserBillable(uuid.New())
	}

	invoice, err := billing.NewInvoice(newInvoiceNumber(), billable, "event_booking", s.taxRate, currency)
	if err != nil {
		return nil, err
	}

	for _, tt := range sortedTicketTypes(ticketTypes) {
		qty := requested[tt.ID]
		if err := invoice.AddLineItem(tt.Name, qty, tt.Price); err != nil {
			return nil, err
		}
	}
	if err := invoice.Send(); err != nil {
		return nil, err
	}

	return invoice, nil
}

// alreadyProcessed is the fast-path duplicate check for a callback key.
func (s *BookingService) alreadyProcessed(ctx context.Context, key string) (bool, error) {
	if s.idempotency == nil || !s.idempotencyCfg.Enabled {
		return false, nil
	}
	return s.idempotency.IsProcessed(ctx, key)
}

// markProcessed claims a callback key after its transaction committed,
// so a transient failure leaves the key free for the gateway's retry.
// A store error only costs dedup for this key; the invoice status guard
// still catches the replay.
func (s *BookingService) markProcessed(ctx context.Context, key string) {
	if s.idempotency == nil || !s.idempotencyCfg.Enabled {
		return
	}
	if _, err := s.idempotency.MarkProcessed(ctx, key, s.idempotencyCfg.TTL); err != nil {
		s.logger.Warn("failed to record idempotency key", zap.String("key", key), zap.Error(err))
	}
}

func (s *BookingService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err), zap.Int("count", len(events)))
	}
}

// issueTickets is fire-and-forget: a delivery failure never unwinds the
// committed booking, operators can resend later
func (s *BookingService) issueTickets(ctx context.Context, attendees []*ticketing.Attendee, event *ticketing.Event) {
	if s.issuer == nil || event == nil {
		return
	}
	for _, attendee := range attendees {
		if err := s.issuer.Issue(ctx, attendee, event); err != nil {
			s.logger.Error("ticket issuance failed",
				zap.String("attendee_id", attendee.ID.String()),
				zap.String("ticket_code", attendee.TicketCode),
				zap.Error(err))
		}
	}
}

func groupByTicketType(attendees []BookingAttendeeRequest) map[uuid.UUID]int {
	requested := map[uuid.UUID]int{}
	for _, a := range attendees {
		requested[a.TicketTypeID]++
	}
	return requested
}

func lockTicketTypes(ctx context.Context, repos TransactionalRepositories, ids []uuid.UUID) (map[uuid.UUID]*ticketing.TicketType, error) {
	// stable lock order across transactions to avoid deadlocks
	sort.Slice(ids, func(i, j int) bool { return strings.Compare(ids[i].String(), ids[j].String()) < 0 })

	ticketTypes := make(map[uuid.UUID]*ticketing.TicketType, len(ids))
	for _, id := range ids {
		tt, err := repos.TicketTypeRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			if err == shared.ErrNotFound {
				return nil, shared.NewDomainError("INVALID_TICKET_TYPE", "Ticket type not found")
			}
			return nil, err
		}
		ticketTypes[id] = tt
	}
	return ticketTypes, nil
}

func sortedTicketTypes(ticketTypes map[uuid.UUID]*ticketing.TicketType) []*ticketing.TicketType {
	out := make([]*ticketing.TicketType, 0, len(ticketTypes))
	for _, tt := range ticketTypes {
		out = append(out, tt)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].ID.String(), out[j].ID.String()) < 0
	})
	return out
}

func keysOf(m map[uuid.UUID]int) []uuid.UUID {
	keys := make([]uuid.UUID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func pendingOnly(attendees []ticketing.Attendee) []*ticketing.Attendee {
	pending := make([]*ticketing.Attendee, 0, len(attendees))
	for i := range attendees {
		if attendees[i].Status == ticketing.AttendeeStatusPendingPayment {
			pending = append(pending, &attendees[i])
		}
	}
	return pending
}

func billingCurrency(ticketTypes map[uuid.UUID]*ticketing.TicketType) valueobject.Currency {
	for _, tt := range ticketTypes {
		if !tt.Price.IsZero() {
			return tt.Currency
		}
	}
	return valueobject.EUR
}

func newInvoiceNumber() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("INV-%d-%s", time.Now().Year(), strings.ToUpper(raw[:10]))
}
