package ticketing

import (
	"context"

	"github.com/venturehub/backend/internal/domain/billing"
	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/domain/ticketing"
)

// TransactionScope provides transactional access to the repositories a
// booking workflow touches. All repository operations inside Execute
// share one database transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the booking repositories
// within a transaction. Ticket stock rows must be loaded through
// TicketTypeRepo().FindByIDForUpdate so concurrent bookings serialize.
type TransactionalRepositories interface {
	EventRepo() ticketing.EventRepository
	TicketTypeRepo() ticketing.TicketTypeRepository
	AttendeeRepo() ticketing.AttendeeRepository
	InvoiceRepo() billing.InvoiceRepository
	HistoryRepo() shared.StatusHistoryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't use real
// transactions; used by tests with in-memory repositories.
type NoOpTransactionScope struct {
	eventRepo      ticketing.EventRepository
	ticketTypeRepo ticketing.TicketTypeRepository
	attendeeRepo   ticketing.AttendeeRepository
	invoiceRepo    billing.InvoiceRepository
	historyRepo    shared.StatusHistoryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	eventRepo ticketing.EventRepository,
	ticketTypeRepo ticketing.TicketTypeRepository,
	attendeeRepo ticketing.AttendeeRepository,
	invoiceRepo billing.InvoiceRepository,
	historyRepo shared.StatusHistoryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		eventRepo:      eventRepo,
		ticketTypeRepo: ticketTypeRepo,
		attendeeRepo:   attendeeRepo,
		invoiceRepo:    invoiceRepo,
		historyRepo:    historyRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// EventRepo returns the event repository
func (s *NoOpTransactionScope) EventRepo() ticketing.EventRepository {
	return s.eventRepo
}

// TicketTypeRepo returns the ticket type repository
func (s *NoOpTransactionScope) TicketTypeRepo() ticketing.TicketTypeRepository {
	return s.ticketTypeRepo
}

// AttendeeRepo returns the attendee repository
func (s *NoOpTransactionScope) AttendeeRepo() ticketing.AttendeeRepository {
	return s.attendeeRepo
}

// InvoiceRepo returns the invoice repository
func (s *NoOpTransactionScope) InvoiceRepo() billing.InvoiceRepository {
	return s.invoiceRepo
}

// HistoryRepo returns the status history repository
func (s *NoOpTransactionScope) HistoryRepo() shared.StatusHistoryRepository {
	return s.historyRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
