package billing

import (
	"context"

	"github.com/venturehub/backend/internal/domain/billing"
	"github.com/venturehub/backend/internal/domain/shared"
)

// TransactionScope provides transactional access to the billing repositories
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the billing repositories
// within a transaction
type TransactionalRepositories interface {
	InvoiceRepo() billing.InvoiceRepository
	HistoryRepo() shared.StatusHistoryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't use real
// transactions; used by tests with in-memory repositories.
type NoOpTransactionScope struct {
	invoiceRepo billing.InvoiceRepository
	historyRepo shared.StatusHistoryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(invoiceRepo billing.InvoiceRepository, historyRepo shared.StatusHistoryRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{invoiceRepo: invoiceRepo, historyRepo: historyRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
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
