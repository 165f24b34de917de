package ordering

import (
	"context"

	"github.com/venturehub/backend/internal/domain/ordering"
	"github.com/venturehub/backend/internal/domain/shared"
)

// TransactionScope provides transactional access to the order repositories
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the order repositories
// within a transaction
type TransactionalRepositories interface {
	OrderRepo() ordering.OrderRepository
	HistoryRepo() shared.StatusHistoryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't use real
// transactions; used by tests with in-memory repositories.
type NoOpTransactionScope struct {
	orderRepo   ordering.OrderRepository
	historyRepo shared.StatusHistoryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(orderRepo ordering.OrderRepository, historyRepo shared.StatusHistoryRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{orderRepo: orderRepo, historyRepo: historyRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() ordering.OrderRepository {
	return s.orderRepo
}

// HistoryRepo returns the status history repository
func (s *NoOpTransactionScope) HistoryRepo() shared.StatusHistoryRepository {
	return s.historyRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
