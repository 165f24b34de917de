package incubation

import (
	"context"

	"github.com/venturehub/backend/internal/domain/incubation"
	"github.com/venturehub/backend/internal/domain/shared"
)

// TransactionScope provides transactional access to the incubation
// repositories. Acceptances mutate the application and the cohort
// counter together, so both repositories share one transaction.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the incubation
// repositories within a transaction
type TransactionalRepositories interface {
	ApplicationRepo() incubation.ApplicationRepository
	CohortRepo() incubation.CohortRepository
	HistoryRepo() shared.StatusHistoryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't use real
// transactions; used by tests with in-memory repositories.
type NoOpTransactionScope struct {
	applicationRepo incubation.ApplicationRepository
	cohortRepo      incubation.CohortRepository
	historyRepo     shared.StatusHistoryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	applicationRepo incubation.ApplicationRepository,
	cohortRepo incubation.CohortRepository,
	historyRepo shared.StatusHistoryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		applicationRepo: applicationRepo,
		cohortRepo:      cohortRepo,
		historyRepo:     historyRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ApplicationRepo returns the application repository
func (s *NoOpTransactionScope) ApplicationRepo() incubation.ApplicationRepository {
	return s.applicationRepo
}

// CohortRepo returns the cohort repository
func (s *NoOpTransactionScope) CohortRepo() incubation.CohortRepository {
	return s.cohortRepo
}

// HistoryRepo returns the status history repository
func (s *NoOpTransactionScope) HistoryRepo() shared.StatusHistoryRepository {
	return s.historyRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
