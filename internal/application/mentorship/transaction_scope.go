package mentorship

import (
	"context"

	"github.com/venturehub/backend/internal/domain/mentorship"
	"github.com/venturehub/backend/internal/domain/shared"
)

// TransactionScope provides transactional access to the mentorship
// repositories. Bookings read the mentor's calendar and insert the new
// session in one transaction so the weekly cap and overlap checks hold
// under concurrency.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the mentorship
// repositories within a transaction
type TransactionalRepositories interface {
	MentorRepo() mentorship.MentorRepository
	SessionRepo() mentorship.SessionRepository
	HistoryRepo() shared.StatusHistoryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't use real
// transactions; used by tests with in-memory repositories.
type NoOpTransactionScope struct {
	mentorRepo  mentorship.MentorRepository
	sessionRepo mentorship.SessionRepository
	historyRepo shared.StatusHistoryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	mentorRepo mentorship.MentorRepository,
	sessionRepo mentorship.SessionRepository,
	historyRepo shared.StatusHistoryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		mentorRepo:  mentorRepo,
		sessionRepo: sessionRepo,
		historyRepo: historyRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// MentorRepo returns the mentor repository
func (s *NoOpTransactionScope) MentorRepo() mentorship.MentorRepository {
	return s.mentorRepo
}

// SessionRepo returns the session repository
func (s *NoOpTransactionScope) SessionRepo() mentorship.SessionRepository {
	return s.sessionRepo
}

// HistoryRepo returns the status history repository
func (s *NoOpTransactionScope) HistoryRepo() shared.StatusHistoryRepository {
	return s.historyRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
