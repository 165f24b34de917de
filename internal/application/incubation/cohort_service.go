package incubation

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venturehub/backend/internal/domain/incubation"
	"github.com/venturehub/backend/internal/domain/shared"
)

// CohortService manages incubation cohorts and their lifecycle
type CohortService struct {
	txScope TransactionScope
	logger  *zap.Logger
}

// NewCohortService creates a new CohortService
func NewCohortService(txScope TransactionScope, logger *zap.Logger) *CohortService {
	return &CohortService{txScope: txScope, logger: logger}
}

// CreateCohort registers a new cohort in DRAFT status
func (s *CohortService) CreateCohort(ctx context.Context, req CreateCohortRequest) (*CohortResponse, error) {
	var response CohortResponse

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		cohort, err := incubation.NewCohort(req.Name, req.Capacity)
		if err != nil {
			return err
		}
		if err := repos.CohortRepo().Save(ctx, cohort); err != nil {
			return err
		}
		if err := shared.RecordStatusChanges(ctx, repos.HistoryRepo(), cohort); err != nil {
			return err
		}
		response = ToCohortResponse(cohort)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// OpenApplications opens a draft cohort for applications
func (s *CohortService) OpenApplications(ctx context.Context, cohortID uuid.UUID, actorID *uuid.UUID) (*CohortResponse, error) {
	return s.applyTransition(ctx, cohortID, func(c *incubation.Cohort) error {
		return c.OpenApplications(actorID)
	})
}

// StartReviewing closes the application window and starts the review phase
func (s *CohortService) StartReviewing(ctx context.Context, cohortID uuid.UUID, actorID *uuid.UUID) (*CohortResponse, error) {
	return s.applyTransition(ctx, cohortID, func(c *incubation.Cohort) error {
		return c.StartReviewing(actorID)
	})
}

// ActivateCohort starts the program for the accepted startups
func (s *CohortService) ActivateCohort(ctx context.Context, cohortID uuid.UUID, actorID *uuid.UUID) (*CohortResponse, error) {
	return s.applyTransition(ctx, cohortID, func(c *incubation.Cohort) error {
		return c.Activate(actorID)
	})
}

// CompleteCohort ends the program
func (s *CohortService) CompleteCohort(ctx context.Context, cohortID uuid.UUID, actorID *uuid.UUID) (*CohortResponse, error) {
	return s.applyTransition(ctx, cohortID, func(c *incubation.Cohort) error {
		return c.Complete(actorID)
	})
}

// ArchiveCohort archives a completed cohort
func (s *CohortService) ArchiveCohort(ctx context.Context, cohortID uuid.UUID, actorID *uuid.UUID) (*CohortResponse, error) {
	return s.applyTransition(ctx, cohortID, func(c *incubation.Cohort) error {
		return c.Archive(actorID)
	})
}

// GetCohort loads one cohort
func (s *CohortService) GetCohort(ctx context.Context, cohortID uuid.UUID) (*CohortResponse, error) {
	var response CohortResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		cohort, err := repos.CohortRepo().FindByID(ctx, cohortID)
		if err != nil {
			return err
		}
		response = ToCohortResponse(cohort)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ListCohorts lists cohorts with pagination
func (s *CohortService) ListCohorts(ctx context.Context, filter shared.Filter) (*shared.Paginated[CohortResponse], error) {
	var page shared.Paginated[CohortResponse]
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		cohorts, err := repos.CohortRepo().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err := repos.CohortRepo().Count(ctx, filter)
		if err != nil {
			return err
		}
		responses := make([]CohortResponse, len(cohorts))
		for i := range cohorts {
			responses[i] = ToCohortResponse(&cohorts[i])
		}
		page = shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *CohortService) applyTransition(ctx context.Context, cohortID uuid.UUID, fn func(c *incubation.Cohort) error) (*CohortResponse, error) {
	var response CohortResponse

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		cohort, err := repos.CohortRepo().FindByID(ctx, cohortID)
		if err != nil {
			return err
		}
		if err := fn(cohort); err != nil {
			return err
		}
		if err := repos.CohortRepo().Save(ctx, cohort); err != nil {
			return err
		}
		if err := shared.RecordStatusChanges(ctx, repos.HistoryRepo(), cohort); err != nil {
			return err
		}
		response = ToCohortResponse(cohort)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}
