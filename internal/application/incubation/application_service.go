package incubation

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venturehub/backend/internal/domain/incubation"
	"github.com/venturehub/backend/internal/domain/shared"
)

// ApplicationService drives startup applications through the selection
// pipeline. Accepting an application claims a cohort seat, so the
// acceptance runs with the cohort row locked and rolls back whole when
// the cohort is full.
type ApplicationService struct {
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(txScope TransactionScope, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		txScope: txScope,
		logger:  logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ApplicationService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SubmitApplication registers a new application against an open cohort
func (s *ApplicationService) SubmitApplication(ctx context.Context, req SubmitApplicationRequest) (*ApplicationResponse, error) {
	var response ApplicationResponse
	var events []shared.DomainEvent

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		cohort, err := repos.CohortRepo().FindByID(ctx, req.CohortID)
		if err != nil {
			return err
		}
		if !cohort.IsAcceptingApplications() {
			return shared.NewDomainError("COHORT_NOT_OPEN", "Cohort is not accepting applications")
		}

		app, err := incubation.NewApplication(req.CohortID, req.StartupName, req.FounderName, req.FounderEmail, req.Pitch)
		if err != nil {
			return err
		}
		if err := repos.ApplicationRepo().Save(ctx, app); err != nil {
			return err
		}
		if err := shared.RecordStatusChanges(ctx, repos.HistoryRepo(), app); err != nil {
			return err
		}

		response = ToApplicationResponse(app)
		events = app.GetDomainEvents()
		app.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)

	return &response, nil
}

// StartScreening moves an application into SCREENING
func (s *ApplicationService) StartScreening(ctx context.Context, applicationID uuid.UUID, actorID *uuid.UUID) (*ApplicationResponse, error) {
	return s.applyTransition(ctx, applicationID, func(app *incubation.Application) error {
		return app.StartScreening(actorID)
	})
}

// ScheduleInterview books an interview slot for a screened application
func (s *ApplicationService) ScheduleInterview(ctx context.Context, applicationID uuid.UUID, req ScheduleInterviewRequest, actorID *uuid.UUID) (*ApplicationResponse, error) {
	return s.applyTransition(ctx, applicationID, func(app *incubation.Application) error {
		return app.ScheduleInterview(req.At, req.Location, actorID)
	})
}

// CompleteInterview records the interview outcome notes
func (s *ApplicationService) CompleteInterview(ctx context.Context, applicationID uuid.UUID, req CompleteInterviewRequest, actorID *uuid.UUID) (*ApplicationResponse, error) {
	return s.applyTransition(ctx, applicationID, func(app *incubation.Application) error {
		return app.CompleteInterview(req.Notes, actorID)
	})
}

// AcceptApplication accepts an interviewed application into its cohort.
// The cohort seat counter and the application status commit together;
// a full cohort rejects the acceptance and leaves the application
// untouched.
func (s *ApplicationService) AcceptApplication(ctx context.Context, applicationID uuid.UUID, actorID uuid.UUID) (*ApplicationResponse, error) {
	var response ApplicationResponse
	var events []shared.DomainEvent

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		app, err := repos.ApplicationRepo().FindByID(ctx, applicationID)
		if err != nil {
			return err
		}

		cohort, err := repos.CohortRepo().FindByIDForUpdate(ctx, app.CohortID)
		if err != nil {
			return err
		}
		if err := cohort.IncrementAccepted(); err != nil {
			return err
		}
		if err := app.Accept(actorID); err != nil {
			return err
		}

		if err := repos.CohortRepo().Save(ctx, cohort); err != nil {
			return err
		}
		if err := repos.ApplicationRepo().Save(ctx, app); err != nil {
			return err
		}
		if err := shared.RecordStatusChanges(ctx, repos.HistoryRepo(), app, cohort); err != nil {
			return err
		}

		response = ToApplicationResponse(app)
		events = append(events, app.GetDomainEvents()...)
		app.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)

	return &response, nil
}

// RejectApplication rejects an application at any pre-decision stage
func (s *ApplicationService) RejectApplication(ctx context.Context, applicationID uuid.UUID, req RejectApplicationRequest, actorID uuid.UUID) (*ApplicationResponse, error) {
	return s.applyTransition(ctx, applicationID, func(app *incubation.Application) error {
		return app.Reject(req.Reason, actorID)
	})
}

// WithdrawApplication records a founder pulling out of the pipeline
func (s *ApplicationService) WithdrawApplication(ctx context.Context, applicationID uuid.UUID, req WithdrawApplicationRequest) (*ApplicationResponse, error) {
	return s.applyTransition(ctx, applicationID, func(app *incubation.Application) error {
		return app.Withdraw(req.Notes)
	})
}

// GetApplication loads one application
func (s *ApplicationService) GetApplication(ctx context.Context, applicationID uuid.UUID) (*ApplicationResponse, error) {
	var response ApplicationResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		app, err := repos.ApplicationRepo().FindByID(ctx, applicationID)
		if err != nil {
			return err
		}
		response = ToApplicationResponse(app)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ListApplications lists the applications of one cohort
func (s *ApplicationService) ListApplications(ctx context.Context, cohortID uuid.UUID, filter shared.Filter) ([]ApplicationResponse, error) {
	var responses []ApplicationResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		apps, err := repos.ApplicationRepo().FindByCohortID(ctx, cohortID, filter)
		if err != nil {
			return err
		}
		responses = make([]ApplicationResponse, len(apps))
		for i := range apps {
			responses[i] = ToApplicationResponse(&apps[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// GetApplicationHistory returns the audit trail of one application
func (s *ApplicationService) GetApplicationHistory(ctx context.Context, applicationID uuid.UUID) ([]shared.StatusHistoryEntry, error) {
	var entries []shared.StatusHistoryEntry
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.ApplicationRepo().FindByID(ctx, applicationID); err != nil {
			return err
		}
		var err error
		entries, err = repos.HistoryRepo().FindByEntity(ctx, shared.EntityTypeApplication, applicationID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *ApplicationService) applyTransition(ctx context.Context, applicationID uuid.UUID, fn func(app *incubation.Application) error) (*ApplicationResponse, error) {
	var response ApplicationResponse
	var events []shared.DomainEvent

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		app, err := repos.ApplicationRepo().FindByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if err := fn(app); err != nil {
			return err
		}
		if err := repos.ApplicationRepo().Save(ctx, app); err != nil {
			return err
		}
		if err := shared.RecordStatusChanges(ctx, repos.HistoryRepo(), app); err != nil {
			return err
		}

		response = ToApplicationResponse(app)
		events = app.GetDomainEvents()
		app.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)

	return &response, nil
}

func (s *ApplicationService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err), zap.Int("count", len(events)))
	}
}
