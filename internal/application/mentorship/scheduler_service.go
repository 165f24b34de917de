package mentorship

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venturehub/backend/internal/domain/mentorship"
	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/domain/shared/valueobject"
)

// SchedulerService books mentorship sessions. A booking holds only if
// the mentor is active, the requested slot overlaps none of the
// mentor's live sessions and the mentor's weekly cap is not exhausted
// in the slot's ISO week. Cancelled sessions free both their slot and
// their cap share.
type SchedulerService struct {
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSchedulerService creates a new SchedulerService
func NewSchedulerService(txScope TransactionScope, logger *zap.Logger) *SchedulerService {
	return &SchedulerService{
		txScope: txScope,
		logger:  logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SchedulerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateMentor registers a new mentor
func (s *SchedulerService) CreateMentor(ctx context.Context, req CreateMentorRequest) (*MentorResponse, error) {
	var response MentorResponse

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if existing, err := repos.MentorRepo().FindByEmail(ctx, req.Email); err == nil && existing != nil {
			return shared.ErrAlreadyExists
		}
		mentor, err := mentorship.NewMentor(req.Name, req.Email, req.Expertise, req.MaxSessionsPerWeek)
		if err != nil {
			return err
		}
		if err := repos.MentorRepo().Save(ctx, mentor); err != nil {
			return err
		}
		response = ToMentorResponse(mentor)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// SetMentorActive flips a mentor's availability
func (s *SchedulerService) SetMentorActive(ctx context.Context, mentorID uuid.UUID, active bool) (*MentorResponse, error) {
	var response MentorResponse

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		mentor, err := repos.MentorRepo().FindByID(ctx, mentorID)
		if err != nil {
			return err
		}
		if active {
			mentor.Activate()
		} else {
			mentor.Deactivate()
		}
		if err := repos.MentorRepo().Save(ctx, mentor); err != nil {
			return err
		}
		response = ToMentorResponse(mentor)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// BookSession books a slot with a mentor for an application's team
func (s *SchedulerService) BookSession(ctx context.Context, req BookSessionRequest) (*SessionResponse, error) {
	slot, err := valueobject.NewTimeRange(req.StartAt, req.EndAt)
	if err != nil {
		return nil, err
	}

	var response SessionResponse
	var events []shared.DomainEvent

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		mentor, err := repos.MentorRepo().FindByID(ctx, req.MentorID)
		if err != nil {
			return err
		}
		if !mentor.Active {
			return shared.ErrMentorInactive
		}

		// overlap check against every live session touching the slot
		touching, err := repos.SessionRepo().FindByMentorBetween(ctx, mentor.ID, slot.Start, slot.End)
		if err != nil {
			return err
		}
		for i := range touching {
			if touching[i].CountsAgainstCapacity() && touching[i].Slot().Overlaps(slot) {
				return shared.ErrSessionConflict
			}
		}

		weekStart, weekEnd := isoWeekBounds(slot.Start)
		weekly, err := repos.SessionRepo().FindByMentorBetween(ctx, mentor.ID, weekStart, weekEnd)
		if err != nil {
			return err
		}
		live := 0
		for i := range weekly {
			if weekly[i].CountsAgainstCapacity() {
				live++
			}
		}
		if live >= mentor.MaxSessionsPerWeek {
			return shared.ErrMentorOverbooked
		}

		session, err := mentorship.NewSession(mentor.ID, req.ApplicationID, slot, req.Topic)
		if err != nil {
			return err
		}
		if err := repos.SessionRepo().Save(ctx, session); err != nil {
			return err
		}
		if err := shared.RecordStatusChanges(ctx, repos.HistoryRepo(), session); err != nil {
			return err
		}

		response = ToSessionResponse(session)
		events = session.GetDomainEvents()
		session.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)

	return &response, nil
}

// ConfirmSession marks a pending session as accepted by the mentor
func (s *SchedulerService) ConfirmSession(ctx context.Context, sessionID uuid.UUID, actorID *uuid.UUID) (*SessionResponse, error) {
	return s.applyTransition(ctx, sessionID, func(session *mentorship.Session) error {
		return session.Confirm(actorID)
	})
}

// CompleteSession records the outcome of a held session
func (s *SchedulerService) CompleteSession(ctx context.Context, sessionID uuid.UUID, req CompleteSessionRequest, actorID *uuid.UUID) (*SessionResponse, error) {
	return s.applyTransition(ctx, sessionID, func(session *mentorship.Session) error {
		return session.Complete(req.Notes, actorID)
	})
}

// CancelSession aborts a pending or confirmed session, freeing the slot
func (s *SchedulerService) CancelSession(ctx context.Context, sessionID uuid.UUID, req CancelSessionRequest, actorID *uuid.UUID) (*SessionResponse, error) {
	return s.applyTransition(ctx, sessionID, func(session *mentorship.Session) error {
		return session.Cancel(req.Reason, actorID)
	})
}

// MarkNoShow records that the startup did not attend
func (s *SchedulerService) MarkNoShow(ctx context.Context, sessionID uuid.UUID, actorID *uuid.UUID) (*SessionResponse, error) {
	return s.applyTransition(ctx, sessionID, func(session *mentorship.Session) error {
		return session.MarkNoShow(actorID)
	})
}

// ListMentorSessions lists a mentor's sessions intersecting [from, to)
func (s *SchedulerService) ListMentorSessions(ctx context.Context, mentorID uuid.UUID, from, to time.Time) ([]SessionResponse, error) {
	var responses []SessionResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sessions, err := repos.SessionRepo().FindByMentorBetween(ctx, mentorID, from, to)
		if err != nil {
			return err
		}
		responses = make([]SessionResponse, len(sessions))
		for i := range sessions {
			responses[i] = ToSessionResponse(&sessions[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// ListApplicationSessions lists the sessions booked for one application
func (s *SchedulerService) ListApplicationSessions(ctx context.Context, applicationID uuid.UUID) ([]SessionResponse, error) {
	var responses []SessionResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sessions, err := repos.SessionRepo().FindByApplicationID(ctx, applicationID)
		if err != nil {
			return err
		}
		responses = make([]SessionResponse, len(sessions))
		for i := range sessions {
			responses[i] = ToSessionResponse(&sessions[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *SchedulerService) applyTransition(ctx context.Context, sessionID uuid.UUID, fn func(session *mentorship.Session) error) (*SessionResponse, error) {
	var response SessionResponse
	var events []shared.DomainEvent

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		session, err := repos.SessionRepo().FindByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := fn(session); err != nil {
			return err
		}
		if err := repos.SessionRepo().Save(ctx, session); err != nil {
			return err
		}
		if err := shared.RecordStatusChanges(ctx, repos.HistoryRepo(), session); err != nil {
			return err
		}

		response = ToSessionResponse(session)
		events = session.GetDomainEvents()
		session.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)

	return &response, nil
}

func (s *SchedulerService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err), zap.Int("count", len(events)))
	}
}

// isoWeekBounds returns the [Monday 00:00, next Monday 00:00) window of
// the ISO week containing t, in t's location
func isoWeekBounds(t time.Time) (time.Time, time.Time) {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).
		AddDate(0, 0, -(weekday - 1))
	return monday, monday.AddDate(0, 0, 7)
}
