package mentorship

import (
	"time"

	"github.com/google/uuid"

	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/domain/shared/statemachine"
	"github.com/venturehub/backend/internal/domain/shared/valueobject"
)

// SessionStatus represents the lifecycle status of a mentorship session
type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "PENDING"
	SessionStatusConfirmed SessionStatus = "CONFIRMED"
	SessionStatusCompleted SessionStatus = "COMPLETED"
	SessionStatusCancelled SessionStatus = "CANCELLED"
	SessionStatusNoShow    SessionStatus = "NO_SHOW"
)

var sessionTransitions = statemachine.Graph[SessionStatus]{
	SessionStatusPending:   {SessionStatusConfirmed, SessionStatusCancelled},
	SessionStatusConfirmed: {SessionStatusCompleted, SessionStatusCancelled, SessionStatusNoShow},
}

// IsValid checks if the status is a valid SessionStatus
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusPending, SessionStatusConfirmed, SessionStatusCompleted,
		SessionStatusCancelled, SessionStatusNoShow:
		return true
	}
	return false
}

// String returns the string representation of SessionStatus
func (s SessionStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s SessionStatus) CanTransitionTo(target SessionStatus) bool {
	return sessionTransitions.CanTransition(s, target)
}

// IsTerminal reports whether the status allows no further transitions
func (s SessionStatus) IsTerminal() bool {
	return sessionTransitions.IsTerminal(s)
}

// Session represents a booked mentorship slot between a mentor and an
// application's founding team
type Session struct {
	shared.BaseAggregateRoot
	MentorID      uuid.UUID     `gorm:"type:uuid;not null;index"`
	ApplicationID uuid.UUID     `gorm:"type:uuid;not null;index"`
	StartAt       time.Time     `gorm:"not null"`
	EndAt         time.Time     `gorm:"not null"`
	Topic         string        `gorm:"type:varchar(200)"`
	Status        SessionStatus `gorm:"type:varchar(20);not null"`
	Notes         string        `gorm:"type:text"`
	CancelledAt   *time.Time
	CompletedAt   *time.Time
}

// TableName returns the table name for GORM
func (Session) TableName() string {
	return "mentorship_sessions"
}

// NewSession creates a new session in PENDING status
func NewSession(mentorID, applicationID uuid.UUID, slot valueobject.TimeRange, topic string) (*Session, error) {
	if mentorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MENTOR", "Mentor ID cannot be empty")
	}
	if applicationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_APPLICATION", "Application ID cannot be empty")
	}

	session := &Session{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MentorID:          mentorID,
		ApplicationID:     applicationID,
		StartAt:           slot.Start,
		EndAt:             slot.End,
		Topic:             topic,
		Status:            SessionStatusPending,
	}

	session.TrackStatusChange(shared.StatusChange{
		EntityType: shared.EntityTypeSession,
		EntityID:   session.ID,
		ToStatus:   session.Status.String(),
		ChangedAt:  session.CreatedAt,
	})
	session.AddDomainEvent(NewSessionBookedEvent(session))

	return session, nil
}

// Slot returns the session's time range
func (s *Session) Slot() valueobject.TimeRange {
	return valueobject.TimeRange{Start: s.StartAt, End: s.EndAt}
}

// Confirm marks the session as accepted by the mentor
func (s *Session) Confirm(actorID *uuid.UUID) error {
	return s.transition(SessionStatusConfirmed, actorID, "")
}

// Complete records the outcome of a held session
func (s *Session) Complete(notes string, actorID *uuid.UUID) error {
	if err := s.transition(SessionStatusCompleted, actorID, ""); err != nil {
		return err
	}
	now := time.Now()
	s.Notes = notes
	s.CompletedAt = &now
	return nil
}

// Cancel aborts a pending or confirmed session
func (s *Session) Cancel(reason string, actorID *uuid.UUID) error {
	if err := s.transition(SessionStatusCancelled, actorID, reason); err != nil {
		return err
	}
	now := time.Now()
	s.CancelledAt = &now
	return nil
}

// MarkNoShow records that the startup did not attend
func (s *Session) MarkNoShow(actorID *uuid.UUID) error {
	return s.transition(SessionStatusNoShow, actorID, "")
}

// CountsAgainstCapacity reports whether the session occupies the
// mentor's calendar; cancelled sessions free their slot
func (s *Session) CountsAgainstCapacity() bool {
	return s.Status != SessionStatusCancelled
}

func (s *Session) transition(target SessionStatus, actorID *uuid.UUID, notes string) error {
	if !s.Status.CanTransitionTo(target) {
		return shared.NewInvalidTransitionError(shared.EntityTypeSession, s.Status.String(), target.String())
	}

	from := s.Status.String()
	now := time.Now()
	s.Status = target
	s.UpdatedAt = now

	s.TrackStatusChange(shared.StatusChange{
		EntityType: shared.EntityTypeSession,
		EntityID:   s.ID,
		FromStatus: &from,
		ToStatus:   target.String(),
		ActorID:    actorID,
		Notes:      notes,
		ChangedAt:  now,
	})

	return nil
}
