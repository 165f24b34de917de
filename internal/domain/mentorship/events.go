package mentorship

import (
	"time"

	"github.com/google/uuid"

	"github.com/venturehub/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeSession = "MentorshipSession"

// Event type constants
const (
	EventTypeSessionBooked = "MentorshipSessionBooked"
)

// SessionBookedEvent is raised when a mentorship session is booked
type SessionBookedEvent struct {
	shared.BaseDomainEvent
	MentorID      uuid.UUID `json:"mentor_id"`
	ApplicationID uuid.UUID `json:"application_id"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
}

// NewSessionBookedEvent creates a new SessionBookedEvent
func NewSessionBookedEvent(s *Session) *SessionBookedEvent {
	return &SessionBookedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSessionBooked, AggregateTypeSession, s.ID),
		MentorID:        s.MentorID,
		ApplicationID:   s.ApplicationID,
		StartAt:         s.StartAt,
		EndAt:           s.EndAt,
	}
}
