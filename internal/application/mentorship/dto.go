package mentorship

import (
	"time"

	"github.com/google/uuid"

	"github.com/venturehub/backend/internal/domain/mentorship"
)

// CreateMentorRequest is the inbound payload for registering a mentor
type CreateMentorRequest struct {
	Name               string `json:"name" binding:"required,max=200"`
	Email              string `json:"email" binding:"required,email"`
	Expertise          string `json:"expertise" binding:"max=200"`
	MaxSessionsPerWeek int    `json:"max_sessions_per_week" binding:"required,min=1"`
}

// BookSessionRequest is the inbound payload for booking a session slot
type BookSessionRequest struct {
	MentorID      uuid.UUID `json:"mentor_id" binding:"required"`
	ApplicationID uuid.UUID `json:"application_id" binding:"required"`
	StartAt       time.Time `json:"start_at" binding:"required"`
	EndAt         time.Time `json:"end_at" binding:"required"`
	Topic         string    `json:"topic" binding:"max=200"`
}

// CompleteSessionRequest carries the mentor's session notes
type CompleteSessionRequest struct {
	Notes string `json:"notes" binding:"max=5000"`
}

// CancelSessionRequest carries the cancellation reason
type CancelSessionRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// MentorResponse is the outbound representation of a mentor
type MentorResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Expertise          string    `json:"expertise,omitempty"`
	Active             bool      `json:"active"`
	MaxSessionsPerWeek int       `json:"max_sessions_per_week"`
}

// SessionResponse is the outbound representation of a session
type SessionResponse struct {
	ID            uuid.UUID `json:"id"`
	MentorID      uuid.UUID `json:"mentor_id"`
	ApplicationID uuid.UUID `json:"application_id"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	Topic         string    `json:"topic,omitempty"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
}

// ToMentorResponse maps a mentor aggregate to its response shape
func ToMentorResponse(m *mentorship.Mentor) MentorResponse {
	return MentorResponse{
		ID:                 m.ID,
		Name:               m.Name,
		Email:              m.Email,
		Expertise:          m.Expertise,
		Active:             m.Active,
		MaxSessionsPerWeek: m.MaxSessionsPerWeek,
	}
}

// ToSessionResponse maps a session aggregate to its response shape
func ToSessionResponse(s *mentorship.Session) SessionResponse {
	return SessionResponse{
		ID:            s.ID,
		MentorID:      s.MentorID,
		ApplicationID: s.ApplicationID,
		StartAt:       s.StartAt,
		EndAt:         s.EndAt,
		Topic:         s.Topic,
		Status:        s.Status.String(),
		Notes:         s.Notes,
	}
}
