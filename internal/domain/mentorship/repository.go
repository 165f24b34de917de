package mentorship

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/venturehub/backend/internal/domain/shared"
)

// MentorRepository persists Mentor aggregates
type MentorRepository interface {
	shared.Repository[Mentor]
	FindByEmail(ctx context.Context, email string) (*Mentor, error)
}

// SessionRepository persists Session aggregates
type SessionRepository interface {
	shared.Repository[Session]
	// FindByMentorBetween returns the mentor's sessions intersecting
	// [from, to), all statuses included; callers filter cancelled ones
	FindByMentorBetween(ctx context.Context, mentorID uuid.UUID, from, to time.Time) ([]Session, error)
	FindByApplicationID(ctx context.Context, applicationID uuid.UUID) ([]Session, error)
}
