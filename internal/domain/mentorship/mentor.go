package mentorship

import (
	"strings"
	"time"

	"github.com/venturehub/backend/internal/domain/shared"
)

// Mentor represents an advisor who offers sessions to program startups.
// MaxSessionsPerWeek caps bookings; the scheduler enforces it against
// the mentor's existing sessions in the requested ISO week.
type Mentor struct {
	shared.BaseAggregateRoot
	Name               string `gorm:"type:varchar(200);not null"`
	Email              string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Expertise          string `gorm:"type:varchar(200)"`
	Active             bool   `gorm:"not null;default:true"`
	MaxSessionsPerWeek int    `gorm:"not null;default:5"`
}

// TableName returns the table name for GORM
func (Mentor) TableName() string {
	return "mentors"
}

// NewMentor creates a new active mentor
func NewMentor(name, email, expertise string, maxSessionsPerWeek int) (*Mentor, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Mentor name cannot be empty")
	}
	if !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Mentor email is invalid")
	}
	if maxSessionsPerWeek <= 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Weekly session cap must be positive")
	}

	return &Mentor{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Name:               name,
		Email:              email,
		Expertise:          expertise,
		Active:             true,
		MaxSessionsPerWeek: maxSessionsPerWeek,
	}, nil
}

// Deactivate stops the mentor from taking new sessions
func (m *Mentor) Deactivate() {
	m.Active = false
	m.UpdatedAt = time.Now()
}

// Activate lets the mentor take sessions again
func (m *Mentor) Activate() {
	m.Active = true
	m.UpdatedAt = time.Now()
}
