package incubation

import (
	"time"

	"github.com/google/uuid"

	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/domain/shared/statemachine"
)

// CohortStatus represents the lifecycle status of an incubation cohort
type CohortStatus string

const (
	CohortStatusDraft               CohortStatus = "DRAFT"
	CohortStatusOpenForApplications CohortStatus = "OPEN_FOR_APPLICATIONS"
	CohortStatusReviewing           CohortStatus = "REVIEWING"
	CohortStatusActive              CohortStatus = "ACTIVE"
	CohortStatusCompleted           CohortStatus = "COMPLETED"
	CohortStatusArchived            CohortStatus = "ARCHIVED"
)

var cohortTransitions = statemachine.Graph[CohortStatus]{
	CohortStatusDraft:               {CohortStatusOpenForApplications},
	CohortStatusOpenForApplications: {CohortStatusReviewing},
	CohortStatusReviewing:           {CohortStatusActive},
	CohortStatusActive:              {CohortStatusCompleted},
	CohortStatusCompleted:           {CohortStatusArchived},
}

// IsValid checks if the status is a valid CohortStatus
func (s CohortStatus) IsValid() bool {
	switch s {
	case CohortStatusDraft, CohortStatusOpenForApplications, CohortStatusReviewing,
		CohortStatusActive, CohortStatusCompleted, CohortStatusArchived:
		return true
	}
	return false
}

// String returns the string representation of CohortStatus
func (s CohortStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s CohortStatus) CanTransitionTo(target CohortStatus) bool {
	return cohortTransitions.CanTransition(s, target)
}

// IsTerminal reports whether the status allows no further transitions
func (s CohortStatus) IsTerminal() bool {
	return cohortTransitions.IsTerminal(s)
}

// Cohort represents one run of the incubation program. Capacity bounds
// the number of accepted applications; AcceptedCount is maintained by
// the application pipeline after each successful acceptance.
type Cohort struct {
	shared.BaseAggregateRoot
	Name          string       `gorm:"type:varchar(200);not null"`
	Capacity      int          `gorm:"not null"`
	AcceptedCount int          `gorm:"not null;default:0"`
	Status        CohortStatus `gorm:"type:varchar(30);not null"`
	StartsAt      *time.Time
	EndsAt        *time.Time
}

// TableName returns the table name for GORM
func (Cohort) TableName() string {
	return "cohorts"
}

// NewCohort creates a new cohort in DRAFT status
func NewCohort(name string, capacity int) (*Cohort, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Cohort name cannot be empty")
	}
	if capacity <= 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Cohort capacity must be positive")
	}

	cohort := &Cohort{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Capacity:          capacity,
		Status:            CohortStatusDraft,
	}

	cohort.TrackStatusChange(shared.StatusChange{
		EntityType: shared.EntityTypeCohort,
		EntityID:   cohort.ID,
		ToStatus:   cohort.Status.String(),
		ChangedAt:  cohort.CreatedAt,
	})

	return cohort, nil
}

// IsAcceptingApplications reports whether new applications may be submitted
func (c *Cohort) IsAcceptingApplications() bool {
	return c.Status == CohortStatusOpenForApplications
}

// HasCapacity reports whether another application can be accepted
func (c *Cohort) HasCapacity() bool {
	return c.AcceptedCount < c.Capacity
}

// IncrementAccepted bumps the accepted counter after a successful acceptance
func (c *Cohort) IncrementAccepted() error {
	if !c.HasCapacity() {
		return shared.ErrCohortFull
	}
	c.AcceptedCount++
	c.UpdatedAt = time.Now()
	return nil
}

// DecrementAccepted lowers the accepted counter, clamped at zero
func (c *Cohort) DecrementAccepted() {
	if c.AcceptedCount > 0 {
		c.AcceptedCount--
	}
	c.UpdatedAt = time.Now()
}

// OpenApplications opens the cohort for applications
func (c *Cohort) OpenApplications(actorID *uuid.UUID) error {
	return c.transition(CohortStatusOpenForApplications, actorID)
}

// StartReviewing closes submissions and begins the review phase
func (c *Cohort) StartReviewing(actorID *uuid.UUID) error {
	return c.transition(CohortStatusReviewing, actorID)
}

// Activate starts the program for the accepted startups
func (c *Cohort) Activate(actorID *uuid.UUID) error {
	return c.transition(CohortStatusActive, actorID)
}

// Complete ends the program run
func (c *Cohort) Complete(actorID *uuid.UUID) error {
	return c.transition(CohortStatusCompleted, actorID)
}

// Archive retires a completed cohort
func (c *Cohort) Archive(actorID *uuid.UUID) error {
	return c.transition(CohortStatusArchived, actorID)
}

func (c *Cohort) transition(target CohortStatus, actorID *uuid.UUID) error {
	if !c.Status.CanTransitionTo(target) {
		return shared.NewInvalidTransitionError(shared.EntityTypeCohort, c.Status.String(), target.String())
	}

	from := c.Status.String()
	now := time.Now()
	c.Status = target
	c.UpdatedAt = now

	c.TrackStatusChange(shared.StatusChange{
		EntityType: shared.EntityTypeCohort,
		EntityID:   c.ID,
		FromStatus: &from,
		ToStatus:   target.String(),
		ActorID:    actorID,
		ChangedAt:  now,
	})

	return nil
}
