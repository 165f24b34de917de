package incubation

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/domain/shared/statemachine"
)

// ApplicationStatus represents the pipeline status of a program application
type ApplicationStatus string

const (
	ApplicationStatusSubmitted          ApplicationStatus = "SUBMITTED"
	ApplicationStatusScreening          ApplicationStatus = "SCREENING"
	ApplicationStatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	ApplicationStatusInterviewed        ApplicationStatus = "INTERVIEWED"
	ApplicationStatusAccepted           ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected           ApplicationStatus = "REJECTED"
	ApplicationStatusWithdrawn          ApplicationStatus = "WITHDRAWN"
)

var applicationTransitions = statemachine.Graph[ApplicationStatus]{
	ApplicationStatusSubmitted:          {ApplicationStatusScreening, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	ApplicationStatusScreening:          {ApplicationStatusInterviewScheduled, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	ApplicationStatusInterviewScheduled: {ApplicationStatusInterviewed, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	ApplicationStatusInterviewed:        {ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn},
}

// IsValid checks if the status is a valid ApplicationStatus
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusSubmitted, ApplicationStatusScreening, ApplicationStatusInterviewScheduled,
		ApplicationStatusInterviewed, ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// String returns the string representation of ApplicationStatus
func (s ApplicationStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	return applicationTransitions.CanTransition(s, target)
}

// IsTerminal reports whether the status allows no further transitions
func (s ApplicationStatus) IsTerminal() bool {
	return applicationTransitions.IsTerminal(s)
}

// Application represents a startup's application to an incubation cohort.
// Side-channel fields (interview slot, decision metadata) change only
// together with the transition that makes them meaningful.
type Application struct {
	shared.BaseAggregateRoot
	CohortID          uuid.UUID         `gorm:"type:uuid;not null;index"`
	StartupName       string            `gorm:"type:varchar(200);not null"`
	FounderName       string            `gorm:"type:varchar(200);not null"`
	FounderEmail      string            `gorm:"type:varchar(200);not null"`
	Pitch             string            `gorm:"type:text"`
	Status            ApplicationStatus `gorm:"type:varchar(30);not null"`
	InterviewAt       *time.Time
	InterviewLocation string `gorm:"type:varchar(200)"`
	InterviewNotes    string `gorm:"type:text"`
	DecidedAt         *time.Time
	DecidedBy         *uuid.UUID `gorm:"type:uuid"`
	RejectionReason   string     `gorm:"type:text"`
	WithdrawnAt       *time.Time
}

// TableName returns the table name for GORM
func (Application) TableName() string {
	return "applications"
}

// NewApplication creates a new application in SUBMITTED status
func NewApplication(cohortID uuid.UUID, startupName, founderName, founderEmail, pitch string) (*Application, error) {
	if cohortID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COHORT", "Cohort ID cannot be empty")
	}
	if startupName == "" {
		return nil, shared.NewDomainError("INVALID_STARTUP_NAME", "Startup name cannot be empty")
	}
	if founderName == "" {
		return nil, shared.NewDomainError("INVALID_FOUNDER_NAME", "Founder name cannot be empty")
	}
	if !strings.Contains(founderEmail, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Founder email is invalid")
	}

	app := &Application{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CohortID:          cohortID,
		StartupName:       startupName,
		FounderName:       founderName,
		FounderEmail:      founderEmail,
		Pitch:             pitch,
		Status:            ApplicationStatusSubmitted,
	}

	app.TrackStatusChange(shared.StatusChange{
		EntityType: shared.EntityTypeApplication,
		EntityID:   app.ID,
		ToStatus:   app.Status.String(),
		ChangedAt:  app.CreatedAt,
	})
	app.AddDomainEvent(NewApplicationSubmittedEvent(app))

	return app, nil
}

// StartScreening moves the application into SCREENING
func (a *Application) StartScreening(actorID *uuid.UUID) error {
	return a.transition(ApplicationStatusScreening, actorID, "")
}

// ScheduleInterview books the interview slot and moves to INTERVIEW_SCHEDULED
func (a *Application) ScheduleInterview(at time.Time, location string, actorID *uuid.UUID) error {
	if at.Before(time.Now()) {
		return shared.NewDomainError("INVALID_INTERVIEW_TIME", "Interview time must be in the future")
	}
	if err := a.transition(ApplicationStatusInterviewScheduled, actorID, ""); err != nil {
		return err
	}
	a.InterviewAt = &at
	a.InterviewLocation = location
	a.AddDomainEvent(NewApplicationInterviewScheduledEvent(a))
	return nil
}

// CompleteInterview records interview notes and moves to INTERVIEWED
func (a *Application) CompleteInterview(notes string, actorID *uuid.UUID) error {
	if err := a.transition(ApplicationStatusInterviewed, actorID, ""); err != nil {
		return err
	}
	a.InterviewNotes = notes
	return nil
}

// Accept moves the application to ACCEPTED.
// Cohort capacity is the orchestrator's concern; it checks before calling.
func (a *Application) Accept(actorID uuid.UUID) error {
	if err := a.transition(ApplicationStatusAccepted, &actorID, ""); err != nil {
		return err
	}
	now := time.Now()
	a.DecidedAt = &now
	a.DecidedBy = &actorID
	a.AddDomainEvent(NewApplicationAcceptedEvent(a))
	return nil
}

// Reject moves the application to REJECTED with a reason
func (a *Application) Reject(reason string, actorID uuid.UUID) error {
	if err := a.transition(ApplicationStatusRejected, &actorID, reason); err != nil {
		return err
	}
	now := time.Now()
	a.DecidedAt = &now
	a.DecidedBy = &actorID
	a.RejectionReason = reason
	a.AddDomainEvent(NewApplicationRejectedEvent(a))
	return nil
}

// Withdraw lets the applicant pull out of a non-terminal application
func (a *Application) Withdraw(notes string) error {
	if err := a.transition(ApplicationStatusWithdrawn, nil, notes); err != nil {
		return err
	}
	now := time.Now()
	a.WithdrawnAt = &now
	return nil
}

func (a *Application) transition(target ApplicationStatus, actorID *uuid.UUID, notes string) error {
	if !a.Status.CanTransitionTo(target) {
		return shared.NewInvalidTransitionError(shared.EntityTypeApplication, a.Status.String(), target.String())
	}

	from := a.Status.String()
	now := time.Now()
	a.Status = target
	a.UpdatedAt = now

	a.TrackStatusChange(shared.StatusChange{
		EntityType: shared.EntityTypeApplication,
		EntityID:   a.ID,
		FromStatus: &from,
		ToStatus:   target.String(),
		ActorID:    actorID,
		Notes:      notes,
		ChangedAt:  now,
	})

	return nil
}
