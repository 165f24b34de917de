package incubation

import (
	"time"

	"github.com/google/uuid"

	"github.com/venturehub/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeApplication = "Application"
	AggregateTypeCohort      = "Cohort"
)

// Event type constants
const (
	EventTypeApplicationSubmitted          = "ApplicationSubmitted"
	EventTypeApplicationInterviewScheduled = "ApplicationInterviewScheduled"
	EventTypeApplicationAccepted           = "ApplicationAccepted"
	EventTypeApplicationRejected           = "ApplicationRejected"
)

// ApplicationSubmittedEvent is raised when a new application is submitted
type ApplicationSubmittedEvent struct {
	shared.BaseDomainEvent
	CohortID    uuid.UUID `json:"cohort_id"`
	StartupName string    `json:"startup_name"`
}

// NewApplicationSubmittedEvent creates a new ApplicationSubmittedEvent
func NewApplicationSubmittedEvent(app *Application) *ApplicationSubmittedEvent {
	return &ApplicationSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApplicationSubmitted, AggregateTypeApplication, app.ID),
		CohortID:        app.CohortID,
		StartupName:     app.StartupName,
	}
}

// ApplicationInterviewScheduledEvent is raised when an interview slot is booked
type ApplicationInterviewScheduledEvent struct {
	shared.BaseDomainEvent
	CohortID    uuid.UUID  `json:"cohort_id"`
	InterviewAt *time.Time `json:"interview_at"`
	Location    string     `json:"location"`
}

// NewApplicationInterviewScheduledEvent creates a new ApplicationInterviewScheduledEvent
func NewApplicationInterviewScheduledEvent(app *Application) *ApplicationInterviewScheduledEvent {
	return &ApplicationInterviewScheduledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApplicationInterviewScheduled, AggregateTypeApplication, app.ID),
		CohortID:        app.CohortID,
		InterviewAt:     app.InterviewAt,
		Location:        app.InterviewLocation,
	}
}

// ApplicationAcceptedEvent is raised when an application is accepted.
// Downstream consumers use it for onboarding handoff.
type ApplicationAcceptedEvent struct {
	shared.BaseDomainEvent
	CohortID    uuid.UUID `json:"cohort_id"`
	StartupName string    `json:"startup_name"`
}

// NewApplicationAcceptedEvent creates a new ApplicationAcceptedEvent
func NewApplicationAcceptedEvent(app *Application) *ApplicationAcceptedEvent {
	return &ApplicationAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApplicationAccepted, AggregateTypeApplication, app.ID),
		CohortID:        app.CohortID,
		StartupName:     app.StartupName,
	}
}

// ApplicationRejectedEvent is raised when an application is rejected
type ApplicationRejectedEvent struct {
	shared.BaseDomainEvent
	CohortID uuid.UUID `json:"cohort_id"`
	Reason   string    `json:"reason"`
}

// NewApplicationRejectedEvent creates a new ApplicationRejectedEvent
func NewApplicationRejectedEvent(app *Application) *ApplicationRejectedEvent {
	return &ApplicationRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApplicationRejected, AggregateTypeApplication, app.ID),
		CohortID:        app.CohortID,
		Reason:          app.RejectionReason,
	}
}
