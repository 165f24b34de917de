package incubation

import (
	"time"

	"github.com/google/uuid"

	"github.com/venturehub/backend/internal/domain/incubation"
)

// SubmitApplicationRequest is the inbound payload for a startup application
type SubmitApplicationRequest struct {
	CohortID     uuid.UUID `json:"cohort_id" binding:"required"`
	StartupName  string    `json:"startup_name" binding:"required,max=200"`
	FounderName  string    `json:"founder_name" binding:"required,max=200"`
	FounderEmail string    `json:"founder_email" binding:"required,email"`
	Pitch        string    `json:"pitch" binding:"required,max=5000"`
}

// ScheduleInterviewRequest carries the interview slot details
type ScheduleInterviewRequest struct {
	At       time.Time `json:"at" binding:"required"`
	Location string    `json:"location" binding:"max=200"`
}

// CompleteInterviewRequest carries the interviewer notes
type CompleteInterviewRequest struct {
	Notes string `json:"notes" binding:"max=5000"`
}

// RejectApplicationRequest carries the rejection reason
type RejectApplicationRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

// WithdrawApplicationRequest carries optional withdrawal notes
type WithdrawApplicationRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

// CreateCohortRequest is the inbound payload for creating a cohort
type CreateCohortRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

// ApplicationResponse is the outbound representation of an application
type ApplicationResponse struct {
	ID              uuid.UUID  `json:"id"`
	CohortID        uuid.UUID  `json:"cohort_id"`
	StartupName     string     `json:"startup_name"`
	FounderName     string     `json:"founder_name"`
	FounderEmail    string     `json:"founder_email"`
	Status          string     `json:"status"`
	InterviewAt     *time.Time `json:"interview_at,omitempty"`
	InterviewPlace  string     `json:"interview_location,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// CohortResponse is the outbound representation of a cohort
type CohortResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	Capacity      int       `json:"capacity"`
	AcceptedCount int       `json:"accepted_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToApplicationResponse maps an application aggregate to its response shape
func ToApplicationResponse(a *incubation.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:              a.ID,
		CohortID:        a.CohortID,
		StartupName:     a.StartupName,
		FounderName:     a.FounderName,
		FounderEmail:    a.FounderEmail,
		Status:          a.Status.String(),
		InterviewAt:     a.InterviewAt,
		InterviewPlace:  a.InterviewLocation,
		DecidedAt:       a.DecidedAt,
		RejectionReason: a.RejectionReason,
		CreatedAt:       a.CreatedAt,
	}
}

// ToCohortResponse maps a cohort aggregate to its response shape
func ToCohortResponse(c *incubation.Cohort) CohortResponse {
	return CohortResponse{
		ID:            c.ID,
		Name:          c.Name,
		Status:        c.Status.String(),
		Capacity:      c.Capacity,
		AcceptedCount: c.AcceptedCount,
		CreatedAt:     c.CreatedAt,
	}
}
