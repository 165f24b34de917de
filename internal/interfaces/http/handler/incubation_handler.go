package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appincubation "github.com/venturehub/backend/internal/application/incubation"
)

// IncubationHandler exposes cohort and application pipeline endpoints
type IncubationHandler struct {
	BaseHandler
	cohorts      *appincubation.CohortService
	applications *appincubation.ApplicationService
}

// NewIncubationHandler creates a new IncubationHandler
func NewIncubationHandler(cohorts *appincubation.CohortService, applications *appincubation.ApplicationService) *IncubationHandler {
	return &IncubationHandler{cohorts: cohorts, applications: applications}
}

// RegisterRoutes registers the incubation routes
func (h *IncubationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cohorts := rg.Group("/cohorts")
	{
		cohorts.POST("", h.CreateCohort)
		cohorts.GET("", h.ListCohorts)
		cohorts.GET("/:id", h.GetCohort)
		cohorts.GET("/:id/applications", h.ListApplications)
		cohorts.POST("/:id/open", h.OpenApplications)
		cohorts.POST("/:id/review", h.StartReviewing)
		cohorts.POST("/:id/activate", h.ActivateCohort)
		cohorts.POST("/:id/complete", h.CompleteCohort)
		cohorts.POST("/:id/archive", h.ArchiveCohort)
	}

	applications := rg.Group("/applications")
	{
		applications.POST("", h.SubmitApplication)
		applications.GET("/:id", h.GetApplication)
		applications.GET("/:id/history", h.GetApplicationHistory)
		applications.POST("/:id/screen", h.StartScreening)
		applications.POST("/:id/schedule-interview", h.ScheduleInterview)
		applications.POST("/:id/complete-interview", h.CompleteInterview)
		applications.POST("/:id/accept", h.AcceptApplication)
		applications.POST("/:id/reject", h.RejectApplication)
		applications.POST("/:id/withdraw", h.WithdrawApplication)
	}
}

// CreateCohort handles POST /cohorts
func (h *IncubationHandler) CreateCohort(c *gin.Context) {
	var req appincubation.CreateCohortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.cohorts.CreateCohort(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListCohorts handles GET /cohorts
func (h *IncubationHandler) ListCohorts(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	page, err := h.cohorts.ListCohorts(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetCohort handles GET /cohorts/:id
func (h *IncubationHandler) GetCohort(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid cohort ID")
		return
	}

	resp, err := h.cohorts.GetCohort(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// OpenApplications handles POST /cohorts/:id/open
func (h *IncubationHandler) OpenApplications(c *gin.Context) {
	h.cohortTransition(c, h.cohorts.OpenApplications)
}

// StartReviewing handles POST /cohorts/:id/review
func (h *IncubationHandler) StartReviewing(c *gin.Context) {
	h.cohortTransition(c, h.cohorts.StartReviewing)
}

// ActivateCohort handles POST /cohorts/:id/activate
func (h *IncubationHandler) ActivateCohort(c *gin.Context) {
	h.cohortTransition(c, h.cohorts.ActivateCohort)
}

// CompleteCohort handles POST /cohorts/:id/complete
func (h *IncubationHandler) CompleteCohort(c *gin.Context) {
	h.cohortTransition(c, h.cohorts.CompleteCohort)
}

// ArchiveCohort handles POST /cohorts/:id/archive
func (h *IncubationHandler) ArchiveCohort(c *gin.Context) {
	h.cohortTransition(c, h.cohorts.ArchiveCohort)
}

// SubmitApplication handles POST /applications
func (h *IncubationHandler) SubmitApplication(c *gin.Context) {
	var req appincubation.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.applications.SubmitApplication(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetApplication handles GET /applications/:id
func (h *IncubationHandler) GetApplication(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid application ID")
		return
	}

	resp, err := h.applications.GetApplication(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetApplicationHistory handles GET /applications/:id/history
func (h *IncubationHandler) GetApplicationHistory(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid application ID")
		return
	}

	resp, err := h.applications.GetApplicationHistory(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListApplications handles GET /cohorts/:id/applications
func (h *IncubationHandler) ListApplications(c *gin.Context) {
	cohortID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid cohort ID")
		return
	}

	filter, err := parseListFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	resp, err := h.applications.ListApplications(c.Request.Context(), cohortID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// StartScreening handles POST /applications/:id/screen
func (h *IncubationHandler) StartScreening(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid application ID")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.applications.StartScreening(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ScheduleInterview handles POST /applications/:id/schedule-interview
func (h *IncubationHandler) ScheduleInterview(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid application ID")
		return
	}

	var req appincubation.ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.applications.ScheduleInterview(c.Request.Context(), id, req, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// CompleteInterview handles POST /applications/:id/complete-interview
func (h *IncubationHandler) CompleteInterview(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid application ID")
		return
	}

	var req appincubation.CompleteInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.applications.CompleteInterview(c.Request.Context(), id, req, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// AcceptApplication handles POST /applications/:id/accept.
// The acceptance decision is attributed, so the actor header is required.
func (h *IncubationHandler) AcceptApplication(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid application ID")
		return
	}

	actorID, err := h.requireActorID(c)
	if err != nil {
		return
	}

	resp, err := h.applications.AcceptApplication(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// RejectApplication handles POST /applications/:id/reject
func (h *IncubationHandler) RejectApplication(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid application ID")
		return
	}

	var req appincubation.RejectApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	actorID, err := h.requireActorID(c)
	if err != nil {
		return
	}

	resp, err := h.applications.RejectApplication(c.Request.Context(), id, req, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// WithdrawApplication handles POST /applications/:id/withdraw
func (h *IncubationHandler) WithdrawApplication(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid application ID")
		return
	}

	var req appincubation.WithdrawApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.applications.WithdrawApplication(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// requireActorID extracts the actor header and responds with 400 when
// it is missing or malformed
func (h *IncubationHandler) requireActorID(c *gin.Context) (uuid.UUID, error) {
	actorID, err := getActorID(c)
	if err != nil {
		h.ValidationError(c, err)
		return uuid.Nil, err
	}
	if actorID == nil {
		h.BadRequest(c, "X-Actor-ID header is required for this operation")
		return uuid.Nil, errMissingActor
	}
	return *actorID, nil
}

// cohortTransition runs a body-less cohort status transition endpoint
func (h *IncubationHandler) cohortTransition(
	c *gin.Context,
	fn func(ctx context.Context, cohortID uuid.UUID, actorID *uuid.UUID) (*appincubation.CohortResponse, error),
) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid cohort ID")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := fn(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
