package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appmentorship "github.com/venturehub/backend/internal/application/mentorship"
)

// MentorshipHandler exposes mentor and session scheduling endpoints
type MentorshipHandler struct {
	BaseHandler
	scheduler *appmentorship.SchedulerService
}

// NewMentorshipHandler creates a new MentorshipHandler
func NewMentorshipHandler(scheduler *appmentorship.SchedulerService) *MentorshipHandler {
	return &MentorshipHandler{scheduler: scheduler}
}

// RegisterRoutes registers the mentorship routes
func (h *MentorshipHandler) RegisterRoutes(rg *gin.RouterGroup) {
	mentors := rg.Group("/mentors")
	{
		mentors.POST("", h.CreateMentor)
		mentors.POST("/:id/activate", h.ActivateMentor)
		mentors.POST("/:id/deactivate", h.DeactivateMentor)
		mentors.GET("/:id/sessions", h.ListMentorSessions)
	}

	sessions := rg.Group("/sessions")
	{
		sessions.POST("", h.BookSession)
		sessions.POST("/:id/confirm", h.ConfirmSession)
		sessions.POST("/:id/complete", h.CompleteSession)
		sessions.POST("/:id/cancel", h.CancelSession)
		sessions.POST("/:id/no-show", h.MarkNoShow)
	}

	rg.GET("/applications/:id/sessions", h.ListApplicationSessions)
}

// CreateMentor handles POST /mentors
func (h *MentorshipHandler) CreateMentor(c *gin.Context) {
	var req appmentorship.CreateMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.scheduler.CreateMentor(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ActivateMentor handles POST /mentors/:id/activate
func (h *MentorshipHandler) ActivateMentor(c *gin.Context) {
	h.setMentorActive(c, true)
}

// DeactivateMentor handles POST /mentors/:id/deactivate
func (h *MentorshipHandler) DeactivateMentor(c *gin.Context) {
	h.setMentorActive(c, false)
}

func (h *MentorshipHandler) setMentorActive(c *gin.Context, active bool) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid mentor ID")
		return
	}

	resp, err := h.scheduler.SetMentorActive(c.Request.Context(), id, active)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListMentorSessions handles GET /mentors/:id/sessions. The from/to
// query parameters bound the window and default to the current week.
func (h *MentorshipHandler) ListMentorSessions(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid mentor ID")
		return
	}

	from, to, err := parseTimeWindow(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.scheduler.ListMentorSessions(c.Request.Context(), id, from, to)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// BookSession handles POST /sessions
func (h *MentorshipHandler) BookSession(c *gin.Context) {
	var req appmentorship.BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.scheduler.BookSession(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ConfirmSession handles POST /sessions/:id/confirm
func (h *MentorshipHandler) ConfirmSession(c *gin.Context) {
	h.sessionTransition(c, h.scheduler.ConfirmSession)
}

// MarkNoShow handles POST /sessions/:id/no-show
func (h *MentorshipHandler) MarkNoShow(c *gin.Context) {
	h.sessionTransition(c, h.scheduler.MarkNoShow)
}

// CompleteSession handles POST /sessions/:id/complete
func (h *MentorshipHandler) CompleteSession(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid session ID")
		return
	}

	var req appmentorship.CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.scheduler.CompleteSession(c.Request.Context(), id, req, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// CancelSession handles POST /sessions/:id/cancel
func (h *MentorshipHandler) CancelSession(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid session ID")
		return
	}

	var req appmentorship.CancelSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.scheduler.CancelSession(c.Request.Context(), id, req, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListApplicationSessions handles GET /applications/:id/sessions
func (h *MentorshipHandler) ListApplicationSessions(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid application ID")
		return
	}

	resp, err := h.scheduler.ListApplicationSessions(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// sessionTransition runs a body-less session status transition endpoint
func (h *MentorshipHandler) sessionTransition(
	c *gin.Context,
	fn func(ctx context.Context, sessionID uuid.UUID, actorID *uuid.UUID) (*appmentorship.SessionResponse, error),
) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid session ID")
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

// parseTimeWindow parses optional RFC 3339 from/to query parameters,
// defaulting to the seven days starting now
func parseTimeWindow(c *gin.Context) (time.Time, time.Time, error) {
	from := time.Now()
	to := from.Add(7 * 24 * time.Hour)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
		to = from.Add(7 * 24 * time.Hour)
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}
	return from, to, nil
}
