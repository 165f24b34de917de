package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appticketing "github.com/venturehub/backend/internal/application/ticketing"
)

// EventHandler exposes event and ticket type management endpoints
type EventHandler struct {
	BaseHandler
	events *appticketing.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(events *appticketing.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// RegisterRoutes registers the event routes
func (h *EventHandler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		events.POST("", h.Create)
		events.GET("", h.List)
		events.GET("/:id", h.Get)
		events.POST("/:id/publish", h.Publish)
		events.POST("/:id/ticket-types", h.AddTicketType)
		events.GET("/:id/ticket-types", h.ListTicketTypes)
	}

	types := rg.Group("/ticket-types")
	{
		types.POST("/:id/pause", h.PauseTicketType)
		types.POST("/:id/activate", h.ActivateTicketType)
	}
}

// Create handles POST /events
func (h *EventHandler) Create(c *gin.Context) {
	var req appticketing.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.events.CreateEvent(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /events
func (h *EventHandler) List(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}
	if published := c.Query("published"); published != "" {
		filter.Filters["published"] = published == "true"
	}
	if venue := c.Query("venue"); venue != "" {
		filter.Filters["venue"] = venue
	}

	page, err := h.events.ListEvents(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get handles GET /events/:id. The path segment is an event ID or,
// when it does not parse as a UUID, a public slug.
func (h *EventHandler) Get(c *gin.Context) {
	raw := c.Param("id")
	if id, err := uuid.Parse(raw); err == nil {
		resp, err := h.events.GetEvent(c.Request.Context(), id)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, resp)
		return
	}

	resp, err := h.events.GetEventBySlug(c.Request.Context(), raw)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Publish handles POST /events/:id/publish
func (h *EventHandler) Publish(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid event ID")
		return
	}

	resp, err := h.events.PublishEvent(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddTicketType handles POST /events/:id/ticket-types
func (h *EventHandler) AddTicketType(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid event ID")
		return
	}

	var req appticketing.CreateTicketTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.events.AddTicketType(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListTicketTypes handles GET /events/:id/ticket-types
func (h *EventHandler) ListTicketTypes(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid event ID")
		return
	}

	resp, err := h.events.ListTicketTypes(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// PauseTicketType handles POST /ticket-types/:id/pause
func (h *EventHandler) PauseTicketType(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid ticket type ID")
		return
	}

	resp, err := h.events.PauseTicketType(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ActivateTicketType handles POST /ticket-types/:id/activate
func (h *EventHandler) ActivateTicketType(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid ticket type ID")
		return
	}

	resp, err := h.events.ActivateTicketType(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
