package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appticketing "github.com/venturehub/backend/internal/application/ticketing"
	"github.com/venturehub/backend/internal/infrastructure/logger"
)

// BookingHandler exposes the booking workflow endpoints
type BookingHandler struct {
	BaseHandler
	bookings *appticketing.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookings *appticketing.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// RegisterRoutes registers the booking routes
func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		events.POST("/:id/bookings", h.CreateBooking)
		events.GET("/:id/attendees", h.ListAttendees)
	}

	attendees := rg.Group("/attendees")
	{
		attendees.GET("/:id", h.GetAttendee)
		attendees.POST("/:id/cancel", h.CancelBooking)
		attendees.POST("/:id/check-in", h.CheckIn)
		attendees.POST("/:id/resend-ticket", h.ResendTicket)
	}

	rg.POST("/payments/webhook", h.PaymentWebhook)
}

// CreateBooking handles POST /events/:id/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	eventID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid event ID")
		return
	}

	var req appticketing.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.bookings.CreateBooking(c.Request.Context(), eventID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListAttendees handles GET /events/:id/attendees
func (h *BookingHandler) ListAttendees(c *gin.Context) {
	eventID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid event ID")
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
	if ticketType := c.Query("ticket_type_id"); ticketType != "" {
		filter.Filters["ticket_type_id"] = ticketType
	}

	resp, err := h.bookings.ListAttendees(c.Request.Context(), eventID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetAttendee handles GET /attendees/:id
func (h *BookingHandler) GetAttendee(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid attendee ID")
		return
	}

	resp, err := h.bookings.GetAttendee(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// cancelBookingRequest is the inbound payload for cancelling a booking
type cancelBookingRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// CancelBooking handles POST /attendees/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid attendee ID")
		return
	}

	var req cancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	if err := h.bookings.CancelBooking(c.Request.Context(), id, req.Reason, actorID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// CheckIn handles POST /attendees/:id/check-in
func (h *BookingHandler) CheckIn(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid attendee ID")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	if err := h.bookings.CheckInAttendee(c.Request.Context(), id, actorID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// ResendTicket handles POST /attendees/:id/resend-ticket
func (h *BookingHandler) ResendTicket(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid attendee ID")
		return
	}

	if err := h.bookings.ResendTicket(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// paymentWebhookRequest is the payload the payment gateway posts back.
// GatewayRef deduplicates retried deliveries.
type paymentWebhookRequest struct {
	InvoiceID  uuid.UUID `json:"invoice_id" binding:"required"`
	GatewayRef string    `json:"gateway_ref" binding:"required,max=100"`
	Status     string    `json:"status" binding:"required,oneof=completed failed"`
}

// PaymentWebhook handles POST /payments/webhook
func (h *BookingHandler) PaymentWebhook(c *gin.Context) {
	var req paymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	logger.GetGinLogger(c).Info("payment callback received",
		zap.String("invoice_id", req.InvoiceID.String()),
		zap.String("gateway_ref", req.GatewayRef),
		zap.String("status", req.Status),
	)

	var err error
	if req.Status == "completed" {
		err = h.bookings.HandlePaymentCompleted(c.Request.Context(), req.InvoiceID, req.GatewayRef)
	} else {
		err = h.bookings.HandlePaymentFailed(c.Request.Context(), req.InvoiceID, req.GatewayRef)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
