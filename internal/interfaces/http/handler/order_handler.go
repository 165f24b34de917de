package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appordering "github.com/venturehub/backend/internal/application/ordering"
)

// OrderHandler exposes the order lifecycle endpoints
type OrderHandler struct {
	BaseHandler
	orders *appordering.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *appordering.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// RegisterRoutes registers the order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.GET("/:id/history", h.History)
		orders.POST("/:id/process", h.StartProcessing)
		orders.POST("/:id/ship", h.Ship)
		orders.POST("/:id/out-for-delivery", h.OutForDelivery)
		orders.POST("/:id/deliver", h.Deliver)
		orders.POST("/:id/complete", h.Complete)
		orders.POST("/:id/cancel", h.Cancel)
		orders.POST("/:id/refund", h.Refund)
	}
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req appordering.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.orders.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		filter.Filters["customer_id"] = customerID
	}

	page, err := h.orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid order ID")
		return
	}

	resp, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// History handles GET /orders/:id/history
func (h *OrderHandler) History(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid order ID")
		return
	}

	resp, err := h.orders.GetOrderHistory(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// StartProcessing handles POST /orders/:id/process
func (h *OrderHandler) StartProcessing(c *gin.Context) {
	h.transition(c, h.orders.StartProcessing)
}

// Ship handles POST /orders/:id/ship
func (h *OrderHandler) Ship(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid order ID")
		return
	}

	var req appordering.ShipOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.orders.ShipOrder(c.Request.Context(), id, req, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// OutForDelivery handles POST /orders/:id/out-for-delivery
func (h *OrderHandler) OutForDelivery(c *gin.Context) {
	h.transition(c, h.orders.MarkOutForDelivery)
}

// Deliver handles POST /orders/:id/deliver
func (h *OrderHandler) Deliver(c *gin.Context) {
	h.transition(c, h.orders.MarkDelivered)
}

// Complete handles POST /orders/:id/complete
func (h *OrderHandler) Complete(c *gin.Context) {
	h.transition(c, h.orders.CompleteOrder)
}

// Cancel handles POST /orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid order ID")
		return
	}

	var req appordering.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.orders.CancelOrder(c.Request.Context(), id, req, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Refund handles POST /orders/:id/refund
func (h *OrderHandler) Refund(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid order ID")
		return
	}

	var req appordering.RefundOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.orders.RefundOrder(c.Request.Context(), id, req, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// transition runs a body-less order status transition endpoint
func (h *OrderHandler) transition(
	c *gin.Context,
	fn func(ctx context.Context, orderID uuid.UUID, actorID *uuid.UUID) (*appordering.OrderResponse, error),
) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid order ID")
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
