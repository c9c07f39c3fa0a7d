package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	syncapp "github.com/wmsconnector/backend/internal/application/sync"
)

// WebhookHandler receives shop lifecycle events and hands them to the
// dispatcher. Sync failures never bounce back to the shop; the response is
// positive as soon as the event is accepted.
type WebhookHandler struct {
	BaseHandler
	dispatcher *syncapp.Dispatcher
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(dispatcher *syncapp.Dispatcher) *WebhookHandler {
	return &WebhookHandler{dispatcher: dispatcher}
}

// RegisterRoutes registers webhook routes on the given group
func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/order-payment-completed", h.OrderPaymentCompleted)
	rg.POST("/webhooks/order-updated", h.OrderUpdated)
	rg.POST("/webhooks/order-cancelled", h.OrderCancelled)
}

// OrderEventRequest is the payload every order webhook carries
type OrderEventRequest struct {
	OrderID string `json:"order_id" binding:"required,uuid"`
}

// EventResult acknowledges a received event
type EventResult struct {
	OrderID  string `json:"order_id"`
	Accepted bool   `json:"accepted"`
}

// OrderPaymentCompleted triggers order creation in the warehouse
func (h *WebhookHandler) OrderPaymentCompleted(c *gin.Context) {
	orderID, ok := h.bindOrderEvent(c)
	if !ok {
		return
	}

	h.dispatcher.OrderPaymentCompleted(c.Request.Context(), orderID)
	h.Accepted(c, EventResult{OrderID: orderID.String(), Accepted: true})
}

// OrderUpdated triggers an order line replay in the warehouse
func (h *WebhookHandler) OrderUpdated(c *gin.Context) {
	orderID, ok := h.bindOrderEvent(c)
	if !ok {
		return
	}

	h.dispatcher.OrderUpdated(c.Request.Context(), orderID)
	h.Accepted(c, EventResult{OrderID: orderID.String(), Accepted: true})
}

// OrderCancelled triggers order cancellation in the warehouse
func (h *WebhookHandler) OrderCancelled(c *gin.Context) {
	orderID, ok := h.bindOrderEvent(c)
	if !ok {
		return
	}

	h.dispatcher.OrderCancelled(c.Request.Context(), orderID)
	h.Accepted(c, EventResult{OrderID: orderID.String(), Accepted: true})
}

// bindOrderEvent parses and validates the webhook payload
func (h *WebhookHandler) bindOrderEvent(c *gin.Context) (uuid.UUID, bool) {
	var req OrderEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, bindingErrorMessage(err))
		return uuid.Nil, false
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		h.BadRequest(c, "invalid order ID")
		return uuid.Nil, false
	}
	return orderID, true
}

// bindingErrorMessage flattens validator errors into one readable message
func bindingErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields = append(fields, fieldErr.Field()+" ("+fieldErr.Tag()+")")
		}
		return "invalid fields: " + strings.Join(fields, ", ")
	}
	return "invalid request body"
}
