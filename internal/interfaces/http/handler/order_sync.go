package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	syncapp "github.com/wmsconnector/backend/internal/application/sync"
)

// OrderSyncHandler handles order synchronization API endpoints
type OrderSyncHandler struct {
	BaseHandler
	orders *syncapp.OrderSyncService
}

// NewOrderSyncHandler creates a new OrderSyncHandler
func NewOrderSyncHandler(orders *syncapp.OrderSyncService) *OrderSyncHandler {
	return &OrderSyncHandler{orders: orders}
}

// RegisterRoutes registers order sync routes on the given group
func (h *OrderSyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders/:id/sync", h.CreateOrder)
	rg.PUT("/orders/:id/sync", h.UpdateOrder)
	rg.POST("/orders/:id/cancel", h.CancelOrder)
	rg.GET("/orders/statuses", h.OrderStatuses)
}

// SyncResult reports the outcome of a sync trigger
type SyncResult struct {
	OrderID string `json:"order_id"`
	Synced  bool   `json:"synced"`
}

// CreateOrder pushes a shop order into the warehouse. The optional
// parcel_machine_id query parameter fills the locker box when the order
// itself does not carry one.
func (h *OrderSyncHandler) CreateOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "invalid order ID")
		return
	}

	parcelMachineID := strings.TrimSpace(c.Query("parcel_machine_id"))

	if err := h.orders.CreateOrder(c.Request.Context(), orderID, parcelMachineID); err != nil {
		h.HandleSyncError(c, err)
		return
	}

	h.Success(c, SyncResult{OrderID: orderID.String(), Synced: true})
}

// UpdateOrder replays the order lines against an already synced order
func (h *OrderSyncHandler) UpdateOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "invalid order ID")
		return
	}

	if err := h.orders.UpdateOrder(c.Request.Context(), orderID); err != nil {
		h.HandleSyncError(c, err)
		return
	}

	h.Success(c, SyncResult{OrderID: orderID.String(), Synced: true})
}

// CancelOrder cancels the order in the warehouse. Orders that never made it
// to the warehouse cancel silently.
func (h *OrderSyncHandler) CancelOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "invalid order ID")
		return
	}

	if err := h.orders.CancelOrder(c.Request.Context(), orderID); err != nil {
		h.HandleSyncError(c, err)
		return
	}

	h.Success(c, SyncResult{OrderID: orderID.String(), Synced: true})
}

// OrderStatuses resolves warehouse statuses for a comma separated list of
// order IDs. Lookups are independent; a failed entry carries its own error.
func (h *OrderSyncHandler) OrderStatuses(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("ids"))
	if raw == "" {
		h.BadRequest(c, "ids query parameter is required")
		return
	}

	var orderIDs []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			h.BadRequest(c, "invalid order ID: "+part)
			return
		}
		orderIDs = append(orderIDs, id)
	}
	if len(orderIDs) == 0 {
		h.BadRequest(c, "ids query parameter is required")
		return
	}

	results := h.orders.OrderStatuses(c.Request.Context(), orderIDs)
	h.Success(c, results)
}
