package handler

import (
	"github.com/gin-gonic/gin"

	syncapp "github.com/wmsconnector/backend/internal/application/sync"
)

// StockSyncHandler handles stock synchronization API endpoints
type StockSyncHandler struct {
	BaseHandler
	stocks *syncapp.StockSyncService
}

// NewStockSyncHandler creates a new StockSyncHandler
func NewStockSyncHandler(stocks *syncapp.StockSyncService) *StockSyncHandler {
	return &StockSyncHandler{stocks: stocks}
}

// RegisterRoutes registers stock sync routes on the given group
func (h *StockSyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/stocks/pull", h.PullStocks)
}

// PullStocks fetches sellable warehouse stock and overwrites shop quantities
func (h *StockSyncHandler) PullStocks(c *gin.Context) {
	if err := h.stocks.PullStocks(c.Request.Context()); err != nil {
		h.HandleSyncError(c, err)
		return
	}

	h.Success(c, gin.H{"pulled": true})
}
