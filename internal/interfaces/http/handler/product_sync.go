package handler

import (
	"github.com/gin-gonic/gin"

	syncapp "github.com/wmsconnector/backend/internal/application/sync"
)

// ProductSyncHandler handles product synchronization API endpoints
type ProductSyncHandler struct {
	BaseHandler
	products *syncapp.ProductSyncService
}

// NewProductSyncHandler creates a new ProductSyncHandler
func NewProductSyncHandler(products *syncapp.ProductSyncService) *ProductSyncHandler {
	return &ProductSyncHandler{products: products}
}

// RegisterRoutes registers product sync routes on the given group
func (h *ProductSyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/products/:id/begin-change", h.BeginChange)
	rg.POST("/products/:id/commit-change", h.CommitChange)
	rg.DELETE("/products/:id", h.DeleteProduct)
	rg.GET("/manufacturers", h.ListManufacturers)
}

// ChangeResult reports the outcome of a product change phase
type ChangeResult struct {
	ProductID string `json:"product_id"`
	Phase     string `json:"phase"`
}

// BeginChange captures the pre-save snapshot of a product. Must be called
// before the shop persists an edit so CommitChange can diff against it.
func (h *ProductSyncHandler) BeginChange(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "invalid product ID")
		return
	}

	if err := h.products.BeginChange(c.Request.Context(), productID); err != nil {
		h.HandleSyncError(c, err)
		return
	}

	h.Success(c, ChangeResult{ProductID: productID.String(), Phase: "begin"})
}

// CommitChange compares the saved product against its snapshot and pushes
// the difference to the warehouse
func (h *ProductSyncHandler) CommitChange(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "invalid product ID")
		return
	}

	if err := h.products.CommitChange(c.Request.Context(), productID); err != nil {
		h.HandleSyncError(c, err)
		return
	}

	h.Success(c, ChangeResult{ProductID: productID.String(), Phase: "commit"})
}

// DeleteProduct removes the product from the warehouse and clears its marker
func (h *ProductSyncHandler) DeleteProduct(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "invalid product ID")
		return
	}

	if err := h.products.DeleteProduct(c.Request.Context(), productID); err != nil {
		h.HandleSyncError(c, err)
		return
	}

	h.NoContent(c)
}

// ListManufacturers returns the warehouse manufacturer catalogue
func (h *ProductSyncHandler) ListManufacturers(c *gin.Context) {
	manufacturers, err := h.products.ListManufacturers(c.Request.Context())
	if err != nil {
		h.HandleSyncError(c, err)
		return
	}

	h.Success(c, manufacturers)
}
