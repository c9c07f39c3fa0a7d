package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wmsconnector/backend/internal/domain/shop"
	"github.com/wmsconnector/backend/internal/domain/sync"
	"github.com/wmsconnector/backend/internal/domain/wms"
	"github.com/wmsconnector/backend/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// parseIDParam parses the :id path parameter as a UUID
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Accepted sends a 202 accepted response
func (h *BaseHandler) Accepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response, deriving the status code from the error code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeBadRequest, message)
}

// HandleSyncError converts domain and upstream errors to HTTP responses
func (h *BaseHandler) HandleSyncError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shop.ErrOrderNotFound), errors.Is(err, shop.ErrProductNotFound):
		h.Error(c, dto.ErrCodeNotFound, err.Error())
	case errors.Is(err, shop.ErrOrderAlreadySynced), errors.Is(err, shop.ErrProductAlreadySynced):
		h.Error(c, dto.ErrCodeAlreadySynced, err.Error())
	case errors.Is(err, sync.ErrOrderNotSynced), errors.Is(err, sync.ErrProductNotSynced):
		h.Error(c, dto.ErrCodeNotSynced, err.Error())
	case errors.Is(err, sync.ErrMissingShippingMethod), errors.Is(err, sync.ErrEmptyOrder):
		h.Error(c, dto.ErrCodeInvalidState, err.Error())
	default:
		if validationErr, ok := sync.AsValidationError(err); ok {
			h.Error(c, dto.ErrCodeValidation, validationErr.Error())
			return
		}
		if apiErr, ok := wms.AsAPIError(err); ok {
			h.Error(c, dto.ErrCodeUpstream, apiErr.Error())
			return
		}
		if wms.IsTransportError(err) {
			h.Error(c, dto.ErrCodeUpstreamUnavailable, err.Error())
			return
		}
		h.Error(c, dto.ErrCodeInternal, "An unexpected error occurred")
	}
}
