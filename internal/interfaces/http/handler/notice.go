package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wmsconnector/backend/internal/domain/sync"
	"github.com/wmsconnector/backend/internal/interfaces/http/dto"
)

// NoticeHandler exposes the pending sync notices to the shop frontend
type NoticeHandler struct {
	BaseHandler
	notices sync.NoticeStore
}

// NewNoticeHandler creates a new NoticeHandler
func NewNoticeHandler(notices sync.NoticeStore) *NoticeHandler {
	return &NoticeHandler{notices: notices}
}

// RegisterRoutes registers notice routes on the given group
func (h *NoticeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notices", h.DrainNotices)
}

// DrainNotices returns all pending notices and clears them. Each notice is
// delivered at most once.
func (h *NoticeHandler) DrainNotices(c *gin.Context) {
	notices, err := h.notices.Drain(c.Request.Context())
	if err != nil {
		h.Error(c, dto.ErrCodeInternal, "failed to read notices")
		return
	}
	if notices == nil {
		notices = []sync.Notice{}
	}

	h.Success(c, notices)
}
