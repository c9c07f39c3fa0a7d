package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wmsconnector/backend/internal/interfaces/http/dto"
)

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	startTime  time.Time
	wmsEnabled bool
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(wmsEnabled bool) *SystemHandler {
	return &SystemHandler{
		startTime:  time.Now(),
		wmsEnabled: wmsEnabled,
	}
}

// RegisterRoutes registers system routes on the given group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/system/info", h.GetSystemInfo)
	rg.GET("/system/ping", h.Ping)
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Uptime     string `json:"uptime"`
	WMSEnabled bool   `json:"wms_enabled"`
}

// GetSystemInfo returns basic system information including whether the
// warehouse integration is configured
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:       "WMS Connector",
		Version:    "1.0.0",
		GoVersion:  runtime.Version(),
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
		WMSEnabled: h.wmsEnabled,
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// Ping is a simple liveness endpoint
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"message":   "pong",
		"timestamp": time.Now().Format(time.RFC3339),
	}))
}
