// Package http contains the gin handlers for the design backend API.
package http

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/DesignOS/backend/internal/api/ws"
	"github.com/GriffinCanCode/DesignOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/DesignOS/backend/internal/logging"
	"github.com/GriffinCanCode/DesignOS/backend/internal/service"
	"github.com/GriffinCanCode/DesignOS/backend/internal/session"
	"github.com/GriffinCanCode/DesignOS/backend/internal/types"
)

// Version reported by the root and health endpoints.
const Version = "0.1.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	sessions *session.Manager
	hub      *ws.Hub
	metrics  *monitoring.Metrics
	logger   *logging.Logger
	started  time.Time
}

// NewHandlers creates a new handler set. The metrics collector may be
// nil, in which case recording is skipped.
func NewHandlers(
	registry *service.Registry,
	sessions *session.Manager,
	hub *ws.Hub,
	metrics *monitoring.Metrics,
	logger *logging.Logger,
) *Handlers {
	if logger == nil {
		logger = logging.NewDefault()
	}
	return &Handlers{
		registry: registry,
		sessions: sessions,
		hub:      hub,
		metrics:  metrics,
		logger:   logger,
		started:  time.Now(),
	}
}

// Root reports service identity
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Design DNA Backend",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	if h.metrics != nil {
		h.metrics.UpdateUptime()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"version":          Version,
		"uptime_seconds":   int64(time.Since(h.started).Seconds()),
		"service_registry": h.registry.Stats(),
		"sessions":         gin.H{"active": h.sessions.Count()},
		"stream_clients":   h.hub.ClientCount(),
	})
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if categoryStr := c.Query("category"); categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	services := h.registry.List(category)
	stats := h.registry.Stats()

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"stats":    stats,
	})
}

// DiscoverServices ranks services against an intent
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req struct {
		Intent string `json:"intent" binding:"required"`
		Limit  int    `json:"limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Limit <= 0 {
		req.Limit = 5
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.Discover(req.Intent, req.Limit),
	})
}

// ExecuteService runs a tool and streams lifecycle events
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req struct {
		ToolID  string                 `json:"tool_id" binding:"required"`
		Params  map[string]interface{} `json:"params"`
		Context *types.Context         `json:"context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.hub.ToolStarted(req.ToolID)
	start := time.Now()

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, req.Context)
	duration := time.Since(start)

	ok := err == nil && result != nil && result.Success
	var data map[string]interface{}
	if result != nil {
		data = result.Data
	}
	if h.metrics != nil {
		h.metrics.RecordToolExecution(req.ToolID, ok, duration)
	}
	h.hub.ToolCompleted(req.ToolID, ok, duration, data)

	if err != nil {
		// Routing failures: unknown service or malformed tool id.
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if !result.Success {
		h.logger.Info("tool returned failure",
			zap.String("tool_id", req.ToolID),
			zap.Stringp("error", result.Error),
		)
	}

	c.JSON(http.StatusOK, result)
}

// CreateSession opens a fresh design session
func (h *Handlers) CreateSession(c *gin.Context) {
	sess := h.sessions.Create()
	if h.metrics != nil {
		h.metrics.SetActiveSessions(h.sessions.Count())
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": sess.ID,
		"created_at": sess.CreatedAt,
	})
}

// GetSession reports the state of an existing session
func (h *Handlers) GetSession(c *gin.Context) {
	sess, ok := h.sessions.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	info := gin.H{
		"session_id":  sess.ID,
		"created_at":  sess.CreatedAt,
		"image_count": len(sess.Images()),
		"style_count": len(sess.Styles()),
		"has_dna":     false,
	}
	if _, kind, err := sess.DNA(); err == nil {
		info["has_dna"] = true
		info["dna_kind"] = kind.String()
	}

	c.JSON(http.StatusOK, info)
}

// AttachImages stores base64 reference images on a session
func (h *Handlers) AttachImages(c *gin.Context) {
	var req struct {
		Images []string `json:"images" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Images) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no images provided"})
		return
	}

	sess := h.sessions.Get(c.Param("id"))

	formats := make([]string, 0, len(req.Images))
	for i, encoded := range req.Images {
		data, err := decodeImage(encoded)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":       "invalid base64 image data",
				"image_index": i,
			})
			return
		}
		img, err := sess.AddImage(data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":       err.Error(),
				"image_index": i,
			})
			return
		}
		formats = append(formats, img.MIME)
	}

	c.JSON(http.StatusOK, gin.H{
		"attached":    len(formats),
		"image_count": len(sess.Images()),
		"formats":     formats,
	})
}

// ClearImages drops a session's reference images
func (h *Handlers) ClearImages(c *gin.Context) {
	sess, ok := h.sessions.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleared": sess.ClearImages()})
}

// decodeImage accepts raw base64 or a data URI.
func decodeImage(encoded string) ([]byte, error) {
	if idx := strings.Index(encoded, ","); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}
	return base64.StdEncoding.DecodeString(encoded)
}
