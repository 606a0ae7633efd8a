// Package ws streams tool lifecycle and workflow progress events to
// connected clients over websockets.
package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/DesignOS/backend/internal/logging"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// Hub fans events out to every connected client.
type Hub struct {
	logger *logging.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]*sync.Mutex
}

// NewHub creates a hub.
func NewHub(logger *logging.Logger) *Hub {
	if logger == nil {
		logger = logging.NewDefault()
	}
	return &Hub{
		logger: logger,
		conns:  make(map[*websocket.Conn]*sync.Mutex),
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Broadcast sends an event to every client. Clients whose write fails
// are dropped.
func (h *Hub) Broadcast(event map[string]interface{}) {
	if _, ok := event["timestamp"]; !ok {
		event["timestamp"] = time.Now().Unix()
	}

	h.mu.Lock()
	targets := make(map[*websocket.Conn]*sync.Mutex, len(h.conns))
	for conn, wmu := range h.conns {
		targets[conn] = wmu
	}
	h.mu.Unlock()

	for conn, wmu := range targets {
		if err := h.write(conn, wmu, event); err != nil {
			h.logger.Debug("dropping client", zap.Error(err))
			h.remove(conn)
		}
	}
}

// ToolStarted broadcasts a tool lifecycle start event.
func (h *Hub) ToolStarted(toolID string) {
	h.Broadcast(map[string]interface{}{
		"type":    "tool_start",
		"tool_id": toolID,
	})
}

// ToolCompleted broadcasts a tool lifecycle completion event. Workflow
// progress data is forwarded so clients can render plan state live.
func (h *Hub) ToolCompleted(toolID string, success bool, duration time.Duration, data map[string]interface{}) {
	event := map[string]interface{}{
		"type":        "tool_complete",
		"tool_id":     toolID,
		"success":     success,
		"duration_ms": duration.Milliseconds(),
	}
	if progress, ok := data["progress"]; ok {
		event["progress"] = progress
	}
	if workflowID, ok := data["workflow_id"]; ok {
		event["workflow_id"] = workflowID
	}
	h.Broadcast(event)
}

// HandleConnection upgrades the request and serves the event stream
// until the client disconnects.
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	wmu := h.add(conn)
	defer h.remove(conn)

	h.write(conn, wmu, map[string]interface{}{
		"type":      "system",
		"message":   "Connected to design backend stream",
		"timestamp": time.Now().Unix(),
	})

	for {
		var msg struct {
			Type string `json:"type"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}

		switch msg.Type {
		case "ping":
			h.write(conn, wmu, map[string]interface{}{"type": "pong"})
		default:
			h.write(conn, wmu, map[string]interface{}{
				"type":    "error",
				"message": "unknown message type",
			})
		}
	}
}

func (h *Hub) add(conn *websocket.Conn) *sync.Mutex {
	wmu := &sync.Mutex{}
	h.mu.Lock()
	h.conns[conn] = wmu
	h.mu.Unlock()
	return wmu
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

func (h *Hub) write(conn *websocket.Conn, wmu *sync.Mutex, data interface{}) error {
	wmu.Lock()
	defer wmu.Unlock()
	return conn.WriteJSON(data)
}
