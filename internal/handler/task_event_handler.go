package handler

import (
	"ai-knowledgebase-be/internal/pkg/logger"
	internalWS "ai-knowledgebase-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// TaskEventHandler exposes the websocket endpoint clients use to follow
// upload progress for a session.
type TaskEventHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewTaskEventHandler(hub *internalWS.Hub, log logger.ILogger) *TaskEventHandler {
	return &TaskEventHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *TaskEventHandler) ServeWs(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	// Upgrade via Fiber WebSocket Middleware
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("TaskEventHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionID})
			internalWS.ServeWs(h.hub, conn, sessionID)
			h.logger.Info("TaskEventHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the websocket route.
func (h *TaskEventHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/tasks/:session_id", h.ServeWs)
}
