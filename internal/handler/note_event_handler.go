package handler

import (
	"simple-note/internal/pkg/logger"
	internalWS "simple-note/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// NoteEventHandler streams note change events over websocket.
type NoteEventHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewNoteEventHandler(hub *internalWS.Hub, log logger.ILogger) *NoteEventHandler {
	return &NoteEventHandler{
		hub:    hub,
		logger: log,
	}
}

// RegisterRoutes must run before the note controller registers /notes/:id,
// otherwise "ws" is captured as an id.
func (h *NoteEventHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/notes/ws", h.ServeWs)
}

func (h *NoteEventHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	remote := c.IP()
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("NoteEventHandler", "Starting WebSocket session", map[string]interface{}{"remote": remote})
		internalWS.ServeWs(h.hub, conn)
		h.logger.Info("NoteEventHandler", "WebSocket session ended", map[string]interface{}{"remote": remote})
	})(c)
}
