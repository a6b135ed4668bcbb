package handlers

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quixjob/backend/api-svc/internal/helper"
	"github.com/quixjob/backend/api-svc/internal/relay"
)

const wsWriteTimeout = 10 * time.Second

// wsConn adapts a websocket to relay.Conn. Writes are serialised because the
// relay may forward to one socket from many sessions at once.
type wsConn struct {
	id string

	mu sync.Mutex
	c  *websocket.Conn
}

func (w *wsConn) ID() string { return w.id }

func (w *wsConn) Send(ev relay.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.c.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return w.c.WriteJSON(ev)
}

type ChatHandler struct {
	relay *relay.Relay
	log   *zap.Logger
}

func NewChatHandler(r *relay.Relay, log *zap.Logger) *ChatHandler {
	return &ChatHandler{relay: r, log: log.Named("ws")}
}

func (h *ChatHandler) SetupRoutes(app *fiber.App, requireAuth fiber.Handler) {
	app.Use("/ws", requireAuth, func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		return ctx.Next()
	})
	app.Get("/ws", websocket.New(h.serve))
}

func (h *ChatHandler) serve(c *websocket.Conn) {
	userID, _ := c.Locals(helper.LocalUserID).(string)
	conn := &wsConn{id: uuid.NewString(), c: c}
	log := h.log.With(zap.String("conn", conn.id), zap.String("user", userID))

	session := h.relay.Open(conn, userID)
	defer session.Close()
	log.Debug("socket opened")

	for {
		mt, frame, err := c.ReadMessage()
		if err != nil {
			log.Debug("socket closed", zap.Error(err))
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		if err := session.Handle(frame); err != nil {
			log.Debug("frame ignored", zap.Error(err))
		}
	}
}
