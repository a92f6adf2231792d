package controller

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"cra_backend/internals/features/realtime/hub"
	helper "cra_backend/internals/helpers"
	helperAuth "cra_backend/internals/helpers/auth"
	"cra_backend/internals/helpers/zlog"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

type RealtimeController struct {
	Hub *hub.Hub
}

func NewRealtimeController(h *hub.Hub) *RealtimeController {
	return &RealtimeController{Hub: h}
}

// Upgrade runs after auth: it only lets websocket handshakes through.
func (ctl *RealtimeController) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return helper.JsonError(c, fiber.StatusUpgradeRequired, "Conexão websocket esperada")
	}
	return c.Next()
}

// Serve is the websocket handler for GET /api/realtime/ws. The socket is
// send-only; anything the client writes is ignored.
func (ctl *RealtimeController) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		sess, _ := conn.Locals(helperAuth.LocSession).(*helperAuth.Session)
		if sess == nil {
			_ = conn.Close()
			return
		}

		client := hub.NewClient(sess.UserID, sess.UnitID, sess.IsSuperAdmin())
		ctl.Hub.Register(client)
		zlog.Debug("realtime: client connected",
			zap.String("user_id", sess.UserID.String()),
			zap.Int("clients", ctl.Hub.Count()),
		)

		done := make(chan struct{})
		go writePump(conn, client, done)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					zlog.Debug("realtime: read error", zap.Error(err))
				}
				break
			}
		}

		ctl.Hub.Unregister(client)
		<-done
		zlog.Debug("realtime: client disconnected", zap.String("user_id", sess.UserID.String()))
	})
}

func writePump(conn *websocket.Conn, client *hub.Client, done chan<- struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
		close(done)
	}()

	for {
		select {
		case msg, ok := <-client.Send():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
