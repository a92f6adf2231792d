package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cra_backend/internals/features/realtime/controller"
	"cra_backend/internals/features/realtime/hub"
	authMiddleware "cra_backend/internals/middlewares/auth"
)

// RealtimeRoutes mounts GET /api/realtime/ws. Browsers cannot set headers on
// a websocket handshake, so the token may come as ?access_token= or cookie.
func RealtimeRoutes(app *fiber.App, db *gorm.DB, h *hub.Hub) {
	ctl := controller.NewRealtimeController(h)

	rt := app.Group("/api/realtime", authMiddleware.AuthMiddleware(db))
	rt.Get("/ws", ctl.Upgrade, ctl.Serve())
}
