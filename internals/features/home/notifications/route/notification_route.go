package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cra_backend/internals/constants"
	"cra_backend/internals/features/home/notifications/controller"
	authMiddleware "cra_backend/internals/middlewares/auth"
)

// NotificationUserRoutes: any signed-in user reads and acknowledges.
func NotificationUserRoutes(user fiber.Router, db *gorm.DB, h controller.Broadcaster) {
	ctl := controller.NewNotificationController(db, h)

	n := user.Group("/notifications")
	n.Get("/", ctl.ListMine)
	n.Post("/:id/ack", ctl.Ack)
}

func NotificationAdminRoutes(admin fiber.Router, db *gorm.DB, h controller.Broadcaster) {
	ctl := controller.NewNotificationController(db, h)

	n := admin.Group("/notifications",
		authMiddleware.RequireRoles(authMiddleware.DenyMissingProfile, constants.RoleErrorAdmin("notificações"), constants.AdminOnly...),
	)
	n.Post("/", ctl.Create)
	n.Delete("/:id", ctl.Delete)
}
