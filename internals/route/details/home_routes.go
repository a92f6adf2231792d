package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notificationRoute "cra_backend/internals/features/home/notifications/route"
	"cra_backend/internals/features/realtime/hub"
	themeRoute "cra_backend/internals/features/settings/theme/route"
	themeService "cra_backend/internals/features/settings/theme/service"
)

// no token: GET /api/theme
func HomePublicRoutes(app *fiber.App, theme *themeService.ThemeStore) {
	themeRoute.ThemePublicRoutes(app, theme)
}

// /api/u/notifications
func HomeUserRoutes(user fiber.Router, db *gorm.DB, h *hub.Hub) {
	notificationRoute.NotificationUserRoutes(user, db, h)
}

// /api/a/notifications, /api/a/theme
func HomeAdminRoutes(admin fiber.Router, db *gorm.DB, h *hub.Hub, theme *themeService.ThemeStore) {
	notificationRoute.NotificationAdminRoutes(admin, db, h)
	themeRoute.ThemeAdminRoutes(admin, theme)
}
