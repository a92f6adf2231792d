package route

import (
	"github.com/gofiber/fiber/v2"

	"cra_backend/internals/constants"
	"cra_backend/internals/features/settings/theme/controller"
	"cra_backend/internals/features/settings/theme/service"
	authMiddleware "cra_backend/internals/middlewares/auth"
)

// ThemePublicRoutes: the login page renders with the theme too.
func ThemePublicRoutes(app *fiber.App, store *service.ThemeStore) {
	ctl := controller.NewThemeController(store)
	app.Get("/api/theme", ctl.Get)
}

func ThemeAdminRoutes(admin fiber.Router, store *service.ThemeStore) {
	ctl := controller.NewThemeController(store)
	admin.Put("/theme",
		authMiddleware.RequireRoles(authMiddleware.DenyMissingProfile, constants.RoleErrorAdmin("o tema"), constants.AdminOnly...),
		ctl.Update,
	)
}
