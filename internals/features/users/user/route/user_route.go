package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cra_backend/internals/constants"
	"cra_backend/internals/features/users/user/controller"
	authMiddleware "cra_backend/internals/middlewares/auth"
)

// UserAdminRoutes mounts profile management under /api/a/users.
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewUserProfileController(db)

	users := admin.Group("/users",
		authMiddleware.RequireRoles(authMiddleware.DenyMissingProfile, constants.RoleErrorAdmin("usuários"), constants.AdminOnly...),
	)
	users.Get("/", ctl.List)
	users.Post("/", ctl.Create)
	users.Patch("/:id", ctl.Update)
}
