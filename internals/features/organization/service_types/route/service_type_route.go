package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cra_backend/internals/constants"
	"cra_backend/internals/features/organization/service_types/controller"
	authMiddleware "cra_backend/internals/middlewares/auth"
)

func ServiceTypeUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewServiceTypeController(db)
	g := user.Group("/service-types")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
}

func ServiceTypeAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewServiceTypeController(db)
	g := admin.Group("/service-types",
		authMiddleware.RequireRoles(authMiddleware.DenyMissingProfile, constants.RoleErrorAdmin("tipos de serviço"), constants.AdminOnly...),
	)
	g.Delete("/:id", ctl.Delete)
}
