package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cra_backend/internals/constants"
	"cra_backend/internals/features/organization/units/controller"
	authMiddleware "cra_backend/internals/middlewares/auth"
)

func UnitUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewUnitController(db)
	g := user.Group("/units")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
}

// UnitOwnerRoutes mounts under /api/o (SUPER_ADMIN).
func UnitOwnerRoutes(owner fiber.Router, db *gorm.DB) {
	ctl := controller.NewUnitController(db)
	g := owner.Group("/units",
		authMiddleware.RequireRoles(authMiddleware.DenyMissingProfile, constants.RoleErrorSuperAdmin("unidades"), constants.SuperAdminOnly...),
	)
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
