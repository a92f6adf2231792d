package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cra_backend/internals/constants"
	"cra_backend/internals/features/organization/staff/controller"
	authMiddleware "cra_backend/internals/middlewares/auth"
)

func StaffUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewStaffController(db)
	user.Get("/staff", ctl.List)
}

func StaffAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewStaffController(db)
	g := admin.Group("/staff",
		authMiddleware.RequireRoles(authMiddleware.DenyMissingProfile, constants.RoleErrorAdmin("atendentes"), constants.AdminOnly...),
	)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
