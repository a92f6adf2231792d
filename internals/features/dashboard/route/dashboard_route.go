package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cra_backend/internals/constants"
	"cra_backend/internals/features/dashboard/controller"
	"cra_backend/internals/features/dashboard/repository"
	"cra_backend/internals/features/dashboard/service"
	authMiddleware "cra_backend/internals/middlewares/auth"
)

func DashboardUserRoutes(user fiber.Router, db *gorm.DB) {
	svc := service.NewDashboardService(repository.NewDashboardRepository(db), nil)
	ctl := controller.NewDashboardController(svc)

	g := user.Group("/dashboard",
		authMiddleware.RequireRoles(authMiddleware.AllowWithWarning, constants.RoleErrorStaff("o painel"), constants.DeskRoles...),
	)
	g.Get("/summary", ctl.Summary)
	g.Get("/rankings", ctl.Rankings)
}
