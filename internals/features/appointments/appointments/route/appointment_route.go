package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cra_backend/internals/constants"
	"cra_backend/internals/features/appointments/appointments/controller"
	"cra_backend/internals/middlewares"
	authMiddleware "cra_backend/internals/middlewares/auth"
)

// AppointmentUserRoutes mounts under /api/u. A caller whose profile has not
// loaded yet is let through with a warning; scoping then yields no rows.
func AppointmentUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewAppointmentController(db)

	g := user.Group("/appointments",
		authMiddleware.RequireRoles(authMiddleware.AllowWithWarning, constants.RoleErrorStaff("os agendamentos"), constants.DeskRoles...),
	)

	g.Get("/", ctl.List)
	g.Get("/history", ctl.History)
	g.Get("/export", ctl.Export)
	g.Post("/import",
		authMiddleware.RequireRoles(authMiddleware.DenyMissingProfile, constants.RoleErrorStaff("a importação"), constants.IntakeRoles...),
		middlewares.ImportRateLimiter(),
		ctl.Import,
	)
	g.Post("/", ctl.Create)

	g.Get("/:id", ctl.Get)
	g.Patch("/:id", ctl.Update)
	g.Patch("/:id/attendance", ctl.MarkAttendance)
	g.Patch("/:id/staff", ctl.AssignStaff)
	g.Patch("/:id/request-category", ctl.SetRequestCategory)
	g.Delete("/:id",
		authMiddleware.RequireRoles(authMiddleware.DenyMissingProfile, constants.RoleErrorAdmin("a exclusão de agendamentos"), constants.AdminOnly...),
		ctl.Delete,
	)
}
