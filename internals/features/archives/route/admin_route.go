package route

import (
	"github.com/gofiber/fiber/v2"

	"cra_backend/internals/constants"
	"cra_backend/internals/features/archives/controller"
	authMiddleware "cra_backend/internals/middlewares/auth"
)

// ArchiveAdminRoutes mounts under /api/a. A missing profile is always denied here.
func ArchiveAdminRoutes(admin fiber.Router, ctl *controller.ArchiveController) {
	g := admin.Group("/archives",
		authMiddleware.RequireRoles(authMiddleware.DenyMissingProfile, constants.RoleErrorAdmin("o arquivamento"), constants.AdminOnly...),
	)
	g.Post("/rotate-date", ctl.RotateDate)
	g.Post("/rotate-all", ctl.RotateAll)

	// history-wide operations span every unit
	superOnly := authMiddleware.RequireRoles(authMiddleware.DenyMissingProfile, constants.RoleErrorSuperAdmin("o arquivamento global"), constants.SuperAdminOnly...)
	g.Post("/rotate-cold", superOnly, ctl.RotateCold)
	g.Post("/export-history", superOnly, ctl.ExportHistory)
	g.Get("/backups", superOnly, ctl.ListBackups)
}
