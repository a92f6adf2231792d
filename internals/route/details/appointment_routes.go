package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	appointmentRoute "cra_backend/internals/features/appointments/appointments/route"
	archiveController "cra_backend/internals/features/archives/controller"
	archiveRoute "cra_backend/internals/features/archives/route"
	archiveService "cra_backend/internals/features/archives/service"
	dashboardRoute "cra_backend/internals/features/dashboard/route"
)

// /api/u/appointments, /api/u/dashboard
func AppointmentUserRoutes(user fiber.Router, db *gorm.DB) {
	appointmentRoute.AppointmentUserRoutes(user, db)
	dashboardRoute.DashboardUserRoutes(user, db)
}

// /api/a/archives. backups is nil when object storage is not configured.
func ArchiveAdminRoutes(admin fiber.Router, svc *archiveService.ArchiveService, backups archiveController.BackupLister) {
	archiveRoute.ArchiveAdminRoutes(admin, archiveController.NewArchiveController(svc, backups))
}
