// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cra_backend/internals/constants"
	archiveController "cra_backend/internals/features/archives/controller"
	archiveService "cra_backend/internals/features/archives/service"
	"cra_backend/internals/features/realtime/hub"
	realtimeRoute "cra_backend/internals/features/realtime/route"
	themeService "cra_backend/internals/features/settings/theme/service"
	"cra_backend/internals/helpers/zlog"
	authMiddleware "cra_backend/internals/middlewares/auth"
	routeDetails "cra_backend/internals/route/details"
)

var startTime time.Time

// Deps are the long-lived services built in main.
type Deps struct {
	DB      *gorm.DB
	Archive *archiveService.ArchiveService
	Backups archiveController.BackupLister // nil without object storage
	Hub     *hub.Hub
	Theme   *themeService.ThemeStore
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()
	db := d.DB

	BaseRoutes(app)

	// ===================== AUTH =====================
	zlog.Info("setting up auth routes")
	routeDetails.AuthRoutes(app, db)

	// ===================== GROUPS =====================
	authn := authMiddleware.NewAuthenticator(db)

	// signed-in users; each feature gates its own roles
	user := app.Group("/api/u", authn.Required())

	// ADMIN of a unit (SUPER_ADMIN passes every gate)
	admin := app.Group("/api/a", authn.Required())

	// SUPER_ADMIN only
	owner := app.Group("/api/o",
		authn.Required(),
		authMiddleware.RequireRoles(authMiddleware.DenyMissingProfile, constants.RoleErrorSuperAdmin("esta área"), constants.SuperAdminOnly...),
	)

	// ===================== MOUNT ROUTES =====================
	zlog.Info("mounting appointment routes")
	routeDetails.AppointmentUserRoutes(user, db)
	routeDetails.ArchiveAdminRoutes(admin, d.Archive, d.Backups)

	zlog.Info("mounting organization routes")
	routeDetails.OrganizationUserRoutes(user, db)
	routeDetails.OrganizationAdminRoutes(admin, db)
	routeDetails.OrganizationOwnerRoutes(owner, db)

	zlog.Info("mounting user management routes")
	routeDetails.UserAdminRoutes(admin, db)

	zlog.Info("mounting home routes")
	routeDetails.HomePublicRoutes(app, d.Theme)
	routeDetails.HomeUserRoutes(user, db, d.Hub)
	routeDetails.HomeAdminRoutes(admin, db, d.Hub, d.Theme)

	zlog.Info("mounting realtime routes")
	realtimeRoute.RealtimeRoutes(app, db, d.Hub)
}
