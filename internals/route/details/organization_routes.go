package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	serviceTypeRoute "cra_backend/internals/features/organization/service_types/route"
	staffRoute "cra_backend/internals/features/organization/staff/route"
	unitRoute "cra_backend/internals/features/organization/units/route"
)

func OrganizationUserRoutes(user fiber.Router, db *gorm.DB) {
	unitRoute.UnitUserRoutes(user, db)
	staffRoute.StaffUserRoutes(user, db)
	serviceTypeRoute.ServiceTypeUserRoutes(user, db)
}

func OrganizationAdminRoutes(admin fiber.Router, db *gorm.DB) {
	staffRoute.StaffAdminRoutes(admin, db)
	serviceTypeRoute.ServiceTypeAdminRoutes(admin, db)
}

func OrganizationOwnerRoutes(owner fiber.Router, db *gorm.DB) {
	unitRoute.UnitOwnerRoutes(owner, db)
}
