package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "cra_backend/internals/features/users/auth/route"
	userRoute "cra_backend/internals/features/users/user/route"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authRoute.AuthRoutes(app, db)
}

// /api/a/users
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	userRoute.UserAdminRoutes(admin, db)
}
