// file: internals/features/users/auth/route/auth_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "cra_backend/internals/features/users/auth/controller"
	rateLimiter "cra_backend/internals/middlewares"
	authMiddleware "cra_backend/internals/middlewares/auth"
)

// AuthRoutes: /api/auth
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)
	authn := authMiddleware.NewAuthenticator(db)

	baseAuth := app.Group("/api/auth")

	// 🔓 public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
	baseAuth.Get("/route-access", authn.Optional(), authController.RouteAccess)

	// 🔒 session required
	baseAuth.Post("/logout", authn.Optional(), authController.Logout)
	baseAuth.Get("/me", authn.Required(), authController.Me)
	baseAuth.Post("/change-password", authn.Required(), authController.ChangePassword)
}
