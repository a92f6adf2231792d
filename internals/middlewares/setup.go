package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"cra_backend/internals/middlewares/logger"
)

// SetupMiddlewares registers the global chain, outermost first.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestIDMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
