package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/utils"
)

const LocRequestID = "request_id"

// RequestIDMiddleware keeps an incoming X-Request-ID or generates one.
func RequestIDMiddleware() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  utils.UUID,
		ContextKey: LocRequestID,
	})
}
