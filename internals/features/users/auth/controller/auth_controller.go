package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cra_backend/internals/features/users/auth/service"
	helper "cra_backend/internals/helpers"
	helperAuth "cra_backend/internals/helpers/auth"
	authMiddleware "cra_backend/internals/middlewares/auth"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ac *AuthController) Login(c *fiber.Ctx) error       { return service.Login(ac.DB, c) }
func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error { return service.LoginGoogle(ac.DB, c) }
func (ac *AuthController) Logout(c *fiber.Ctx) error      { return service.Logout(ac.DB, c) }

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	return service.ChangePassword(ac.DB, c)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	sess, err := helperAuth.RequireSession(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", service.BuildSessionResponse(sess))
}

// GET /api/auth/route-access?path=/admin
// Works without a token: the answer is then a redirect to the login page.
func (ac *AuthController) RouteAccess(c *fiber.Ctx) error {
	path := c.Query("path", "/")
	return helper.JsonOK(c, "ok", authMiddleware.CheckRouteAccess(helperAuth.GetSession(c), path))
}
