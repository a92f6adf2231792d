package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"cra_backend/internals/features/settings/theme/service"
	helper "cra_backend/internals/helpers"
	"cra_backend/internals/helpers/zlog"
)

var validate = validator.New()

type ThemeController struct {
	Store *service.ThemeStore
}

func NewThemeController(store *service.ThemeStore) *ThemeController {
	return &ThemeController{Store: store}
}

type UpdateThemeRequest struct {
	Theme     string `json:"theme"     validate:"required,min=2,max=50"`
	Automatic *bool  `json:"automatic" validate:"required"`
}

// GET /api/theme
func (ctl *ThemeController) Get(c *fiber.Ctx) error {
	v, err := ctl.Store.Get(c.UserContext())
	if err != nil {
		zlog.Error("load theme failed", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar tema")
	}
	return helper.JsonOK(c, "ok", v)
}

// PUT /api/a/theme
func (ctl *ThemeController) Update(c *fiber.Ctx) error {
	var req UpdateThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	req.Theme = strings.ToLower(strings.TrimSpace(req.Theme))
	if err := validate.Struct(req); err != nil {
		return helper.JsonFromValidator(c, err)
	}

	v, err := ctl.Store.Set(c.UserContext(), req.Theme, *req.Automatic)
	if err != nil {
		status, msg := helper.MapDBError(err, "")
		return helper.JsonError(c, status, msg)
	}
	return helper.JsonUpdated(c, "Tema atualizado", v)
}
