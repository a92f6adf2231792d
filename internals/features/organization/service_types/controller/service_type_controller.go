package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cra_backend/internals/features/organization/service_types/dto"
	"cra_backend/internals/features/organization/service_types/model"
	"cra_backend/internals/features/organization/service_types/repository"
	helper "cra_backend/internals/helpers"
)

var validate = validator.New()

type ServiceTypeController struct {
	DB *gorm.DB
}

func NewServiceTypeController(db *gorm.DB) *ServiceTypeController {
	return &ServiceTypeController{DB: db}
}

// GET /api/u/service-types?q=
func (ctl *ServiceTypeController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.ServiceTypeModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("service_type_name ILIKE ?", "%"+s+"%")
	}
	var rows []model.ServiceTypeModel
	if err := q.Order("service_type_name ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar tipos de serviço")
	}
	return helper.JsonOK(c, "ok", dto.ToServiceTypeResponseList(rows))
}

// POST /api/u/service-types (idempotent by name)
func (ctl *ServiceTypeController) Create(c *fiber.Ctx) error {
	var req dto.CreateServiceTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	req.Name = helper.NormalizeUpper(req.Name)
	if err := validate.Struct(req); err != nil {
		return helper.JsonFromValidator(c, err)
	}

	ctx := c.UserContext()
	if err := repository.EnsureNames(ctx, ctl.DB, []string{req.Name}); err != nil {
		status, msg := helper.MapDBError(err, "")
		return helper.JsonError(c, status, msg)
	}
	var m model.ServiceTypeModel
	if err := ctl.DB.WithContext(ctx).Where("service_type_name = ?", req.Name).First(&m).Error; err != nil {
		status, msg := helper.MapDBError(err, "Tipo de serviço não encontrado")
		return helper.JsonError(c, status, msg)
	}
	return helper.JsonCreated(c, "Tipo de serviço registrado", dto.ToServiceTypeResponse(&m))
}

// DELETE /api/a/service-types/:id
func (ctl *ServiceTypeController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	res := ctl.DB.WithContext(c.UserContext()).Delete(&model.ServiceTypeModel{}, "service_type_id = ?", id)
	if res.Error != nil {
		status, msg := helper.MapDBError(res.Error, "")
		return helper.JsonError(c, status, msg)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Tipo de serviço não encontrado")
	}
	return helper.JsonDeleted(c, "Tipo de serviço removido", fiber.Map{"id": id})
}
