package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cra_backend/internals/features/organization/units/dto"
	"cra_backend/internals/features/organization/units/model"
	helper "cra_backend/internals/helpers"
)

var validate = validator.New()

type UnitController struct {
	DB *gorm.DB
}

func NewUnitController(db *gorm.DB) *UnitController {
	return &UnitController{DB: db}
}

// GET /api/u/units
func (ctl *UnitController) List(c *fiber.Ctx) error {
	var rows []model.UnitModel
	if err := ctl.DB.WithContext(c.UserContext()).Order("unit_name ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar unidades")
	}
	return helper.JsonOK(c, "ok", dto.ToUnitResponseList(rows))
}

// GET /api/u/units/:id
func (ctl *UnitController) Get(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToUnitResponse(m))
}

// POST /api/o/units
func (ctl *UnitController) Create(c *fiber.Ctx) error {
	var req dto.UnitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonFromValidator(c, err)
	}
	m := &model.UnitModel{UnitName: req.Name}
	if err := ctl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		status, msg := helper.MapDBError(err, "")
		return helper.JsonError(c, status, msg)
	}
	return helper.JsonCreated(c, "Unidade criada", dto.ToUnitResponse(m))
}

// PUT /api/o/units/:id
func (ctl *UnitController) Update(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UnitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonFromValidator(c, err)
	}
	m.UnitName = req.Name
	if err := ctl.DB.WithContext(c.UserContext()).Model(m).Update("unit_name", req.Name).Error; err != nil {
		status, msg := helper.MapDBError(err, "")
		return helper.JsonError(c, status, msg)
	}
	return helper.JsonUpdated(c, "Unidade atualizada", dto.ToUnitResponse(m))
}

// DELETE /api/o/units/:id
func (ctl *UnitController) Delete(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// refuse while anything still points at the unit
	var inUse int64
	if err := ctl.DB.WithContext(c.UserContext()).Raw(`
		SELECT (SELECT COUNT(*) FROM staff WHERE staff_unit_id = @id)
		     + (SELECT COUNT(*) FROM user_profiles WHERE user_profile_unit_id = @id)
		     + (SELECT COUNT(*) FROM appointments WHERE appointment_unit_id = @id)`,
		map[string]any{"id": m.UnitID}).Scan(&inUse).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if inUse > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Unidade em uso por atendentes, usuários ou agendamentos")
	}

	if err := ctl.DB.WithContext(c.UserContext()).Delete(m).Error; err != nil {
		status, msg := helper.MapDBError(err, "")
		return helper.JsonError(c, status, msg)
	}
	return helper.JsonDeleted(c, "Unidade removida", fiber.Map{"id": m.UnitID})
}

func (ctl *UnitController) find(c *fiber.Ctx) (*model.UnitModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID inválido")
	}
	var m model.UnitModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "unit_id = ?", id).Error; err != nil {
		status, msg := helper.MapDBError(err, "Unidade não encontrada")
		return nil, fiber.NewError(status, msg)
	}
	return &m, nil
}
