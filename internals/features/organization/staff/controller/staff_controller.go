// internals/features/organization/staff/controller/staff_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cra_backend/internals/features/organization/staff/dto"
	"cra_backend/internals/features/organization/staff/model"
	helper "cra_backend/internals/helpers"
	helperAuth "cra_backend/internals/helpers/auth"
)

var validate = validator.New()

type StaffController struct {
	DB *gorm.DB
}

func NewStaffController(db *gorm.DB) *StaffController {
	return &StaffController{DB: db}
}

func queryUnit(c *fiber.Ctx) *uuid.UUID {
	if id, err := uuid.Parse(strings.TrimSpace(c.Query("unit_id"))); err == nil {
		return &id
	}
	return nil
}

func (ctl *StaffController) findScoped(c *fiber.Ctx) (*model.StaffModel, helperAuth.Scope, error) {
	scope := helperAuth.ResolveScope(helperAuth.GetSession(c), nil)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, scope, fiber.NewError(fiber.StatusBadRequest, "ID inválido")
	}
	var m model.StaffModel
	q := scope.Apply(ctl.DB.WithContext(c.UserContext()).Where("staff_id = ?", id), "staff_unit_id")
	if err := q.First(&m).Error; err != nil {
		status, msg := helper.MapDBError(err, "Atendente não encontrado")
		return nil, scope, fiber.NewError(status, msg)
	}
	return &m, scope, nil
}

/* =========================================================
   GET /api/u/staff
========================================================= */

func (ctl *StaffController) List(c *fiber.Ctx) error {
	scope := helperAuth.ResolveScope(helperAuth.GetSession(c), queryUnit(c))
	p := helper.ResolvePaging(c, 50, 500)

	q := scope.Apply(ctl.DB.WithContext(c.UserContext()).Model(&model.StaffModel{}), "staff_unit_id")
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("staff_name ILIKE ?", "%"+s+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar atendentes")
	}
	var rows []model.StaffModel
	if err := q.Order("staff_name ASC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar atendentes")
	}
	return helper.JsonList(c, "ok", dto.ToStaffResponseList(rows), helper.BuildPagination(total, p))
}

/* =========================================================
   POST /api/a/staff
========================================================= */

func (ctl *StaffController) Create(c *fiber.Ctx) error {
	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonFromValidator(c, err)
	}

	unitID, err := helperAuth.ResolveWriteUnit(helperAuth.GetSession(c), req.UnitID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	m := req.ToModel(unitID)
	if err := ctl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		status, msg := helper.MapDBError(err, "")
		return helper.JsonError(c, status, msg)
	}
	return helper.JsonCreated(c, "Atendente cadastrado", dto.ToStaffResponse(m))
}

/* =========================================================
   PATCH /api/a/staff/:id
========================================================= */

func (ctl *StaffController) Update(c *fiber.Ctx) error {
	m, _, err := ctl.findScoped(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonFromValidator(c, err)
	}

	upd := req.ApplyTo(m)
	if len(upd) == 0 {
		return helper.JsonUpdated(c, "Nada para atualizar", dto.ToStaffResponse(m))
	}
	if err := ctl.DB.WithContext(c.UserContext()).Model(m).Updates(upd).Error; err != nil {
		status, msg := helper.MapDBError(err, "")
		return helper.JsonError(c, status, msg)
	}
	return helper.JsonUpdated(c, "Atendente atualizado", dto.ToStaffResponse(m))
}

/* =========================================================
   DELETE /api/a/staff/:id
   Appointments keep the name they were assigned with.
========================================================= */

func (ctl *StaffController) Delete(c *fiber.Ctx) error {
	m, _, err := ctl.findScoped(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.DB.WithContext(c.UserContext()).Delete(m).Error; err != nil {
		status, msg := helper.MapDBError(err, "")
		return helper.JsonError(c, status, msg)
	}
	return helper.JsonDeleted(c, "Atendente removido", fiber.Map{"id": m.StaffID})
}
