// internals/features/appointments/appointments/controller/appointment_cell_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"cra_backend/internals/features/appointments/appointments/dto"
	"cra_backend/internals/features/appointments/appointments/model"
	staffModel "cra_backend/internals/features/organization/staff/model"
	helper "cra_backend/internals/helpers"
	helperAuth "cra_backend/internals/helpers/auth"
)

/*
Single-cell editors. The client applies the value optimistically; every
answer, including failures, carries the previous value so it can revert.
*/

func cellFailed(c *fiber.Ctx, err error, previous any) error {
	status, msg := helper.MapDBError(err, "Agendamento não encontrado")
	return helper.JsonErrorWithCode(c, status, "UPDATE_FAILED", "", msg, fiber.Map{"previous": previous})
}

/* =========================================================
   PATCH /api/u/appointments/:id/attendance {attended}
========================================================= */

func (ctl *AppointmentController) MarkAttendance(c *fiber.Ctx) error {
	m, err := ctl.findScoped(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}

	prev := m.AppointmentAttended
	status := model.AttendanceStatus(req.Attended)
	if err := ctl.DB.WithContext(c.UserContext()).Model(m).Updates(map[string]any{
		"appointment_attended": req.Attended,
		"appointment_status":   status,
	}).Error; err != nil {
		return cellFailed(c, err, prev)
	}
	m.AppointmentAttended = req.Attended
	m.AppointmentStatus = status

	return helper.JsonUpdated(c, "Comparecimento registrado", dto.CellChangeResponse{
		ID:       m.AppointmentID,
		Field:    "attended",
		Previous: prev,
		Current:  req.Attended,
	})
}

/* =========================================================
   PATCH /api/u/appointments/:id/staff {staff_id | staff_name, service_window}
========================================================= */

type staffCell struct {
	StaffName     *string `json:"staff_name"`
	ServiceWindow *string `json:"service_window"`
}

func (ctl *AppointmentController) AssignStaff(c *fiber.Ctx) error {
	m, err := ctl.findScoped(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.AssignStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonFromValidator(c, err)
	}

	prev := staffCell{StaffName: m.AppointmentStaffName, ServiceWindow: m.AppointmentServiceWindow}
	next := staffCell{
		StaffName:     helper.CleanOptionalUpper(req.StaffName),
		ServiceWindow: helper.CleanOptional(req.ServiceWindow),
	}

	if req.StaffID != nil {
		scope := helperAuth.ResolveScope(helperAuth.GetSession(c), nil)
		var st staffModel.StaffModel
		q := scope.Apply(ctl.DB.WithContext(c.UserContext()).Where("staff_id = ?", *req.StaffID), "staff_unit_id")
		if err := q.First(&st).Error; err != nil {
			status, msg := helper.MapDBError(err, "Atendente não encontrado")
			return helper.JsonErrorWithCode(c, status, "", "", msg, fiber.Map{"previous": prev})
		}
		// snapshot of the current name; later renames do not propagate
		name := st.StaffName
		next.StaffName = &name
		if next.ServiceWindow == nil {
			next.ServiceWindow = st.StaffServiceWindow
		}
	}

	if err := ctl.DB.WithContext(c.UserContext()).Model(m).Updates(map[string]any{
		"appointment_staff_name":     next.StaffName,
		"appointment_service_window": next.ServiceWindow,
	}).Error; err != nil {
		return cellFailed(c, err, prev)
	}

	return helper.JsonUpdated(c, "Atendente atribuído", dto.CellChangeResponse{
		ID:       m.AppointmentID,
		Field:    "staff",
		Previous: prev,
		Current:  next,
	})
}

/* =========================================================
   PATCH /api/u/appointments/:id/request-category {request_category}
========================================================= */

func (ctl *AppointmentController) SetRequestCategory(c *fiber.Ctx) error {
	m, err := ctl.findScoped(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.RequestCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonFromValidator(c, err)
	}

	prev := m.AppointmentRequestCategory
	next := helper.CleanOptional(req.RequestCategory)
	if err := ctl.DB.WithContext(c.UserContext()).Model(m).
		Update("appointment_request_category", next).Error; err != nil {
		return cellFailed(c, err, prev)
	}

	return helper.JsonUpdated(c, "Categoria atualizada", dto.CellChangeResponse{
		ID:       m.AppointmentID,
		Field:    "request_category",
		Previous: prev,
		Current:  next,
	})
}
