// internals/features/appointments/appointments/controller/appointment_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cra_backend/internals/features/appointments/appointments/dto"
	"cra_backend/internals/features/appointments/appointments/model"
	serviceTypeRepo "cra_backend/internals/features/organization/service_types/repository"
	helper "cra_backend/internals/helpers"
	helperAuth "cra_backend/internals/helpers/auth"
	"cra_backend/internals/helpers/dbtime"
	"cra_backend/internals/helpers/zlog"
)

var validate = validator.New()

const unitColumn = "appointment_unit_id"

type AppointmentController struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewAppointmentController(db *gorm.DB) *AppointmentController {
	return &AppointmentController{DB: db, Now: time.Now}
}

func queryUnit(c *fiber.Ctx) *uuid.UUID {
	if id, err := uuid.Parse(strings.TrimSpace(c.Query("unit_id"))); err == nil {
		return &id
	}
	return nil
}

// applySearch filters by name, registration or process number.
func applySearch(q *gorm.DB, s string) *gorm.DB {
	s = strings.TrimSpace(s)
	if s == "" {
		return q
	}
	like := "%" + s + "%"
	return q.Where(
		"(appointment_student_name ILIKE ? OR appointment_student_registration ILIKE ? OR appointment_process_number ILIKE ?)",
		like, like, like,
	)
}

// findScoped loads an active appointment inside the caller's unit scope.
func (ctl *AppointmentController) findScoped(c *fiber.Ctx) (*model.AppointmentModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID inválido")
	}
	scope := helperAuth.ResolveScope(helperAuth.GetSession(c), nil)

	var m model.AppointmentModel
	q := scope.Apply(ctl.DB.WithContext(c.UserContext()).Where("appointment_id = ?", id), unitColumn)
	if err := q.First(&m).Error; err != nil {
		status, msg := helper.MapDBError(err, "Agendamento não encontrado")
		return nil, fiber.NewError(status, msg)
	}
	return &m, nil
}

/* =========================================================
   GET /api/u/appointments?date=&status=&q=&unit_id=
   date=all lists every active row.
========================================================= */

func (ctl *AppointmentController) List(c *fiber.Ctx) error {
	scope := helperAuth.ResolveScope(helperAuth.GetSession(c), queryUnit(c))
	p := helper.ResolvePaging(c, 50, 1000)

	q := scope.Apply(ctl.DB.WithContext(c.UserContext()).Model(&model.AppointmentModel{}), unitColumn)

	if raw := strings.TrimSpace(c.Query("date")); raw != "all" {
		date, err := dto.ParseDateOrToday(raw, ctl.Now())
		if err != nil {
			return helper.JsonValidationError(c, map[string][]string{"date": {err.Error()}})
		}
		q = q.Where("appointment_date = ?", dbtime.FormatISO(date))
	}
	if st := strings.ToUpper(strings.TrimSpace(c.Query("status"))); st != "" {
		if !model.AppointmentStatus(st).Valid() {
			return helper.JsonValidationError(c, map[string][]string{"status": {"oneof"}})
		}
		q = q.Where("appointment_status = ?", st)
	}
	q = applySearch(q, c.Query("q"))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar agendamentos")
	}
	var rows []model.AppointmentModel
	if err := q.
		Order("appointment_date ASC").
		Order("appointment_time ASC NULLS LAST").
		Order("appointment_student_name ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar agendamentos")
	}
	return helper.JsonList(c, "ok", dto.ToAppointmentResponseList(rows), helper.BuildPagination(total, p))
}

/* =========================================================
   GET /api/u/appointments/:id
========================================================= */

func (ctl *AppointmentController) Get(c *fiber.Ctx) error {
	m, err := ctl.findScoped(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToAppointmentResponse(m))
}

/* =========================================================
   POST /api/u/appointments (walk-in)
========================================================= */

func (ctl *AppointmentController) Create(c *fiber.Ctx) error {
	var req dto.CreateAppointmentRequest
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

	date, err := dto.ParseDateOrToday(req.Date, ctl.Now())
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"date": {err.Error()}})
	}
	clock, err := dto.ParseOptionalClock(req.Time)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"time": {err.Error()}})
	}

	m := req.ToModel(date, clock, unitID)
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		if m.AppointmentServiceType != nil {
			return serviceTypeRepo.EnsureNames(c.UserContext(), tx, []string{*m.AppointmentServiceType})
		}
		return nil
	})
	if err != nil {
		status, msg := helper.MapDBError(err, "")
		return helper.JsonError(c, status, msg)
	}
	return helper.JsonCreated(c, "Agendamento criado", dto.ToAppointmentResponse(m))
}

/* =========================================================
   PATCH /api/u/appointments/:id
========================================================= */

func (ctl *AppointmentController) Update(c *fiber.Ctx) error {
	m, err := ctl.findScoped(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonFromValidator(c, err)
	}

	upd, err := req.Apply(m)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"_": {err.Error()}})
	}
	if len(upd) == 0 {
		return helper.JsonUpdated(c, "Nada para atualizar", dto.ToAppointmentResponse(m))
	}

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(m).Updates(upd).Error; err != nil {
			return err
		}
		if req.ServiceType != nil {
			return serviceTypeRepo.EnsureNames(c.UserContext(), tx, []string{*req.ServiceType})
		}
		return nil
	})
	if err != nil {
		status, msg := helper.MapDBError(err, "")
		return helper.JsonError(c, status, msg)
	}
	return helper.JsonUpdated(c, "Agendamento atualizado", dto.ToAppointmentResponse(m))
}

/* =========================================================
   DELETE /api/u/appointments/:id
========================================================= */

func (ctl *AppointmentController) Delete(c *fiber.Ctx) error {
	m, err := ctl.findScoped(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.DB.WithContext(c.UserContext()).Delete(m).Error; err != nil {
		status, msg := helper.MapDBError(err, "")
		return helper.JsonError(c, status, msg)
	}
	zlog.Info("appointment deleted",
		zap.String("appointment_id", m.AppointmentID.String()),
		zap.Any("by", c.Locals(helperAuth.LocUserID)),
	)
	return helper.JsonDeleted(c, "Agendamento removido", fiber.Map{"id": m.AppointmentID})
}
