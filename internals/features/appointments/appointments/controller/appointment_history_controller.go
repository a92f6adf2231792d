// internals/features/appointments/appointments/controller/appointment_history_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"cra_backend/internals/features/appointments/appointments/dto"
	"cra_backend/internals/features/appointments/appointments/model"
	"cra_backend/internals/features/appointments/appointments/repository"
	"cra_backend/internals/features/appointments/appointments/service"
	helper "cra_backend/internals/helpers"
	helperAuth "cra_backend/internals/helpers/auth"
	"cra_backend/internals/helpers/dbtime"
)

const maxExportDays = 366

// dateRange reads ?from=&to= (inclusive). Missing bounds default to the last
// defaultDays days.
func dateRange(c *fiber.Ctx, now time.Time, defaultDays int) (time.Time, time.Time, error) {
	to := dbtime.Today(now)
	from := to.AddDate(0, 0, -defaultDays)
	if s := strings.TrimSpace(c.Query("from")); s != "" {
		d, err := dbtime.ParseDate(s)
		if err != nil {
			return from, to, err
		}
		from = d
	}
	if s := strings.TrimSpace(c.Query("to")); s != "" {
		d, err := dbtime.ParseDate(s)
		if err != nil {
			return from, to, err
		}
		to = d
	}
	if to.Before(from) {
		return from, to, fiber.NewError(fiber.StatusUnprocessableEntity, "período inválido: início após o fim")
	}
	return from, to, nil
}

/* =========================================================
   GET /api/u/appointments/history?from=&to=&q=&tier=history|cold_archive
========================================================= */

func (ctl *AppointmentController) History(c *fiber.Ctx) error {
	from, to, err := dateRange(c, ctl.Now(), 30)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"from": {err.Error()}})
	}
	tier := model.TierHistory
	if model.Tier(c.Query("tier")) == model.TierCold {
		tier = model.TierCold
	}

	scope := helperAuth.ResolveScope(helperAuth.GetSession(c), queryUnit(c))
	p := helper.ResolvePaging(c, 50, 500)

	q := repository.TierQuery(c.UserContext(), ctl.DB, tier, scope, from, to)
	q = applySearch(q, c.Query("q"))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar histórico")
	}
	var rows []model.AppointmentModel
	if err := q.
		Order("appointment_date DESC").
		Order("appointment_time ASC NULLS LAST").
		Order("appointment_student_name ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar histórico")
	}
	return helper.JsonList(c, "ok", dto.ToAppointmentResponseList(rows), helper.BuildPagination(total, p))
}

/* =========================================================
   GET /api/u/appointments/export?from=&to=
   history + cold archive; the active tier is not settled yet.
========================================================= */

func (ctl *AppointmentController) Export(c *fiber.Ctx) error {
	if c.Query("from") == "" || c.Query("to") == "" {
		return helper.JsonValidationError(c, map[string][]string{"from": {"required"}, "to": {"required"}})
	}
	from, to, err := dateRange(c, ctl.Now(), 0)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"from": {err.Error()}})
	}
	if to.Sub(from) > maxExportDays*24*time.Hour {
		return helper.JsonValidationError(c, map[string][]string{"to": {"período máximo de 366 dias"}})
	}

	scope := helperAuth.ResolveScope(helperAuth.GetSession(c), queryUnit(c))
	rows, err := repository.FindRange(c.UserContext(), ctl.DB, []model.Tier{model.TierHistory, model.TierCold}, scope, from, to)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar dados para exportação")
	}

	buf, err := service.BuildWorkbook(rows)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao gerar planilha")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment(service.ExportFileName(from, to))
	return c.Send(buf.Bytes())
}
