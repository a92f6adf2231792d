// internals/features/dashboard/controller/dashboard_controller.go
package controller

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cra_backend/internals/features/dashboard/service"
	helper "cra_backend/internals/helpers"
	helperAuth "cra_backend/internals/helpers/auth"
	"cra_backend/internals/helpers/dbtime"
)

type DashboardController struct {
	Svc *service.DashboardService
	Now func() time.Time
}

func NewDashboardController(svc *service.DashboardService) *DashboardController {
	return &DashboardController{Svc: svc, Now: time.Now}
}

// parseQuery reads mode=daily&date= or mode=monthly&year=&month=.
func (ctl *DashboardController) parseQuery(c *fiber.Ctx) (service.Query, map[string][]string) {
	q := service.Query{Mode: service.Mode(strings.ToLower(c.Query("mode", string(service.ModeDaily))))}
	if !q.Mode.Valid() {
		return q, map[string][]string{"mode": {"oneof daily monthly"}}
	}

	today := dbtime.Today(ctl.Now())
	switch q.Mode {
	case service.ModeMonthly:
		year, errY := strconv.Atoi(c.Query("year", strconv.Itoa(today.Year())))
		month, errM := strconv.Atoi(c.Query("month", strconv.Itoa(int(today.Month()))))
		if errY != nil || year < 2000 || year > 2100 {
			return q, map[string][]string{"year": {"inválido"}}
		}
		if errM != nil || month < 1 || month > 12 {
			return q, map[string][]string{"month": {"inválido"}}
		}
		q.Target = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, dbtime.Location())
	default:
		q.Target = today
		if s := strings.TrimSpace(c.Query("date")); s != "" {
			d, err := dbtime.ParseDate(s)
			if err != nil {
				return q, map[string][]string{"date": {err.Error()}}
			}
			q.Target = d
		}
	}

	var requested *uuid.UUID
	if id, err := uuid.Parse(c.Query("unit_id")); err == nil {
		requested = &id
	}
	q.Scope = helperAuth.ResolveScope(helperAuth.GetSession(c), requested)
	return q, nil
}

// GET /api/u/dashboard/summary
func (ctl *DashboardController) Summary(c *fiber.Ctx) error {
	q, verr := ctl.parseQuery(c)
	if verr != nil {
		return helper.JsonValidationError(c, verr)
	}
	out, err := ctl.Svc.Summary(c.UserContext(), q)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /api/u/dashboard/rankings?by=service_type|staff|request_category|origin&limit=
func (ctl *DashboardController) Rankings(c *fiber.Ctx) error {
	q, verr := ctl.parseQuery(c)
	if verr != nil {
		return helper.JsonValidationError(c, verr)
	}
	by := service.Dimension(c.Query("by", string(service.ByServiceType)))
	if by.Column() == "" {
		return helper.JsonValidationError(c, map[string][]string{"by": {"oneof service_type staff request_category origin"}})
	}
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	out, err := ctl.Svc.Rankings(c.UserContext(), q, by, limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", out)
}
