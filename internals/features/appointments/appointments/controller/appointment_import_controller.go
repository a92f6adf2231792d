// internals/features/appointments/appointments/controller/appointment_import_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cra_backend/internals/constants"
	"cra_backend/internals/features/appointments/appointments/dto"
	"cra_backend/internals/features/appointments/appointments/service"
	serviceTypeRepo "cra_backend/internals/features/organization/service_types/repository"
	helper "cra_backend/internals/helpers"
	helperAuth "cra_backend/internals/helpers/auth"
	"cra_backend/internals/helpers/dbtime"
	"cra_backend/internals/helpers/zlog"
)

const maxImportBytes = 10 << 20

/* =========================================================
   POST /api/u/appointments/import (multipart "file")
========================================================= */

func (ctl *AppointmentController) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"file": {"required"}})
	}
	if !constants.IsSpreadsheetFile(fh.Filename) {
		return helper.JsonValidationError(c, map[string][]string{"file": {"envie uma planilha .xlsx ou .xls"}})
	}
	if fh.Size > maxImportBytes {
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "Arquivo maior que 10MB")
	}

	var requested *uuid.UUID
	if id, err := uuid.Parse(c.FormValue("unit_id")); err == nil {
		requested = &id
	}
	unitID, err := helperAuth.ResolveWriteUnit(helperAuth.GetSession(c), requested)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Não foi possível abrir o arquivo")
	}
	defer f.Close()

	rows, err := service.ReadFirstSheet(f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	today := dbtime.Today(ctl.Now())
	res, err := service.ParseRows(rows, service.ImportOptions{Date: today, UnitID: unitID})
	if err != nil {
		var he *service.HeaderError
		switch {
		case errors.As(err, &he):
			return helper.JsonErrorWithCode(c, fiber.StatusUnprocessableEntity, "MISSING_HEADERS", "",
				he.Error(), fiber.Map{"missing_headers": he.Missing})
		case errors.Is(err, service.ErrNoValidRows), errors.Is(err, service.ErrEmptySheet):
			return helper.JsonErrorWithCode(c, fiber.StatusUnprocessableEntity, "NO_VALID_ROWS", "", err.Error(), nil)
		default:
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	ctx := c.UserContext()
	err = ctl.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(&res.Rows, 200).Error; err != nil {
			return err
		}
		return serviceTypeRepo.EnsureNames(ctx, tx, service.DistinctServiceTypes(res.Rows))
	})
	if err != nil {
		status, msg := helper.MapDBError(err, "")
		return helper.JsonError(c, status, msg)
	}

	zlog.Info("appointments imported",
		zap.String("file", fh.Filename),
		zap.Int("inserted", len(res.Rows)),
		zap.Int("skipped", res.Skipped),
		zap.Any("by", c.Locals(helperAuth.LocUserID)),
	)
	return helper.JsonCreated(c, "Importação concluída", dto.ImportResponse{
		Inserted: len(res.Rows),
		Skipped:  res.Skipped,
		Date:     dbtime.FormatISO(today),
		Warnings: res.Warnings,
	})
}
