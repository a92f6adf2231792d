// internals/features/archives/controller/archive_controller.go
package controller

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"cra_backend/internals/features/archives/dto"
	"cra_backend/internals/features/archives/service"
	helper "cra_backend/internals/helpers"
	helperAuth "cra_backend/internals/helpers/auth"
	"cra_backend/internals/helpers/dbtime"
	helperOSS "cra_backend/internals/helpers/oss"
	"cra_backend/internals/helpers/zlog"
)

var validate = validator.New()

// Archival runs to completion even when the client goes away.
const archiveTimeout = 15 * time.Minute

type BackupLister interface {
	ListBackups(ctx context.Context) ([]helperOSS.BackupObject, error)
	SignedURL(key string, expiresSec int64) (string, error)
}

type ArchiveController struct {
	Svc     *service.ArchiveService
	Backups BackupLister // nil when storage is not configured
}

func NewArchiveController(svc *service.ArchiveService, backups BackupLister) *ArchiveController {
	return &ArchiveController{Svc: svc, Backups: backups}
}

func detachedCtx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(c.UserContext()), archiveTimeout)
}

/* =========================================================
   POST /api/a/archives/rotate-date
========================================================= */

func (ctl *ArchiveController) RotateDate(c *fiber.Ctx) error {
	var req dto.RotateDateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonFromValidator(c, err)
	}
	date, err := dbtime.ParseDate(req.Date)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"date": {err.Error()}})
	}

	scope := helperAuth.ResolveScope(helperAuth.GetSession(c), req.UnitID)
	if scope.None() {
		return helper.JsonError(c, fiber.StatusForbidden, "Usuário sem unidade vinculada")
	}

	ctx, cancel := detachedCtx(c)
	defer cancel()
	res, err := ctl.Svc.RotateByDate(ctx, date, scope.UnitID)
	if err != nil {
		return writeArchiveError(c, err)
	}
	return helper.JsonOK(c, res.Message, res)
}

/* =========================================================
   POST /api/a/archives/rotate-all
========================================================= */

func (ctl *ArchiveController) RotateAll(c *fiber.Ctx) error {
	var req dto.RotateAllRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonFromValidator(c, err)
	}

	scope := helperAuth.ResolveScope(helperAuth.GetSession(c), nil)
	if scope.None() {
		return helper.JsonError(c, fiber.StatusForbidden, "Usuário sem unidade vinculada")
	}

	ctx, cancel := detachedCtx(c)
	defer cancel()
	res, err := ctl.Svc.RotateByIDs(ctx, req.IDs, scope.UnitID)
	if err != nil {
		return writeArchiveError(c, err)
	}
	return helper.JsonOK(c, res.Message, res)
}

/* =========================================================
   POST /api/a/archives/rotate-cold
========================================================= */

func (ctl *ArchiveController) RotateCold(c *fiber.Ctx) error {
	ctx, cancel := detachedCtx(c)
	defer cancel()
	res, err := ctl.Svc.RotateHistoryToCold(ctx)
	if err != nil {
		return writeArchiveError(c, err)
	}
	return helper.JsonOK(c, res.Message, res)
}

/* =========================================================
   POST /api/a/archives/export-history
========================================================= */

func (ctl *ArchiveController) ExportHistory(c *fiber.Ctx) error {
	if !ctl.Svc.StorageConfigured() {
		return writeArchiveError(c, service.ErrStorageNotConfigured)
	}
	ctx, cancel := detachedCtx(c)
	defer cancel()
	res, err := ctl.Svc.ExportHistoryAndPurge(ctx)
	if err != nil {
		return writeArchiveError(c, err)
	}
	return helper.JsonOK(c, res.Message, res)
}

/* =========================================================
   GET /api/a/archives/backups
========================================================= */

func (ctl *ArchiveController) ListBackups(c *fiber.Ctx) error {
	if ctl.Backups == nil {
		return writeArchiveError(c, service.ErrStorageNotConfigured)
	}
	objs, err := ctl.Backups.ListBackups(c.UserContext())
	if err != nil {
		zlog.Error("list backups failed", zap.Error(err))
		return helper.JsonError(c, fiber.StatusBadGateway, "Falha ao listar backups")
	}
	out := make([]dto.BackupResponse, 0, len(objs))
	for _, o := range objs {
		item := dto.BackupResponse{Key: o.Key, Size: o.Size, LastModified: o.LastModified}
		if u, err := ctl.Backups.SignedURL(o.Key, 900); err == nil {
			item.DownloadURL = u
		}
		out = append(out, item)
	}
	return helper.JsonOK(c, "ok", out)
}

/* =========================================================
   error mapping
========================================================= */

func writeArchiveError(c *fiber.Ctx, err error) error {
	var partial *service.PartialFailureError
	var opErr *service.OperationError

	switch {
	case errors.Is(err, service.ErrOperationInProgress):
		return helper.JsonErrorWithCode(c, fiber.StatusConflict, "ARCHIVE_IN_PROGRESS", "", err.Error(), nil)
	case errors.Is(err, service.ErrNoIDs):
		return helper.JsonValidationError(c, map[string][]string{"ids": {err.Error()}})
	case errors.Is(err, service.ErrStorageNotConfigured):
		return helper.JsonErrorWithCode(c, fiber.StatusServiceUnavailable, "STORAGE_NOT_CONFIGURED", "", err.Error(), nil)
	case errors.As(err, &partial):
		return helper.JsonErrorWithCode(c, fiber.StatusInternalServerError, "ARCHIVE_PARTIAL_FAILURE", "critical",
			partial.Message(), dto.PartialFailureResponse{
				Operation:    string(partial.Op),
				Copied:       partial.Copied,
				Location:     partial.Location,
				RecoveryHint: partial.RecoveryHint(),
			})
	case errors.As(err, &opErr):
		return helper.JsonErrorWithCode(c, fiber.StatusInternalServerError, "ARCHIVE_FAILED", "",
			"Falha no arquivamento. Nada foi removido; a operação pode ser repetida.",
			fiber.Map{"operation": opErr.Op, "stage": opErr.Stage, "detail": opErr.Err.Error()})
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}
