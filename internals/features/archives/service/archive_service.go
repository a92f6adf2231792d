// internals/features/archives/service/archive_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cra_backend/internals/features/appointments/appointments/model"
	"cra_backend/internals/helpers/dbtime"
	"cra_backend/internals/helpers/zlog"
)

/* =========================================================
   PORTS
========================================================= */

// Store is the data access the archival operations need. unit == nil means
// every unit.
type Store interface {
	FindActiveByDate(ctx context.Context, date time.Time, unit *uuid.UUID) ([]model.AppointmentModel, error)
	FindActiveByIDs(ctx context.Context, ids []uuid.UUID, unit *uuid.UUID) ([]model.AppointmentModel, error)
	FindActiveDatesBefore(ctx context.Context, day time.Time) ([]time.Time, error)
	InsertHistory(ctx context.Context, rows []model.AppointmentModel) error
	// DeleteActive removes ids; when date is set only rows still on that date.
	DeleteActive(ctx context.Context, ids []uuid.UUID, date *time.Time) (int64, error)

	FindHistoryIDsBefore(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
	// MoveHistoryToCold copies and deletes in one database-side transaction.
	MoveHistoryToCold(ctx context.Context, ids []uuid.UUID) (int64, error)
	FindAllHistory(ctx context.Context) ([]model.AppointmentModel, error)
	DeleteHistory(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// BlobUploader stores a file and must fail rather than overwrite. It returns
// the final object key.
type BlobUploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type Result struct {
	Operation Operation `json:"operation"`
	Moved     int       `json:"moved"`
	Message   string    `json:"message"`
	FileKey   string    `json:"file_key,omitempty"`
}

type Options struct {
	ColdAfterMonths int
	Now             func() time.Time
}

type ArchiveService struct {
	store     Store
	blobs     BlobUploader
	locker    Locker
	coldAfter int
	now       func() time.Time
}

// NewArchiveService wires the operations. blobs may be nil; export then
// fails with ErrStorageNotConfigured.
func NewArchiveService(store Store, blobs BlobUploader, locker Locker, opt Options) *ArchiveService {
	if locker == nil {
		locker = NewLocalLocker()
	}
	if opt.ColdAfterMonths <= 0 {
		opt.ColdAfterMonths = 6
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return &ArchiveService{
		store:     store,
		blobs:     blobs,
		locker:    locker,
		coldAfter: opt.ColdAfterMonths,
		now:       opt.Now,
	}
}

func (s *ArchiveService) StorageConfigured() bool { return s.blobs != nil }

func (s *ArchiveService) withLock(ctx context.Context, op Operation, fn func() (*Result, error)) (*Result, error) {
	unlock, ok, err := s.locker.TryLock(ctx, op.lockKey())
	if err != nil {
		return nil, &OperationError{Op: op, Stage: "lock", Err: err}
	}
	if !ok {
		zlog.Warn("archive operation rejected, another one is running", zap.String("op", string(op)))
		return nil, ErrOperationInProgress
	}
	defer unlock()

	start := time.Now()
	res, err := fn()
	logOutcome(op, res, err, time.Since(start))
	return res, err
}

func logOutcome(op Operation, res *Result, err error, elapsed time.Duration) {
	var partial *PartialFailureError
	switch {
	case errors.As(err, &partial):
		zlog.Error("CRITICAL archive partial failure: data duplicated, not lost",
			zap.String("op", string(op)),
			zap.Int("copied", partial.Copied),
			zap.String("location", partial.Location),
			zap.Error(partial.Err),
		)
	case err != nil:
		zlog.Error("archive operation failed", zap.String("op", string(op)), zap.Error(err))
	default:
		zlog.Info("archive operation done",
			zap.String("op", string(op)),
			zap.Int("moved", res.Moved),
			zap.Duration("elapsed", elapsed),
		)
	}
}

/* =========================================================
   A: active → history for one date
========================================================= */

func (s *ArchiveService) RotateByDate(ctx context.Context, date time.Time, unit *uuid.UUID) (*Result, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	label := day.Format("2006-01-02")

	return s.withLock(ctx, OpRotateDate, func() (*Result, error) {
		rows, err := s.store.FindActiveByDate(ctx, day, unit)
		if err != nil {
			return nil, &OperationError{Op: OpRotateDate, Stage: "select", Err: err}
		}
		if len(rows) == 0 {
			return &Result{Operation: OpRotateDate, Message: fmt.Sprintf("Nenhum agendamento encontrado para %s.", label)}, nil
		}
		moved, err := s.copyThenDeleteActive(ctx, OpRotateDate, rows, &day)
		if err != nil {
			return nil, err
		}
		return &Result{
			Operation: OpRotateDate,
			Moved:     moved,
			Message:   fmt.Sprintf("%d agendamento(s) de %s movido(s) para o histórico.", moved, label),
		}, nil
	})
}

/* =========================================================
   B: active → history for explicit ids
========================================================= */

func (s *ArchiveService) RotateByIDs(ctx context.Context, ids []uuid.UUID, unit *uuid.UUID) (*Result, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, ErrNoIDs
	}

	return s.withLock(ctx, OpRotateAll, func() (*Result, error) {
		rows, err := s.store.FindActiveByIDs(ctx, ids, unit)
		if err != nil {
			return nil, &OperationError{Op: OpRotateAll, Stage: "select", Err: err}
		}
		if len(rows) == 0 {
			return &Result{Operation: OpRotateAll, Message: "Nenhum dos agendamentos informados está ativo."}, nil
		}
		moved, err := s.copyThenDeleteActive(ctx, OpRotateAll, rows, nil)
		if err != nil {
			return nil, err
		}
		return &Result{
			Operation: OpRotateAll,
			Moved:     moved,
			Message:   fmt.Sprintf("%d agendamento(s) movido(s) para o histórico.", moved),
		}, nil
	})
}

// copyThenDeleteActive never deletes unless the history insert returned
// success. The insert skips ids already in history, so a retry after a
// partial failure completes the job.
func (s *ArchiveService) copyThenDeleteActive(ctx context.Context, op Operation, rows []model.AppointmentModel, date *time.Time) (int, error) {
	if err := s.store.InsertHistory(ctx, rows); err != nil {
		return 0, &OperationError{Op: op, Stage: "insert", Err: err}
	}
	ids := idsOf(rows)
	deleted, err := s.store.DeleteActive(ctx, ids, date)
	if err != nil {
		return 0, &PartialFailureError{Op: op, Copied: len(rows), Location: model.TableHistory, Err: err}
	}
	if int(deleted) == len(rows) {
		return int(deleted), nil
	}

	// Short delete: a row removed meanwhile is fine, one edited off the date is
	// now in both tiers.
	left, err := s.store.FindActiveByIDs(ctx, ids, nil)
	if err != nil {
		return 0, &PartialFailureError{Op: op, Copied: len(rows) - int(deleted), Location: model.TableHistory,
			Err: fmt.Errorf("%w: %v", ErrRowsChanged, err)}
	}
	if len(left) > 0 {
		return 0, &PartialFailureError{Op: op, Copied: len(left), Location: model.TableHistory, Err: ErrRowsChanged}
	}
	return int(deleted), nil
}

// RotatePastDays runs A for every active date before today. Used by the
// scheduler so a missed run is caught up on the next one.
func (s *ArchiveService) RotatePastDays(ctx context.Context) ([]*Result, error) {
	local := dbtime.DateOf(s.now())
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	days, err := s.store.FindActiveDatesBefore(ctx, today)
	if err != nil {
		return nil, &OperationError{Op: OpRotateDate, Stage: "select", Err: err}
	}
	out := make([]*Result, 0, len(days))
	for _, d := range days {
		res, err := s.RotateByDate(ctx, d, nil)
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
	return out, nil
}

/* =========================================================
   C: history → cold archive by age
========================================================= */

func (s *ArchiveService) ColdCutoff() time.Time {
	return s.now().AddDate(0, -s.coldAfter, 0)
}

func (s *ArchiveService) RotateHistoryToCold(ctx context.Context) (*Result, error) {
	return s.withLock(ctx, OpRotateCold, func() (*Result, error) {
		cutoff := s.ColdCutoff()
		ids, err := s.store.FindHistoryIDsBefore(ctx, cutoff)
		if err != nil {
			return nil, &OperationError{Op: OpRotateCold, Stage: "select", Err: err}
		}
		if len(ids) == 0 {
			return &Result{
				Operation: OpRotateCold,
				Message:   fmt.Sprintf("Nenhum registro do histórico anterior a %s.", cutoff.Format("2006-01-02")),
			}, nil
		}
		moved, err := s.store.MoveHistoryToCold(ctx, ids)
		if err != nil {
			// atomic procedure: nothing moved
			return nil, &OperationError{Op: OpRotateCold, Stage: "procedure", Err: err}
		}
		return &Result{
			Operation: OpRotateCold,
			Moved:     int(moved),
			Message:   fmt.Sprintf("%d registro(s) movido(s) para o arquivo frio.", moved),
		}, nil
	})
}

/* =========================================================
   D: history → CSV backup, then purge
========================================================= */

func (s *ArchiveService) ExportHistoryAndPurge(ctx context.Context) (*Result, error) {
	if s.blobs == nil {
		return nil, ErrStorageNotConfigured
	}

	return s.withLock(ctx, OpExportHistory, func() (*Result, error) {
		rows, err := s.store.FindAllHistory(ctx)
		if err != nil {
			return nil, &OperationError{Op: OpExportHistory, Stage: "select", Err: err}
		}
		if len(rows) == 0 {
			return &Result{Operation: OpExportHistory, Message: "Histórico vazio, nada para exportar."}, nil
		}

		data := EncodeCSV(rows)
		key := ExportFileName(s.now())
		location, err := s.blobs.Upload(ctx, key, data, "text/csv; charset=utf-8")
		if err != nil {
			return nil, &OperationError{Op: OpExportHistory, Stage: "upload", Err: err}
		}

		deleted, err := s.store.DeleteHistory(ctx, idsOf(rows))
		if err != nil {
			return nil, &PartialFailureError{Op: OpExportHistory, Copied: len(rows), Location: location, Err: err}
		}
		return &Result{
			Operation: OpExportHistory,
			Moved:     int(deleted),
			Message:   fmt.Sprintf("%d registro(s) exportado(s) para %s e removido(s) do histórico.", deleted, location),
			FileKey:   location,
		}, nil
	})
}

// ExportFileName is unique per millisecond; the uploader refuses collisions.
func ExportFileName(t time.Time) string {
	return "appointment_history_" + t.UTC().Format("20060102T150405.000Z") + ".csv"
}

/* =========================================================
   helpers
========================================================= */

func idsOf(rows []model.AppointmentModel) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].AppointmentID)
	}
	return out
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
