package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"cra_backend/internals/helpers/dbtime"
	"cra_backend/internals/helpers/zlog"
)

// cronLogger adapts zlog to cron.Logger.
type cronLogger struct{ s *zap.SugaredLogger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw("[CRON] "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw("[CRON] "+msg, append(keysAndValues, "error", err)...)
}

// New returns a cron runner on the business timezone. Jobs never overlap with
// themselves and a panic in one job does not bring the process down.
func New() *cron.Cron {
	lg := cronLogger{s: zlog.L().Sugar()}
	return cron.New(
		cron.WithLocation(dbtime.Location()),
		cron.WithLogger(lg),
		cron.WithChain(cron.Recover(lg), cron.SkipIfStillRunning(lg)),
	)
}

// Add registers a job unless spec is empty. An invalid spec is logged and skipped.
func Add(c *cron.Cron, name, spec string, job func()) {
	if spec == "" {
		zlog.Info("[CRON] job disabled", zap.String("job", name))
		return
	}
	if _, err := c.AddFunc(spec, job); err != nil {
		zlog.Error("[CRON] invalid schedule", zap.String("job", name), zap.String("spec", spec), zap.Error(err))
		return
	}
	zlog.Info("[CRON] job registered", zap.String("job", name), zap.String("spec", spec))
}
