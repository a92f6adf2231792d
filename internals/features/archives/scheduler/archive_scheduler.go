package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"cra_backend/internals/configs"
	"cra_backend/internals/features/archives/service"
	helperOSS "cra_backend/internals/helpers/oss"
	"cra_backend/internals/helpers/zlog"
	"cra_backend/internals/scheduler"
)

const jobTimeout = 30 * time.Minute

// RegisterArchiveJobs wires the periodic rotations. Failures are logged by the
// service itself.
func RegisterArchiveJobs(c *cron.Cron, svc *service.ArchiveService, oss *helperOSS.OSSService) {
	scheduler.Add(c, "archive_rotate_past_days", configs.GetEnvSchedule("ARCHIVE_DAILY_CRON", "5 0 * * *"), func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		results, err := svc.RotatePastDays(ctx)
		if err != nil {
			return
		}
		moved := 0
		for _, r := range results {
			moved += r.Moved
		}
		zlog.Info("[ARCHIVE] daily rotation", zap.Int("days", len(results)), zap.Int("moved", moved))
	})

	scheduler.Add(c, "archive_rotate_cold", configs.GetEnvSchedule("ARCHIVE_COLD_CRON", "30 1 1 * *"), func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if res, err := svc.RotateHistoryToCold(ctx); err == nil {
			zlog.Info("[ARCHIVE] cold rotation", zap.Int("moved", res.Moved))
		}
	})

	retentionDays := configs.GetEnvInt("ARCHIVE_BACKUP_RETENTION_DAYS", 0)
	if oss == nil || retentionDays <= 0 {
		return
	}
	retention := time.Duration(retentionDays) * 24 * time.Hour
	scheduler.Add(c, "archive_backup_reaper", configs.GetEnvSchedule("ARCHIVE_BACKUP_REAPER_CRON", "0 3 * * 0"), func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		n, err := oss.ReapBackups(ctx, retention, false)
		if err != nil {
			zlog.Error("[ARCHIVE] backup reaper failed", zap.Error(err))
			return
		}
		zlog.Info("[ARCHIVE] backup reaper", zap.Int("deleted", n))
	})
}
