package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cra_backend/internals/configs"
	helperAuth "cra_backend/internals/helpers/auth"
	"cra_backend/internals/helpers/zlog"
	"cra_backend/internals/scheduler"
)

// RegisterBlacklistCleanup purges revoked tokens whose expiry has passed.
func RegisterBlacklistCleanup(c *cron.Cron, db *gorm.DB) {
	scheduler.Add(c, "token_blacklist_cleanup", configs.GetEnvSchedule("TOKEN_BLACKLIST_CLEANUP_CRON", "15 4 * * *"), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		n, err := helperAuth.PurgeExpired(ctx, db)
		if err != nil {
			zlog.Error("[CLEANUP] token_blacklist", zap.Error(err))
			return
		}
		zlog.Info("[CLEANUP] token_blacklist", zap.Int64("deleted", n))
	})
}
