package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"

	"cra_backend/internals/configs"
	database "cra_backend/internals/databases"
	archiveController "cra_backend/internals/features/archives/controller"
	archiveRepository "cra_backend/internals/features/archives/repository"
	archiveScheduler "cra_backend/internals/features/archives/scheduler"
	archiveService "cra_backend/internals/features/archives/service"
	"cra_backend/internals/features/realtime/hub"
	"cra_backend/internals/features/realtime/listener"
	themeRepository "cra_backend/internals/features/settings/theme/repository"
	themeService "cra_backend/internals/features/settings/theme/service"
	authScheduler "cra_backend/internals/features/users/auth/scheduler"
	"cra_backend/internals/helpers/dbtime"
	helperOSS "cra_backend/internals/helpers/oss"
	"cra_backend/internals/helpers/zlog"
	middlewares "cra_backend/internals/middlewares"
	routes "cra_backend/internals/route"
	"cra_backend/internals/scheduler"
	"cra_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	defer zlog.Sync()

	if err := dbtime.SetLocation(configs.AppTimezone); err != nil {
		zlog.Warn("invalid APP_TIMEZONE, keeping default", zap.String("tz", configs.AppTimezone), zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		BodyLimit:               12 * 1024 * 1024, // spreadsheet uploads
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ performance
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// request deadline for ordinary handlers; archive handlers detach from it
	requestTimeout := configs.GetEnvDuration("REQUEST_TIMEOUT", 60*time.Second)
	app.Use(func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + migrations
	database.ConnectDB()
	database.TunePool()
	if err := database.Migrate(database.DB); err != nil {
		zlog.Fatal("❌ migration failed", zap.Error(err))
	}
	database.WarmUpQueries()

	if configs.GetEnvBool("RUN_SEEDS", false) {
		seeds.RunAllSeeds(database.DB)
	}

	// 🔒 single-flight lock for archive operations
	var locker archiveService.Locker = archiveService.NewLocalLocker()
	if rdb := database.ConnectRedis(); rdb != nil {
		locker = archiveService.NewRedisLocker(rdb, configs.GetEnvDuration("ARCHIVE_LOCK_TTL", 30*time.Minute))
	}

	// ☁️ object storage for history exports (optional)
	var (
		blobs   archiveService.BlobUploader
		backups archiveController.BackupLister
	)
	oss, err := helperOSS.NewOSSServiceFromEnv(configs.GetEnv("ARCHIVE_EXPORT_PREFIX", "history-backups/"))
	if err != nil {
		zlog.Warn("object storage not configured, history export disabled", zap.Error(err))
		oss = nil
	} else {
		blobs = oss
		backups = oss
	}

	archives := archiveService.NewArchiveService(
		archiveRepository.NewArchiveRepository(database.DB),
		blobs,
		locker,
		archiveService.Options{ColdAfterMonths: configs.GetEnvInt("ARCHIVE_COLD_MONTHS", 6)},
	)

	// 📡 realtime: DB change feed and theme changes fan out to websockets
	rootCtx, stopBackground := context.WithCancel(context.Background())
	h := hub.New()

	go func() {
		if err := listener.New(configs.DatabaseListenDSN(), h).Run(rootCtx); err != nil {
			zlog.Error("realtime listener stopped", zap.Error(err))
		}
	}()

	theme := themeService.NewThemeStore(themeRepository.NewThemeRepository(database.DB), nil)
	themeChanges, cancelTheme := theme.Subscribe()
	go func() {
		for v := range themeChanges {
			h.Broadcast(hub.Event{Type: hub.EventThemeChanged, Data: v})
		}
	}()

	// ⏱ scheduler after DB is ready
	cr := scheduler.New()
	archiveScheduler.RegisterArchiveJobs(cr, archives, oss)
	authScheduler.RegisterBlacklistCleanup(cr, database.DB)
	cr.Start()

	// ✅ Routes
	routes.SetupRoutes(app, routes.Deps{
		DB:      database.DB,
		Archive: archives,
		Backups: backups,
		Hub:     h,
		Theme:   theme,
	})

	// 🔒 server timeouts
	app.Server().ReadTimeout = 30 * time.Second
	app.Server().WriteTimeout = 5 * time.Minute // large exports
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	go func() {
		zlog.Info("✅ listening", zap.String("port", port))
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = app.ShutdownWithContext(ctx)
	select {
	case <-cr.Stop().Done():
	case <-ctx.Done():
		zlog.Warn("cron jobs still running at shutdown")
	}
	stopBackground()
	cancelTheme()
	h.Close()
	database.CloseRedis()
	database.Close()
}
