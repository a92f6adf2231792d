package configs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"cra_backend/internals/helpers/zlog"
)

var (
	JWTSecret           string
	JWTTTL              time.Duration
	GoogleClientID      string
	GoogleAllowedDomain string
	AppTimezone         string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	envLoaded := godotenv.Load() == nil

	zlog.Init(GetEnv("LOG_LEVEL", "info"), GetEnv("LOG_PATH"))
	if envLoaded {
		zlog.Info("✅ .env file loaded")
	} else {
		zlog.Info("⚠️ no .env file found, using system environment")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTTTL = time.Duration(GetEnvInt("JWT_TTL_HOURS", 12)) * time.Hour
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")
	GoogleAllowedDomain = strings.ToLower(GetEnv("GOOGLE_ALLOWED_DOMAIN"))
	AppTimezone = GetEnv("APP_TIMEZONE", "America/Sao_Paulo")

	if JWTSecret == "" {
		zlog.Error("❌ JWT_SECRET is not set")
	}
	if GoogleClientID == "" {
		zlog.Info("GOOGLE_CLIENT_ID not set, Google sign-in disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || strings.TrimSpace(value) == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return strings.TrimSpace(value)
}

func GetEnvInt(key string, def int) int {
	v := GetEnv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// GetEnvDuration parses values like "90s" or "15m".
func GetEnvDuration(key string, def time.Duration) time.Duration {
	v := GetEnv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// GetEnvSchedule returns a cron spec. Set but empty, or "off", disables the job.
func GetEnvSchedule(key, def string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return def
	}
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "off") {
		return ""
	}
	return value
}

func GetEnvBool(key string, def bool) bool {
	v := GetEnv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// =======================
// DATABASE DSN
// =======================
func DatabaseDSN() string {
	if url := GetEnv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=cra_backend",
		GetEnv("DB_USER"),
		GetEnv("DB_PASSWORD"),
		GetEnv("DB_HOST", "localhost"),
		GetEnv("DB_PORT", "5432"),
		GetEnv("DB_NAME"),
		GetEnv("DB_SSLMODE", "require"),
	)
}

// DatabaseListenDSN is a session-level connection for LISTEN/NOTIFY, which
// does not survive a transaction pooler.
func DatabaseListenDSN() string {
	if url := GetEnv("DATABASE_LISTEN_URL"); url != "" {
		return url
	}
	return DatabaseDSN()
}

// =======================
// GORM LOGGER (zap)
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		zlog.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		zlog.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		zlog.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("file", utils.FileWithLineNum()),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}

	switch {
	case err != nil && !isRecordNotFound(err):
		zlog.Error("[SQL ERROR]", append(fields, zap.Error(err))...)
	case elapsed > l.SlowThreshold:
		zlog.Warn("[SLOW SQL]", fields...)
	case l.LogLevel >= gormLogger.Info:
		zlog.Debug("[QUERY]", fields...)
	}
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gormLogger.ErrRecordNotFound)
}
