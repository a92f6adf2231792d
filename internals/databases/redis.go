package database

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"cra_backend/internals/configs"
	"cra_backend/internals/helpers/zlog"
)

var Redis *goredis.Client

// ConnectRedis is optional: without REDIS_ADDR the process runs with
// in-process locks only. Returns nil when Redis is not available.
func ConnectRedis() *goredis.Client {
	addr := configs.GetEnv("REDIS_ADDR")
	if addr == "" {
		zlog.Info("REDIS_ADDR not set, skipping redis")
		return nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     configs.GetEnv("REDIS_PASSWORD"),
		DB:           configs.GetEnvInt("REDIS_DB", 0),
		PoolSize:     configs.GetEnvInt("REDIS_POOL_SIZE", 10),
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		zlog.Error("redis connection failed", zap.String("addr", addr), zap.Error(err))
		_ = client.Close()
		return nil
	}

	Redis = client
	zlog.Info("✅ redis connected", zap.String("addr", addr))
	return client
}

func CloseRedis() {
	if Redis != nil {
		_ = Redis.Close()
	}
}
