package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"quiz_engine/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// ConnectRedis connects to the configured Redis. It leaves RDB nil when
// REDIS_ADDR is empty, which disables caching.
func ConnectRedis() error {
	if config.AppConfig.RedisAddr == "" {
		slog.Info("REDIS_ADDR not set, quiz cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return fmt.Errorf("could not connect to Redis at %s: %w", config.AppConfig.RedisAddr, err)
	}

	RDB = client
	slog.Info("Successfully connected to Redis!", "addr", config.AppConfig.RedisAddr)
	return nil
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		slog.Info("Redis connection closed.")
	}
}
