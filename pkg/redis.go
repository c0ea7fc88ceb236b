package pkg

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/cache"
	"github.com/SAP-F-2025/exam-service/internal/config"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}

// NewCache returns a redis-backed cache, or a no-op cache when redis is not
// configured or not reachable. The returned close func is always safe to call.
func NewCache(cfg *config.Config, logger *slog.Logger) (cache.CacheService, func()) {
	if cfg.RedisURL == "" {
		logger.Info("Redis not configured, caching disabled")
		return cache.NewNoopCache(), func() {}
	}

	client, err := NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, caching disabled", "error", err)
		return cache.NewNoopCache(), func() {}
	}

	return cache.NewRedisCache(client, logger), func() { client.Close() }
}
