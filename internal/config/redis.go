package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient creates the optional settings read-cache client. A nil
// return means caching is disabled; callers must fall back to the store.
func NewRedisClient(cfg *Config, logger *zap.Logger) *redis.Client {
	if !cfg.Cache.Enabled {
		logger.Info("settings cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Cache.Addr,
		Password:     cfg.Cache.Pass,
		DB:           cfg.Cache.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("cache unavailable, settings reads fall back to the store", zap.Error(err))
	} else {
		logger.Info("settings cache connected", zap.String("addr", cfg.Cache.Addr), zap.Int("db", cfg.Cache.DB))
	}

	return client
}
