package config

import (
	"context"
	"fmt"

	"eduplatform/services/logger"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns a nil client when no address is configured; the
// services then skip caching.
func ConnectRedis(ctx context.Context, cfg RedisConfig, log logger.Logger) (*redis.Client, error) {
	if cfg.Addr == "" {
		log.Warn("REDIS_ADDR not set, caching disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	res, err := rdb.Ping(ctx).Result()
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info("Connected to redis: %s", res)
	return rdb, nil
}
