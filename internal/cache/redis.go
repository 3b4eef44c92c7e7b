package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/subbuk987/Fundoo/internal/config"
	"github.com/subbuk987/Fundoo/internal/logger"
)

// Redis is the go-redis backed implementation of [KeyValue].
type Redis struct {
	client *redis.Client
	logger *logger.Logger
}

// NewConnectRedis opens a connection to the Redis backend described by cfg
// and verifies it with a ping.
func NewConnectRedis(ctx context.Context, cfg config.Redis, log *logger.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewConnectRedis").Msg("error connecting redis (ping)")
		return nil, fmt.Errorf("error occured during redis connection: %w", err)
	}
	log.Info().Str("func", "NewConnectRedis").Msg("connected to redis successfully")

	return &Redis{client: client, logger: log}, nil
}

// Get implements [KeyValue]. redis.Nil is normalised to ErrCacheMiss so
// callers never see driver-level sentinels.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("error reading key from redis: %w", err)
	}

	return value, nil
}

// Set implements [KeyValue].
func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("error writing key to redis: %w", err)
	}

	return nil
}

// Delete implements [KeyValue].
func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("error deleting keys from redis: %w", err)
	}

	return nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
