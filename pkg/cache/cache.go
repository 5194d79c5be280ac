// Package cache wraps the shared Redis connection used by the portal.
//
// Boot it once with Connect and release it with Close. Until Connect
// succeeds every helper returns ErrUnavailable.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farmxchain/farmx/config"
)

var RDB *redis.Client

// ErrUnavailable is returned by writes when Connect has not succeeded.
var ErrUnavailable = errors.New("cache: redis unavailable")

// Connect initialises the Redis client and verifies the connection with a ping.
// Returns an error so the caller can react (log warning, fall back, or abort).
func Connect(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		RDB = nil
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	RDB = client
	return nil
}

// Close releases the connection pool.
func Close() error {
	if RDB == nil {
		return nil
	}
	err := RDB.Close()
	RDB = nil
	return err
}

// GetString returns the raw value stored under key. A missing key is not an error.
func GetString(ctx context.Context, key string) (string, bool, error) {
	if RDB == nil {
		return "", false, ErrUnavailable
	}

	val, err := RDB.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache: get %s: %w", key, err)
	}
	return val, true, nil
}

// SetString stores a raw string under key. A zero ttl keeps it forever.
func SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	if RDB == nil {
		return ErrUnavailable
	}
	if err := RDB.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

// Del removes one or more keys from Redis.
func Del(ctx context.Context, keys ...string) error {
	if RDB == nil {
		return ErrUnavailable
	}
	return RDB.Del(ctx, keys...).Err()
}
