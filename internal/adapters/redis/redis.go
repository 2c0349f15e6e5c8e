// Package redis implements the cache and session ports on Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	goredis "github.com/redis/go-redis/v9"

	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/platform/config"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

// Connect creates a client and waits for the server to answer a ping,
// retrying with exponential backoff for at most maxElapsed.
func Connect(ctx context.Context, cfg config.RedisConfig, maxElapsed time.Duration, logger *slog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = maxElapsed

	ping := func() error {
		return client.Ping(ctx).Err()
	}

	notify := func(err error, wait time.Duration) {
		logger.WarnContext(ctx, "redis ping failed, retrying",
			slog.Any("error", err),
			slog.Duration("next_attempt_in", wait))
	}

	if err := backoff.RetryNotify(ping, backoff.WithContext(policy, ctx), notify); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Addr, err)
	}

	logger.InfoContext(ctx, "connected to redis", slog.String("addr", cfg.Addr))

	return client, nil
}

// Cache implements ports.Cache.
type Cache struct {
	client goredis.UniversalClient
	prefix string
}

var _ ports.Cache = (*Cache)(nil)

// NewCache creates a cache whose keys are stored under prefix.
func NewCache(client goredis.UniversalClient, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

// Get implements ports.Cache.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.NewNotFoundError("cache entry", key)
	}

	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}

	return value, nil
}

// Set implements ports.Cache.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}

	return nil
}

// Delete implements ports.Cache.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.prefix + k
	}

	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}

	return nil
}

// HealthCheck reports whether Redis answers pings.
type HealthCheck struct {
	client goredis.UniversalClient
}

// NewHealthCheck creates a readiness check for client.
func NewHealthCheck(client goredis.UniversalClient) *HealthCheck {
	return &HealthCheck{client: client}
}

// Name implements ports.HealthChecker.
func (h *HealthCheck) Name() string { return "redis" }

// Check implements ports.HealthChecker.
func (h *HealthCheck) Check(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}
