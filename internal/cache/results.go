// Package cache keeps the latest scan report in Redis so the HTTP layer can
// serve it without re-running a scan or touching Postgres.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Buu205/Vietnam-stock-sub000/internal/application/pipeline"
	"github.com/Buu205/Vietnam-stock-sub000/internal/config"
)

const latestKey = "vnscan:report:latest"

// ErrMiss is returned by Latest when no report has been cached yet or the
// previous one expired.
var ErrMiss = errors.New("cache: no cached report")

// ResultCache stores the most recent scan report with a TTL.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and pings it once so a misconfigured address fails at
// startup rather than on the first scan.
func New(ctx context.Context, cfg config.RedisConfig) (*ResultCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return NewWithClient(client, time.Duration(cfg.TTLSec)*time.Second), nil
}

// NewWithClient wraps an existing client, mainly for tests.
func NewWithClient(client *redis.Client, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ResultCache{client: client, ttl: ttl}
}

// Close releases the Redis connection.
func (c *ResultCache) Close() error { return c.client.Close() }

// Store replaces the cached report. The TTL bounds staleness: if no scan runs
// for a full cycle the cache empties instead of serving yesterday's ranks.
func (c *ResultCache) Store(ctx context.Context, report *pipeline.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report %s: %w", report.RunID, err)
	}
	if err := c.client.Set(ctx, latestKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache report %s: %w", report.RunID, err)
	}
	return nil
}

// Latest returns the cached report, or ErrMiss when nothing is cached.
func (c *ResultCache) Latest(ctx context.Context) (*pipeline.Report, error) {
	payload, err := c.client.Get(ctx, latestKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("fetch cached report: %w", err)
	}
	var report pipeline.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("decode cached report: %w", err)
	}
	return &report, nil
}
