package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	versionKey = "salon:analytics:version"
	defaultTTL = 60 * time.Second
)

// AnalyticsCache is a read-through Redis cache for dashboard and
// analytics payloads. A version counter is bumped on every appointment
// write, which invalidates all cached reports at once. Redis being
// down or unconfigured degrades to the database silently.
type AnalyticsCache struct {
	rdb    *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// New returns a disabled cache when addr is empty.
func New(addr string, logger *slog.Logger) *AnalyticsCache {
	if addr == "" {
		return &AnalyticsCache{logger: logger, ttl: defaultTTL}
	}
	return &AnalyticsCache{
		rdb:    redis.NewClient(&redis.Options{Addr: addr}),
		logger: logger,
		ttl:    defaultTTL,
	}
}

func (c *AnalyticsCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *AnalyticsCache) versionedKey(ctx context.Context, key string) (string, bool) {
	v, err := c.rdb.Get(ctx, versionKey).Result()
	if err != nil && err != redis.Nil {
		return "", false
	}
	if err == redis.Nil {
		v = "0"
	}
	return "salon:analytics:v" + v + ":" + key, true
}

// Get returns the cached payload for key, or "" on miss.
func (c *AnalyticsCache) Get(ctx context.Context, key string) string {
	if !c.Enabled() {
		return ""
	}
	vk, ok := c.versionedKey(ctx, key)
	if !ok {
		return ""
	}
	val, err := c.rdb.Get(ctx, vk).Result()
	if err != nil {
		return ""
	}
	return val
}

func (c *AnalyticsCache) Set(ctx context.Context, key string, payload string) {
	if !c.Enabled() {
		return
	}
	vk, ok := c.versionedKey(ctx, key)
	if !ok {
		return
	}
	if err := c.rdb.Set(ctx, vk, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("analytics cache set failed", "err", err)
	}
}

// Invalidate bumps the version counter; old entries age out via TTL.
func (c *AnalyticsCache) Invalidate(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	if err := c.rdb.Incr(ctx, versionKey).Err(); err != nil {
		c.logger.Warn("analytics cache invalidation failed", "err", err)
	}
}

func (c *AnalyticsCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}
