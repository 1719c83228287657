package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-analytics/internal/analytics"
	"github.com/spec-kit/ticket-analytics/internal/domain"
	"github.com/spec-kit/ticket-analytics/internal/events"
	"github.com/spec-kit/ticket-analytics/internal/observability"
)

// ResultCache memoizes aggregate results in Redis, keyed by snapshot version
// so entries can never outlive the data they summarize. A nil cache is a
// valid no-op: every lookup misses and every store is dropped.
type ResultCache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewResultCache wraps a Redis client. Pass a nil client to disable caching.
func NewResultCache(client *redis.Client, ttl time.Duration, metrics *observability.Metrics, logger *zap.Logger) *ResultCache {
	if client == nil {
		return nil
	}
	return &ResultCache{client: client, ttl: ttl, metrics: metrics, logger: logger}
}

// Get loads a cached result into dest. Returns false on miss or any cache
// failure; the caller always has the compute path to fall back to.
func (c *ResultCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		c.metrics.RecordCacheMiss()
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("cache entry undecodable", zap.String("key", key), zap.Error(err))
		c.metrics.RecordCacheMiss()
		return false
	}
	c.metrics.RecordCacheHit()
	return true
}

// Set stores a computed result, best effort.
func (c *ResultCache) Set(ctx context.Context, key string, val any) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		c.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// FlushVersion deletes every cached aggregate for the given snapshot
// version. Entries also carry a TTL, so a failed flush only delays cleanup.
func (c *ResultCache) FlushVersion(ctx context.Context, version string) {
	if c == nil || c.client == nil || version == "" {
		return
	}
	pattern := fmt.Sprintf("analytics:%s:*", version)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache scan failed", zap.String("pattern", pattern), zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache flush failed", zap.String("pattern", pattern), zap.Error(err))
		return
	}
	c.logger.Info("cache flushed", zap.String("version", version), zap.Int("keys", len(keys)))
}

// NewCacheInvalidator returns the event handler that flushes cached
// aggregates for the snapshot version a reload just replaced.
func NewCacheInvalidator(cache *ResultCache) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.DatasetReloadedPayload)
		if !ok || payload.PreviousVersion == "" {
			return nil
		}
		cache.FlushVersion(ctx, payload.PreviousVersion)
		return nil
	}
}

func cacheKey(version, op string, dim domain.Dimension, spec analytics.FilterSpec) string {
	sum := sha256.Sum256([]byte(spec.Canonical()))
	return fmt.Sprintf("analytics:%s:%s:%s:%s", version, op, dim, hex.EncodeToString(sum[:8]))
}
