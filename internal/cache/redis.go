package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/skillbridge/mobile-gateway/internal/observability"
)

// RedisCache stores JSON documents in Redis. A nil client turns every call into a miss.
type RedisCache struct {
	name   string
	rdb    *redis.Client
	logger zerolog.Logger
}

// NewRedisCache wraps a Redis client. name labels the cache in metrics and logs.
func NewRedisCache(name string, rdb *redis.Client, logger zerolog.Logger) *RedisCache {
	return &RedisCache{
		name:   name,
		rdb:    rdb,
		logger: logger.With().Str("component", "cache").Str("cache", name).Logger(),
	}
}

// Enabled reports whether a backing client is configured.
func (r *RedisCache) Enabled() bool {
	return r != nil && r.rdb != nil
}

// GetJSON decodes the value stored under key into out.
func (r *RedisCache) GetJSON(ctx context.Context, key string, out interface{}) bool {
	if !r.Enabled() {
		return false
	}

	val, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn().Err(err).Str("key", key).Msg("failed to read cache")
		}
		observability.CacheRequests().WithLabelValues(r.name, "miss").Inc()
		return false
	}

	if err := json.Unmarshal(val, out); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		observability.CacheRequests().WithLabelValues(r.name, "miss").Inc()
		return false
	}

	observability.CacheRequests().WithLabelValues(r.name, "hit").Inc()
	return true
}

// SetJSON stores value under key for ttl. Failures are logged, not returned.
func (r *RedisCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !r.Enabled() {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("failed to encode cache entry")
		return
	}

	if err := r.rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("failed to write cache")
	}
}

// Delete removes key.
func (r *RedisCache) Delete(ctx context.Context, key string) {
	if !r.Enabled() {
		return
	}
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("failed to delete cache entry")
	}
}
