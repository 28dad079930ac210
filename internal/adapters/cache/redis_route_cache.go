package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/ports"
)

// RedisRouteCache is a Redis-backed route cache with per-entry TTL. It is
// meant for deployments that share a cache across planner instances; the
// SQL caches remain the durable tier.
type RedisRouteCache struct {
	Client *redis.Client
	TTL    time.Duration
}

const redisRouteKeyPrefix = "route:"

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisRouteCache{Client: client, TTL: ttl}
}

// Fetch one cached leg by key.
func (r *RedisRouteCache) Get(ctx context.Context, key string) (ports.RouteResult, bool, error) {
	if r.Client == nil {
		return ports.RouteResult{}, false, errors.New("route cache: redis client is nil")
	}
	if key == "" {
		return ports.RouteResult{}, false, errors.New("get route cache: key must not be empty")
	}

	raw, err := r.Client.Get(ctx, redisRouteKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: redis get: %w", err)
	}

	var result ports.RouteResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: decode entry: %w", err)
	}
	return result, true, nil
}

// Store one resolved leg. Estimated results are never cached.
func (r *RedisRouteCache) Put(ctx context.Context, key string, result ports.RouteResult) error {
	if r.Client == nil {
		return errors.New("route cache: redis client is nil")
	}
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}
	if result.Estimated {
		return nil
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("insert route cache: encode entry: %w", err)
	}

	if err := r.Client.Set(ctx, redisRouteKeyPrefix+key, raw, r.TTL).Err(); err != nil {
		return fmt.Errorf("insert route cache key=%q: redis set: %w", key, err)
	}
	return nil
}
