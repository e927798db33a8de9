package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-route-service/internal/ports"
)

const redisSegmentPrefix = "segment:"

// Redis-backed cache for provider-resolved route segments, for deployments
// that want shared, expiring entries without a relational store.
// Values are stored as JSON under "segment:<pair_key>".
type RedisSegmentCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSegmentCache(client *redis.Client, ttl time.Duration) *RedisSegmentCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisSegmentCache{Client: client, TTL: ttl}
}

type redisSegment struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
}

// Fetch cached segment metrics for the given pair keys.
func (r *RedisSegmentCache) GetMany(ctx context.Context, keys []string) (map[string]ports.RouteResult, error) {
	if r.Client == nil {
		return nil, errors.New("segment cache: redis client is nil")
	}

	if len(keys) == 0 {
		return map[string]ports.RouteResult{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(keys))
	redisKeys := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}

		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
		redisKeys = append(redisKeys, redisSegmentPrefix+k)
	}

	if len(uniq) == 0 {
		return map[string]ports.RouteResult{}, nil
	}

	values, err := r.Client.MGet(ctx, redisKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get segment cache: redis mget: %w", err)
	}

	out := make(map[string]ports.RouteResult, len(uniq))
	for i, v := range values {
		if v == nil {
			continue
		}
		raw, ok := v.(string)
		if !ok {
			continue
		}

		var seg redisSegment
		if err := json.Unmarshal([]byte(raw), &seg); err != nil {
			// A corrupt entry is a miss, not a failure.
			continue
		}
		out[uniq[i]] = ports.RouteResult{
			DistanceKm:      seg.DistanceKm,
			DurationMinutes: seg.DurationMinutes,
		}
	}

	return out, nil
}

// Store many segment results keyed by coordinate pair, each with the
// configured TTL.
func (r *RedisSegmentCache) PutMany(ctx context.Context, results map[string]ports.RouteResult) error {
	if r.Client == nil {
		return errors.New("segment cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := r.Client.Pipeline()
	for key, res := range results {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("insert segment cache: empty pair key")
		}

		payload, err := json.Marshal(redisSegment{
			DistanceKm:      res.DistanceKm,
			DurationMinutes: res.DurationMinutes,
		})
		if err != nil {
			return fmt.Errorf("insert segment cache key=%q: marshal: %w", key, err)
		}
		pipe.Set(ctx, redisSegmentPrefix+key, payload, r.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert segment cache: redis pipeline: %w", err)
	}

	return nil
}
