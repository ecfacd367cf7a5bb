package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"tube-route-service/internal/ports"
)

// Redis-backed cache for origin->destination journey durations, for
// deployments that want a hot shared cache in front of (or instead of)
// the SQL stores. Values are whole minutes stored as strings under
// "journey:<origin>|<destination>".
type RedisJourneyCache struct {
	Client *redis.Client
	// TTL for cached pairs; zero means no expiry. Journey times drift
	// with timetable changes, so long-lived deployments set one.
	TTL time.Duration
}

func NewRedisJourneyCache(client *redis.Client, ttl time.Duration) *RedisJourneyCache {
	return &RedisJourneyCache{Client: client, TTL: ttl}
}

func journeyKey(origin, destination string) string {
	return "journey:" + origin + "|" + destination
}

// Fetch cached durations for one origin and multiple destinations.
func (r *RedisJourneyCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (map[string]ports.JourneyResult, error) {
	if r.Client == nil {
		return nil, errors.New("journey cache: redis client is nil")
	}

	if origin == "" {
		return nil, errors.New("get journey cache: origin must not be empty")
	}

	if len(destinations) == 0 {
		return map[string]ports.JourneyResult{}, nil
	}

	keys := make([]string, len(destinations))
	for i, d := range destinations {
		keys[i] = journeyKey(origin, d)
	}

	values, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get journey cache: redis mget: %w", err)
	}

	out := make(map[string]ports.JourneyResult, len(destinations))
	for i, v := range values {
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		minutes, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("get journey cache: bad value %q for key %q: %w", s, keys[i], err)
		}
		out[destinations[i]] = ports.JourneyResult{DurationMinutes: minutes}
	}

	return out, nil
}

// Store many cached durations for a single origin.
func (r *RedisJourneyCache) PutMany(ctx context.Context, origin string, results map[string]ports.JourneyResult) error {
	if r.Client == nil {
		return errors.New("journey cache: redis client is nil")
	}

	if origin == "" {
		return errors.New("insert journey cache: origin must not be empty")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := r.Client.Pipeline()
	for dest, result := range results {
		if dest == "" {
			return errors.New("insert journey cache: empty destination key")
		}
		pipe.Set(ctx, journeyKey(origin, dest), strconv.Itoa(result.DurationMinutes), r.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert journey cache: redis pipeline: %w", err)
	}

	return nil
}
