package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sweephouse/domain/entities"

	"github.com/redis/go-redis/v9"
)

// RedisEventCache caches event catalog snapshots per sport in Redis
type RedisEventCache struct {
	client *redis.Client
}

// NewRedisEventCache creates a new Redis-backed event cache
func NewRedisEventCache(client *redis.Client) *RedisEventCache {
	return &RedisEventCache{client: client}
}

// ConnectRedis opens and pings a Redis client
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return rdb, nil
}

func sportKey(sport string) string {
	if sport == "" {
		sport = "all"
	}
	return "odds:sport:" + sport
}

// GetSport returns the cached events for a sport; found is false on miss
func (c *RedisEventCache) GetSport(ctx context.Context, sport string) ([]*entities.SportsEvent, bool, error) {
	data, err := c.client.Get(ctx, sportKey(sport)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read odds cache for sport %s: %w", sport, err)
	}

	var events []*entities.SportsEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, false, fmt.Errorf("failed to decode odds cache for sport %s: %w", sport, err)
	}

	return events, true, nil
}

// SetSport caches the events for a sport with a TTL
func (c *RedisEventCache) SetSport(ctx context.Context, sport string, events []*entities.SportsEvent, ttl time.Duration) error {
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to encode odds cache for sport %s: %w", sport, err)
	}

	if err := c.client.Set(ctx, sportKey(sport), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write odds cache for sport %s: %w", sport, err)
	}

	return nil
}

// Invalidate drops a sport's cache entry
func (c *RedisEventCache) Invalidate(ctx context.Context, sport string) error {
	if err := c.client.Del(ctx, sportKey(sport), sportKey("")).Err(); err != nil {
		return fmt.Errorf("failed to invalidate odds cache for sport %s: %w", sport, err)
	}
	return nil
}
