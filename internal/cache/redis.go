package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Config holds Redis configuration
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Cache fronts the feed fetches: season drops are large and immutable for
// hours at a time, so a hit skips the download entirely. A missing or
// unreachable Redis degrades to fetch-every-time, it never fails a run.
type Cache struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection
func New(ctx context.Context, cfg Config) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Int("db", cfg.DB).
		Msg("Connected to Redis")

	return &Cache{client: client}, nil
}

// FeedKey composes the cache key for one feed payload
func FeedKey(feed string, season int) string {
	if season == 0 {
		return fmt.Sprintf("feed:%s", feed)
	}
	return fmt.Sprintf("feed:%s:%d", feed, season)
}

// Get returns a cached payload, or nil on a miss
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}

	log.Debug().Str("key", key).Int("size", len(val)).Msg("Cache hit")
	return val, nil
}

// Set stores a payload with a TTL
func (c *Cache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes a cached payload, used to force a refetch
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Health checks the Redis connection
func (c *Cache) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *Cache) Close() {
	if c.client != nil {
		c.client.Close()
		log.Info().Msg("Redis connection closed")
	}
}
