package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// rateLimitPrefix namespaces the fixed-window counters kept by Allow.
const rateLimitPrefix = "picboard:rl:"

// Client wraps the Redis client with application-specific configuration.
type Client struct {
	*redis.Client
}

// NewClient creates a new Redis client from the given URL.
// URL format: redis://[:password@]host:port[/db]
func NewClient(redisURL string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	return &Client{Client: redis.NewClient(opts)}, nil
}

// Ping verifies the connection to Redis.
// Call this on application startup to fail fast if Redis is unreachable.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Allow counts one hit for key in the current fixed window and reports
// whether the count is still within limit. The window starts with the first hit.
func (c *Client) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	key = rateLimitPrefix + key

	pipe := c.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("incr %s: %w", key, err)
	}

	// No TTL means a fresh key, or one whose earlier EXPIRE never landed.
	if ttl.Val() < 0 {
		if err := c.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return incr.Val() <= int64(limit), nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.Client.Close()
}
