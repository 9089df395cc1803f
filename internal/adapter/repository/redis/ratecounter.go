package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateCounter implements usecase.Counter over Redis: a windowed counter
// per key with explicit expiry. Replacing the original's process-wide
// map with an external service lets the API scale horizontally without
// shared mutable memory.
type RateCounter struct {
	client *redis.Client
	prefix string
}

// NewRateCounter creates a new RateCounter.
func NewRateCounter(client *redis.Client) *RateCounter {
	return &RateCounter{
		client: client,
		prefix: "ratelimit:",
	}
}

// Incr increments key within the current window and returns the count
// and the time remaining until the window resets. The expiry is set only
// when the key is created, so the window is fixed, not sliding.
func (c *RateCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	fullKey := c.prefix + key

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, fullKey)
	pipe.ExpireNX(ctx, fullKey, window)
	ttl := pipe.TTL(ctx, fullKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	return incr.Val(), ttl.Val(), nil
}
