package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on a shared Redis instance so multiple
// stateless replicas throttle against the same counters. INCR plus a TTL
// set only on window creation gives atomic fixed-window semantics.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a redis-backed rate limit store. All keys are
// namespaced under the given prefix to avoid collisions with other users
// of the same Redis database.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if client == nil {
		panic("ratelimit: redis client is required")
	}
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, time.Time, error) {
	fullKey := s.prefix + ":" + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, fullKey)
	// NX: only the increment that opens the window sets the expiry, so
	// later requests cannot extend it.
	pipe.ExpireNX(ctx, fullKey, ttl)
	remaining := pipe.TTL(ctx, fullKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit incr: %w", err)
	}

	resetAt := time.Now().Add(remaining.Val())
	return incr.Val(), resetAt, nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+":"+key).Err(); err != nil {
		return fmt.Errorf("rate limit reset: %w", err)
	}
	return nil
}
