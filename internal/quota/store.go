package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the quota storage collaborator: a keyed read and an atomic
// increment. Policy (limit, fail-open) lives in the Gate, not here.
type Store interface {
	// Count returns the counter for the key, 0 if no record exists.
	// It must not create a record.
	Count(ctx context.Context, key DayKey) (int, error)

	// Increment atomically adds one to the key's counter, creating it if
	// missing, and bounds its lifetime to expireAt.
	Increment(ctx context.Context, key DayKey, expireAt time.Time) error
}

// RedisStore keeps daily counters as plain Redis integers. INCR gives the
// atomic add the concurrency model requires; keys expire shortly after the
// day boundary so stale records clean themselves up.
type RedisStore struct {
	rdb redis.Cmdable
}

func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Count(ctx context.Context, key DayKey) (int, error) {
	n, err := s.rdb.Get(ctx, key.Redis()).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading quota counter: %w", err)
	}
	return n, nil
}

func (s *RedisStore) Increment(ctx context.Context, key DayKey, expireAt time.Time) error {
	pipe := s.rdb.Pipeline()
	pipe.Incr(ctx, key.Redis())
	pipe.ExpireAt(ctx, key.Redis(), expireAt)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("incrementing quota counter: %w", err)
	}
	return nil
}
