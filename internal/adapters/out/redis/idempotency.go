package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "handoff:idem:"

// IdempotencyStore implements ports.IdempotencyStore on Redis. Records are
// created at most once per key (SET NX) and expire after their retention
// window; expiry is advisory cleanup, not a correctness requirement, since
// deduplication keys are client-generated and unique per logical attempt.
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates a Redis-backed idempotency cache.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Lookup returns the stored response for the key, or nil on miss.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) ([]byte, error) {
	body, err := s.client.Get(ctx, idempotencyKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Store writes the response under the key only if absent. The orchestrator
// calls it after committing under the order's lock, so a lost race here means
// an identical response was already stored.
func (s *IdempotencyStore) Store(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.SetNX(ctx, idempotencyKeyPrefix+key, response, ttl).Err()
}
