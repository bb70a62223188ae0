package ports

import (
	"context"
	"fmt"
	"time"

	"handoff/internal/core/domain/model/kernel"
)

// IdempotencyStore maps a scoped deduplication key to the response produced
// the first time that key was seen, with a bounded retention window. Entries
// are created at most once per key and are immutable until expiry.
type IdempotencyStore interface {
	// Lookup returns the stored response body for the key, or nil on miss.
	Lookup(ctx context.Context, key string) ([]byte, error)

	// Store writes the response body under the key with the given retention,
	// creating it only if absent. Called after a successful commit under the
	// order's lock, so for a given key there is a single writer in practice.
	Store(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// IdempotencyKey builds the storage key for a deduplication key, scoped to the
// operation and order so the same client key cannot collide across endpoints.
func IdempotencyKey(operation string, orderID kernel.UUID, dedupKey string) string {
	return fmt.Sprintf("%s:%s:%s", operation, orderID, dedupKey)
}
