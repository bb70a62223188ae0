package ports

import (
	"context"
	"errors"

	"handoff/internal/core/domain/model/kernel"
)

// ErrLockBusy is returned by Locker.Acquire when the per-order lock could not
// be obtained within the retry budget. Nothing was mutated, so the caller may
// safely retry the identical request.
var ErrLockBusy = errors.New("order lock is busy")

// Locker serializes mutating operations per order. Implementations must be
// safe for concurrent use from arbitrarily many callers across service
// instances: the lock record lives in shared external storage, never in
// process memory.
//
// A lock is an ephemeral token+TTL record. The TTL is the sole crash-recovery
// mechanism: a holder that dies mid-operation self-heals when the record
// expires. There is no queueing or fairness guarantee beyond retry/backoff.
type Locker interface {
	// Acquire attempts to take the order's lock, retrying with backoff.
	// On success it returns an opaque possession token that must be presented
	// to Release. Returns ErrLockBusy when all attempts fail.
	Acquire(ctx context.Context, orderID kernel.UUID) (string, error)

	// Release deletes the lock record only if it still holds the given token
	// (compare-and-delete). A slow caller whose lock already expired and was
	// re-acquired by someone else therefore cannot release the new holder's
	// lock. Releasing an absent or foreign lock is not an error.
	Release(ctx context.Context, orderID kernel.UUID, token string) error
}
