// Package redis provides the coordination-primitive adapters backed by Redis:
// the per-order lock manager and the idempotency cache. Both rely on Redis
// atomic primitives (SET NX with TTL, scripted compare-and-delete), so any
// number of stateless service instances observe a single consistent view with
// no in-process shared state.
package redis

import (
	"context"
	"time"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/ports"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "handoff:lock:"

// lockTTL bounds how long a crashed holder can block an order. TTL expiry is
// the sole crash-recovery mechanism: there is no heartbeat or liveness probe.
const lockTTL = 30 * time.Second

// lockBackoff is the retry schedule for a busy lock. One acquisition attempt
// precedes each delay, so acquisition gives up after three attempts.
var lockBackoff = []time.Duration{50 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond}

// releaseScript deletes the lock only while it still holds the caller's
// token. GET and DEL execute atomically inside Redis, so a stale caller can
// never release a lock that expired and was re-acquired by someone else.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Locker implements ports.Locker on Redis. Each acquisition stores a fresh
// random token under the order's key; possession of the token is the only
// proof required to release.
type Locker struct {
	client  *redis.Client
	ttl     time.Duration
	backoff []time.Duration
}

// NewLocker creates a lock manager with the default 30s TTL and
// 50/100/200ms retry backoff.
func NewLocker(client *redis.Client) *Locker {
	return &Locker{
		client:  client,
		ttl:     lockTTL,
		backoff: lockBackoff,
	}
}

// Acquire attempts the atomic "set token if absent, with expiry" up to three
// times, sleeping the backoff schedule between attempts. Returns the
// possession token on success and ports.ErrLockBusy when every attempt finds
// the lock held. There is no queueing or fairness: under sustained contention
// a caller can exhaust its retries even though the lock frees shortly after.
func (l *Locker) Acquire(ctx context.Context, orderID kernel.UUID) (string, error) {
	key := lockKeyPrefix + orderID.String()
	token := uuid.NewString()

	for _, delay := range l.backoff {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return "", err
		}
		if ok {
			return token, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	return "", ports.ErrLockBusy
}

// Release compare-and-deletes the lock record. Releasing a lock that already
// expired, or that a new holder re-acquired, silently does nothing.
func (l *Locker) Release(ctx context.Context, orderID kernel.UUID, token string) error {
	key := lockKeyPrefix + orderID.String()
	return releaseScript.Run(ctx, l.client, []string{key}, token).Err()
}
