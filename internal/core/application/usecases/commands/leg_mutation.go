package commands

import (
	"context"
	"encoding/json"
	"time"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/order"
	"handoff/internal/core/ports"
)

// idempotencyTTL bounds how long a deduplication key replays its original
// response. Expiry is advisory cleanup: keys are client-generated and assumed
// unique per logical attempt.
const idempotencyTTL = 24 * time.Hour

// legMutator runs the shared handoff protocol for every mutating leg request:
//
//	idempotency lookup → lock acquire → load order+legs → domain transition →
//	atomic commit → idempotency store → lock release
//
// The per-order lock is the sole serialization point; the mutate callback runs
// only while the lock is held, against freshly loaded authoritative state.
// The lock is released on every exit path past acquisition.
type legMutator struct {
	uowFactory  OrderUoWFactory
	locker      ports.Locker
	idempotency ports.IdempotencyStore
}

func (m legMutator) run(
	ctx context.Context,
	operation string,
	orderID kernel.UUID,
	dedupKey string,
	mutate func(o *order.Order) (*order.Leg, error),
) (LegResult, error) {
	key := ports.IdempotencyKey(operation, orderID, dedupKey)

	cached, err := m.idempotency.Lookup(ctx, key)
	if err != nil {
		return LegResult{}, err
	}
	if cached != nil {
		var result LegResult
		if err = json.Unmarshal(cached, &result); err != nil {
			return LegResult{}, err
		}
		return result, nil
	}

	token, err := m.locker.Acquire(ctx, orderID)
	if err != nil {
		return LegResult{}, err
	}
	defer func() {
		_ = m.locker.Release(ctx, orderID, token)
	}()

	uow := m.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return LegResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, orderID)
	if err != nil {
		return LegResult{}, err
	}

	leg, err := mutate(aggregate)
	if err != nil {
		// Rejections are not cached: a retry after a rejection must
		// re-evaluate against possibly-changed state.
		return LegResult{}, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return LegResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return LegResult{}, err
	}

	result := NewLegResult(aggregate, leg)
	body, err := json.Marshal(result)
	if err != nil {
		return LegResult{}, err
	}

	// The commit is already durable. A failed cache write only reopens the
	// duplicate-retry window, so it must not fail the request.
	_ = m.idempotency.Store(ctx, key, body, idempotencyTTL)

	return result, nil
}
