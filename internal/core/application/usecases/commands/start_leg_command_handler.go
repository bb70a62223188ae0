package commands

import (
	"context"
	"time"

	"handoff/internal/core/domain/model/order"
	"handoff/internal/core/ports"
)

// operation names scope idempotency keys so the same client key cannot
// collide across endpoints.
const (
	opStartLeg  = "start-leg"
	opFinishLeg = "finish-leg"
)

// StartLegCommandHandler orchestrates a rider picking up an order.
//
// A replayed deduplication key returns the original response without touching
// the order. Otherwise the handler serializes on the per-order lock, validates
// the transition against freshly loaded state, appends the new leg and the
// status change as one atomic commit, and caches the response for retries.
type StartLegCommandHandler struct {
	mutator legMutator
}

// NewStartLegCommandHandler creates a handler for leg start operations.
func NewStartLegCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.Locker,
	idempotency ports.IdempotencyStore,
) StartLegCommandHandler {
	return StartLegCommandHandler{
		mutator: legMutator{
			uowFactory:  uowFactory,
			locker:      locker,
			idempotency: idempotency,
		},
	}
}

// Handle processes the start-leg command and returns the resulting order/leg view.
//
// Error taxonomy: ports.ErrLockBusy when the lock could not be acquired
// (retryable, nothing mutated); order.ErrInvalidTransition when the order's
// status does not allow starting; errs.ErrObjectNotFound for an unknown order.
func (h *StartLegCommandHandler) Handle(ctx context.Context, cmd StartLegCommand) (LegResult, error) {
	if err := cmd.Validate(); err != nil {
		return LegResult{}, err
	}

	now := time.Now().UTC()
	return h.mutator.run(ctx, opStartLeg, cmd.OrderID(), cmd.DedupKey(),
		func(o *order.Order) (*order.Leg, error) {
			return o.StartLeg(cmd.RiderID(), now)
		})
}
