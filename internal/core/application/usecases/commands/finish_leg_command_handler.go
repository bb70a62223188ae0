package commands

import (
	"context"
	"time"

	"handoff/internal/core/domain/model/order"
	"handoff/internal/core/ports"
)

// FinishLegCommandHandler orchestrates a rider closing an order's open leg.
//
// The protocol matches StartLegCommandHandler: idempotency replay first, then
// lock, load, validate, commit the leg completion and status change atomically,
// cache the response, and release the lock on every exit path.
type FinishLegCommandHandler struct {
	mutator legMutator
}

// NewFinishLegCommandHandler creates a handler for leg finish operations.
func NewFinishLegCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.Locker,
	idempotency ports.IdempotencyStore,
) FinishLegCommandHandler {
	return FinishLegCommandHandler{
		mutator: legMutator{
			uowFactory:  uowFactory,
			locker:      locker,
			idempotency: idempotency,
		},
	}
}

// Handle processes the finish-leg command and returns the resulting order/leg view.
//
// Error taxonomy: ports.ErrLockBusy when the lock could not be acquired
// (retryable); order.ErrInvalidTransition when the order is not InProgress;
// errs.ErrObjectNotFound for an unknown order; order.ErrLedgerInconsistent
// when the ledger holds zero or multiple open legs, which indicates broken
// lock discipline and should alert rather than be retried.
func (h *FinishLegCommandHandler) Handle(ctx context.Context, cmd FinishLegCommand) (LegResult, error) {
	if err := cmd.Validate(); err != nil {
		return LegResult{}, err
	}

	now := time.Now().UTC()
	return h.mutator.run(ctx, opFinishLeg, cmd.OrderID(), cmd.DedupKey(),
		func(o *order.Order) (*order.Leg, error) {
			return o.FinishLeg(cmd.IsFinal(), now)
		})
}
