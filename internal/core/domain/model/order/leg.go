package order

import (
	"errors"
	"fmt"
	"time"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/pkg/errs"
)

var (
	// ErrLegIsNotConstructed is returned when a Leg instance was not created
	// through the NewLeg or RestoreLeg factory methods.
	ErrLegIsNotConstructed = errors.New("Leg must be created via NewLeg or RestoreLeg constructor")

	// ErrLegAlreadyCompleted indicates an attempt to mutate a completed leg.
	// Completed legs are append-only audit records and never change.
	ErrLegAlreadyCompleted = errors.New("leg is already completed")
)

// LegStatus represents the lifecycle state of a single rider segment.
// A leg is opened InProgress when a rider picks the order up and becomes
// Completed exactly once, when the rider hands off or delivers.
type LegStatus int

const (
	// LegUnknown represents an invalid or undefined leg status.
	LegUnknown LegStatus = iota

	// LegInProgress indicates the rider is currently carrying the order.
	LegInProgress

	// LegCompleted indicates the segment ended. Completed legs are immutable.
	LegCompleted
)

// Validate checks if the LegStatus value is valid.
func (s LegStatus) Validate() error {
	if s != LegInProgress && s != LegCompleted {
		return errs.NewValueIsInvalidErrorWithCause("leg status is invalid",
			fmt.Errorf("%d is not a valid leg status", s))
	}
	return nil
}

// String returns the human-readable name of the leg status.
func (s LegStatus) String() string {
	switch s {
	case LegInProgress:
		return "InProgress"
	case LegCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Leg is one rider's contiguous segment of handling an order, from pickup to
// handoff or final delivery. Legs form the order's append-only audit ledger:
//
//   - Leg numbers are 1-based, strictly increasing per order, with no gaps
//   - At most one leg per order is InProgress at any time
//   - A completed leg is never mutated or deleted
//
// Leg is an entity owned by the Order aggregate and shares its lifetime.
// It can only be created through NewLeg (by Order.StartLeg) or RestoreLeg
// (by the persistence layer).
type Leg struct {
	id         kernel.UUID
	orderID    kernel.UUID
	riderID    kernel.UUID
	number     int
	status     LegStatus
	startedAt  time.Time
	finishedAt *time.Time

	isConstructed bool
}

// NewLeg creates a new in-progress leg for an order. The number must be the
// next position in the order's ledger; Order.StartLeg computes it.
func NewLeg(id, orderID, riderID kernel.UUID, number int, startedAt time.Time) (*Leg, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		riderID.Validate(),
	); err != nil {
		return nil, err
	}

	if number < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("leg number is invalid",
			fmt.Errorf("%d is not greater than 0", number))
	}

	if startedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("startedAt")
	}

	return &Leg{
		id:            id,
		orderID:       orderID,
		riderID:       riderID,
		number:        number,
		status:        LegInProgress,
		startedAt:     startedAt,
		isConstructed: true,
	}, nil
}

// RestoreLeg reconstructs a leg from persistence without running the
// construction-time rules that only apply to brand-new legs. It still
// validates identifier and status consistency so corrupted rows surface early.
func RestoreLeg(
	id, orderID, riderID kernel.UUID,
	number int,
	status LegStatus,
	startedAt time.Time,
	finishedAt *time.Time,
) (*Leg, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		riderID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if number < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("leg number is invalid",
			fmt.Errorf("%d is not greater than 0", number))
	}

	if status == LegCompleted && finishedAt == nil {
		return nil, errs.NewValueIsRequiredError("finishedAt for completed leg")
	}

	if status == LegInProgress && finishedAt != nil {
		return nil, errs.NewValueIsInvalidError("finishedAt must be empty for in-progress leg")
	}

	return &Leg{
		id:            id,
		orderID:       orderID,
		riderID:       riderID,
		number:        number,
		status:        status,
		startedAt:     startedAt,
		finishedAt:    finishedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Leg instance was properly constructed.
func (l *Leg) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLegIsNotConstructed
	}
	return nil
}

// ID returns the leg's unique identifier.
func (l *Leg) ID() kernel.UUID {
	return l.id
}

// OrderID returns the identifier of the owning order.
func (l *Leg) OrderID() kernel.UUID {
	return l.orderID
}

// RiderID returns the rider who carried this segment.
func (l *Leg) RiderID() kernel.UUID {
	return l.riderID
}

// Number returns the leg's 1-based position in the order's ledger.
func (l *Leg) Number() int {
	return l.number
}

// Status returns the current status of the leg.
func (l *Leg) Status() LegStatus {
	return l.status
}

// StartedAt returns when the rider picked the order up.
func (l *Leg) StartedAt() time.Time {
	return l.startedAt
}

// FinishedAt returns when the leg completed, or nil while in progress.
func (l *Leg) FinishedAt() *time.Time {
	return l.finishedAt
}

// complete closes the leg at the given instant. Only the owning Order calls
// this, under the orchestrator's per-order lock.
func (l *Leg) complete(at time.Time) error {
	if l.status == LegCompleted {
		return ErrLegAlreadyCompleted
	}

	l.status = LegCompleted
	l.finishedAt = &at
	return nil
}
