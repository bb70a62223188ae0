package order

import (
	"errors"
	"fmt"
	"time"

	"handoff/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods. This ensures all
	// orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrLedgerInconsistent signals a violated ledger invariant: the number of
	// in-progress legs did not match what the order status requires. This must
	// never happen under correct lock discipline, so it is surfaced as an
	// internal error distinct from validation rejections and should alert
	// rather than be retried.
	ErrLedgerInconsistent = errors.New("leg ledger is inconsistent")
)

// Order represents a long-running delivery coordinated across sequential rider
// handoffs. It is the aggregate root that owns the leg ledger and enforces the
// handoff state machine.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Has a current rider if and only if its status is InProgress
//   - Leg numbers form a strictly increasing sequence 1, 2, 3, ... with no gaps
//   - At most one leg is InProgress, and exactly one while the order is InProgress
//   - Delivered is terminal: no further mutation is accepted
//   - Can only be created through NewOrder or RestoreOrder
//
// The aggregate is mutated exclusively by the handoff orchestrator inside a
// lock-protected, transition-validated update; it holds no synchronization of
// its own.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// riderID is the rider currently carrying the order (nil unless InProgress)
	riderID *kernel.UUID

	// status represents the current state in the handoff lifecycle
	status Status

	// legs is the append-only ledger of rider segments, ordered by number
	legs []*Leg

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Created status with an empty leg ledger.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - createdAt: Creation instant, also used as the initial updatedAt
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
func NewOrder(id kernel.UUID, createdAt time.Time) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		status:        Created,
		createdAt:     createdAt,
		updatedAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order aggregate from persistence, re-checking
// the cross-entity invariants that relate status, rider and ledger. The
// persistence layer must pass legs ordered by number.
func RestoreOrder(
	id kernel.UUID,
	status Status,
	riderID *kernel.UUID,
	legs []*Leg,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		status.Validate(),
		status.ValidateCanHaveRider(riderID != nil),
	); err != nil {
		return nil, err
	}

	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return nil, err
		}
	}

	if err := validateLedger(status, legs); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		riderID:       riderID,
		status:        status,
		legs:          legs,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// validateLedger asserts the structural ledger invariants on restore:
// contiguous 1-based numbering and the open-leg count implied by status.
func validateLedger(status Status, legs []*Leg) error {
	open := 0
	for i, leg := range legs {
		if err := leg.Validate(); err != nil {
			return err
		}
		if leg.Number() != i+1 {
			return fmt.Errorf("%w: leg at position %d has number %d", ErrLedgerInconsistent, i+1, leg.Number())
		}
		if leg.Status() == LegInProgress {
			open++
		}
	}

	wantOpen := 0
	if status == InProgress {
		wantOpen = 1
	}
	if open != wantOpen {
		return fmt.Errorf("%w: found %d in-progress legs for status %s", ErrLedgerInconsistent, open, status)
	}

	return nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Rider returns the rider currently carrying the order.
// Returns nil unless the order is InProgress.
func (o *Order) Rider() *kernel.UUID {
	return o.riderID
}

// Legs returns the ledger of rider segments ordered by leg number.
// The returned slice is a copy; legs themselves are shared references.
func (o *Order) Legs() []*Leg {
	legs := make([]*Leg, len(o.legs))
	copy(legs, o.legs)
	return legs
}

// CreatedAt returns when the order was registered.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order was last mutated.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// StartLeg begins a new rider segment on the order.
//
// The transition is validated against the state machine (only Created and
// AwaitingHandoff orders accept a start), a new leg is appended to the ledger
// with the next strictly-increasing number, and the order moves to InProgress
// with the given rider as current.
//
// Returns the opened leg, or a TransitionError if the order's status does not
// allow starting.
func (o *Order) StartLeg(riderID kernel.UUID, at time.Time) (*Leg, error) {
	if err := riderID.Validate(); err != nil {
		return nil, err
	}

	next, err := Transition(o.status, ActionStart, false)
	if err != nil {
		return nil, err
	}

	leg, err := NewLeg(kernel.NewUUID(), o.id, riderID, o.nextLegNumber(), at)
	if err != nil {
		return nil, err
	}

	o.legs = append(o.legs, leg)
	o.status = next
	o.riderID = &riderID
	o.updatedAt = at
	return leg, nil
}

// FinishLeg closes the order's open rider segment.
//
// The transition is validated against the state machine (only InProgress
// orders accept a finish), the unique in-progress leg is completed, and the
// order moves to AwaitingHandoff or, when isFinal is set, to the terminal
// Delivered status. The current rider is cleared either way.
//
// Returns the completed leg. A TransitionError reports an order that is not
// InProgress; ErrLedgerInconsistent reports a ledger with zero or multiple
// open legs, which indicates broken lock discipline rather than caller error.
func (o *Order) FinishLeg(isFinal bool, at time.Time) (*Leg, error) {
	next, err := Transition(o.status, ActionFinish, isFinal)
	if err != nil {
		return nil, err
	}

	leg, err := o.openLeg()
	if err != nil {
		return nil, err
	}

	if err = leg.complete(at); err != nil {
		return nil, err
	}

	o.status = next
	o.riderID = nil
	o.updatedAt = at
	return leg, nil
}

// nextLegNumber computes the number for a newly started leg:
// one past the highest existing number, or 1 for an empty ledger.
func (o *Order) nextLegNumber() int {
	maxNumber := 0
	for _, leg := range o.legs {
		if leg.Number() > maxNumber {
			maxNumber = leg.Number()
		}
	}
	return maxNumber + 1
}

// openLeg locates the unique in-progress leg. Zero or multiple open legs
// violate the ledger invariant and surface as ErrLedgerInconsistent.
func (o *Order) openLeg() (*Leg, error) {
	var open *Leg
	for _, leg := range o.legs {
		if leg.Status() != LegInProgress {
			continue
		}
		if open != nil {
			return nil, fmt.Errorf("%w: multiple in-progress legs for order %s", ErrLedgerInconsistent, o.id)
		}
		open = leg
	}

	if open == nil {
		return nil, fmt.Errorf("%w: no in-progress leg for order %s", ErrLedgerInconsistent, o.id)
	}

	return open, nil
}
