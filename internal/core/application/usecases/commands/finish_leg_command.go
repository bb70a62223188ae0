package commands

import (
	"errors"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/pkg/guard"
)

var ErrFinishLegCommandIsNotConstructed = errors.New(
	"FinishLegCommand must be created via NewFinishLegCommand constructor",
)

// FinishLegCommand represents a rider's request to close the open leg on an
// order, either handing off to the next rider or completing the delivery.
//
// The rider identity is carried for auditability but deliberately not checked
// against the leg's starting rider: rider identity is trust-based at this
// boundary.
type FinishLegCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	riderID  kernel.UUID
	isFinal  bool
	dedupKey string

	guard guard.ConstructorGuard
}

// NewFinishLegCommand creates a command for a rider to close an order's open leg.
// Validates both identifiers and requires a non-empty deduplication key.
func NewFinishLegCommand(orderID, riderID kernel.UUID, isFinal bool, dedupKey string) (FinishLegCommand, error) {
	cmd := FinishLegCommand{
		isFinal: isFinal,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRiderID(riderID),
		cmd.setDedupKey(dedupKey),
	); err != nil {
		return FinishLegCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FinishLegCommand) Validate() error {
	return c.guard.Validate(ErrFinishLegCommandIsNotConstructed)
}

// OrderID returns the order whose open leg should be closed.
func (c FinishLegCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RiderID returns the rider reporting the finish.
func (c FinishLegCommand) RiderID() kernel.UUID {
	return c.riderID
}

// IsFinal reports whether this finish is the final delivery rather than a handoff.
func (c FinishLegCommand) IsFinal() bool {
	return c.isFinal
}

// DedupKey returns the caller-supplied deduplication key.
func (c FinishLegCommand) DedupKey() string {
	return c.dedupKey
}

func (c *FinishLegCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *FinishLegCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}

func (c *FinishLegCommand) setDedupKey(dedupKey string) error {
	if dedupKey == "" {
		return ErrDedupKeyIsRequired
	}

	c.dedupKey = dedupKey
	return nil
}
