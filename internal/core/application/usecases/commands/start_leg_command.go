package commands

import (
	"errors"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/pkg/guard"
)

var (
	ErrStartLegCommandIsNotConstructed = errors.New(
		"StartLegCommand must be created via NewStartLegCommand constructor",
	)
	ErrDedupKeyIsRequired = errors.New("deduplication key is required")
)

// StartLegCommand represents a rider's request to begin a new leg on an order.
// Every mutating request carries a caller-supplied deduplication key so that
// network retries replay the original response instead of re-executing.
type StartLegCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	riderID  kernel.UUID
	dedupKey string

	guard guard.ConstructorGuard
}

// NewStartLegCommand creates a command for a rider to pick up an order.
// Validates both identifiers and requires a non-empty deduplication key.
func NewStartLegCommand(orderID, riderID kernel.UUID, dedupKey string) (StartLegCommand, error) {
	cmd := StartLegCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRiderID(riderID),
		cmd.setDedupKey(dedupKey),
	); err != nil {
		return StartLegCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartLegCommand) Validate() error {
	return c.guard.Validate(ErrStartLegCommandIsNotConstructed)
}

// OrderID returns the order to start a leg on.
func (c StartLegCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RiderID returns the rider picking the order up.
func (c StartLegCommand) RiderID() kernel.UUID {
	return c.riderID
}

// DedupKey returns the caller-supplied deduplication key.
func (c StartLegCommand) DedupKey() string {
	return c.dedupKey
}

func (c *StartLegCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StartLegCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}

func (c *StartLegCommand) setDedupKey(dedupKey string) error {
	if dedupKey == "" {
		return ErrDedupKeyIsRequired
	}

	c.dedupKey = dedupKey
	return nil
}
