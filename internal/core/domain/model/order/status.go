package order

import (
	"fmt"

	"handoff/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct handoff workflow.
//
// State transitions:
//
//	Created ──> InProgress ──┬──> AwaitingHandoff ──> InProgress ...
//	                         └──> Delivered
//
// A rider starting a leg moves the order to InProgress; finishing a leg moves
// it to AwaitingHandoff (intermediate handoff) or Delivered (final delivery).
// Delivered is terminal: no further transitions are accepted.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first registered.
	// Orders in this status are waiting for their first rider.
	Created

	// InProgress indicates a rider is currently carrying the order.
	// Exactly one leg is open while the order is in this status.
	InProgress

	// AwaitingHandoff indicates the previous rider finished a leg and the
	// order is waiting for the next rider to pick it up.
	AwaitingHandoff

	// Delivered indicates the order reached its destination.
	// This is a final state with no further transitions allowed.
	Delivered
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "Unknown",
		Created:         "Created",
		InProgress:      "InProgress",
		AwaitingHandoff: "AwaitingHandoff",
		Delivered:       "Delivered",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:         "Created",
		InProgress:      "InProgress",
		AwaitingHandoff: "AwaitingHandoff",
		Delivered:       "Delivered",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Created, InProgress, AwaitingHandoff, Delivered.
// Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements the fmt.Stringer interface and is safe to call
// on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateCanHaveRider validates the consistency between order status and rider
// assignment. An order has a current rider if and only if it is InProgress.
//
// Parameters:
//   - rider: whether the order has a current rider
//
// Returns:
//   - error: validation error if status and rider assignment are inconsistent
func (s Status) ValidateCanHaveRider(rider bool) error {
	if rider && s != InProgress {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a rider", s.String()),
		)
	}

	if !rider && s == InProgress {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no rider", s.String()),
		)
	}

	return nil
}
