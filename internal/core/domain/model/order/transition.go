package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel for all rejected state transitions.
// Callers match it with errors.Is to classify a rejection as a validation
// failure regardless of the offending (status, action) pair.
var ErrInvalidTransition = errors.New("invalid order transition")

// Action is a requested operation against the order state machine.
type Action int

const (
	// ActionStart requests that a rider begin a new leg on the order.
	ActionStart Action = iota + 1

	// ActionFinish requests that the current rider close the open leg,
	// either handing off or completing the delivery.
	ActionFinish
)

// String returns the human-readable name of the action.
func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// TransitionError describes a rejected transition: the status the order was in
// and the action that was not allowed from it. It unwraps to ErrInvalidTransition.
type TransitionError struct {
	From   Status
	Action Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s order in status %s", ErrInvalidTransition, e.Action, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// transitionKey identifies a single row of the transition table.
type transitionKey struct {
	from    Status
	action  Action
	isFinal bool
}

// transitionTable is the complete state machine. Any (status, action) pair
// without a row is rejected. The isFinal flag only distinguishes finish rows;
// start rows appear twice so lookup stays a single map access.
var transitionTable = map[transitionKey]Status{
	{from: Created, action: ActionStart, isFinal: false}:         InProgress,
	{from: Created, action: ActionStart, isFinal: true}:          InProgress,
	{from: AwaitingHandoff, action: ActionStart, isFinal: false}: InProgress,
	{from: AwaitingHandoff, action: ActionStart, isFinal: true}:  InProgress,
	{from: InProgress, action: ActionFinish, isFinal: false}:     AwaitingHandoff,
	{from: InProgress, action: ActionFinish, isFinal: true}:      Delivered,
}

// Transition is the pure state machine function: given the current status and
// a requested action it yields the next status or a TransitionError identifying
// the rejected (status, action) pair. It performs no I/O and never inspects
// storage; callers are responsible for loading authoritative state first.
//
// The isFinal flag only matters for ActionFinish, where it selects between
// AwaitingHandoff (intermediate handoff) and Delivered (final delivery).
func Transition(from Status, action Action, isFinal bool) (Status, error) {
	next, ok := transitionTable[transitionKey{from: from, action: action, isFinal: isFinal}]
	if !ok {
		return Unknown, &TransitionError{From: from, Action: action}
	}
	return next, nil
}
