package queries

import (
	"errors"
	"time"

	"handoff/internal/pkg/errs"
	"handoff/internal/pkg/guard"
)

var ErrGetStalledOrdersQueryIsNotConstructed = errors.New(
	"GetStalledOrdersQuery must be created via NewGetStalledOrdersQuery constructor",
)

// GetStalledOrdersQuery retrieves orders that have been sitting in
// AwaitingHandoff longer than a threshold. Used by the watchdog job to give
// operators visibility into abandoned handoffs; it mutates nothing.
type GetStalledOrdersQuery struct {
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewGetStalledOrdersQuery creates a query for orders stuck awaiting handoff.
// The threshold must be positive.
func NewGetStalledOrdersQuery(olderThan time.Duration) (GetStalledOrdersQuery, error) {
	if olderThan <= 0 {
		return GetStalledOrdersQuery{}, errs.NewValueIsInvalidError("olderThan must be positive")
	}

	return GetStalledOrdersQuery{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStalledOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStalledOrdersQueryIsNotConstructed)
}

// OlderThan returns the stall threshold.
func (q GetStalledOrdersQuery) OlderThan() time.Duration {
	return q.olderThan
}

// GetStalledOrdersQueryResponse identifies one stalled order and how long ago
// its last leg finished.
type GetStalledOrdersQueryResponse struct {
	OrderID   string
	UpdatedAt time.Time
}
