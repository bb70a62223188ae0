// Package queries contains read-only operations against the storage layer.
// Queries bypass the domain aggregate and the per-order lock entirely: they
// read committed state, so they never need idempotency handling either.
package queries

import (
	"errors"
	"time"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its full ordered leg history.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's current state and ledger.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the queried order's identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the read model for one order: current state plus
// the complete audit trail of rider segments ordered by leg number.
type GetOrderQueryResponse struct {
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	RiderID   *string   `json:"riderId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Legs      []LegView `json:"legs"`
}

// LegView is one ledger entry in the read model.
type LegView struct {
	Number     int        `json:"legNumber"`
	RiderID    string     `json:"riderId"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}
