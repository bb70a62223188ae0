package commands

import (
	"handoff/internal/core/domain/model/order"
)

// OrderResult is the response produced by order creation.
type OrderResult struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// NewOrderResult builds an OrderResult from an order aggregate.
func NewOrderResult(o *order.Order) OrderResult {
	return OrderResult{
		OrderID: o.ID().String(),
		Status:  o.Status().String(),
	}
}

// LegResult is the response produced by a successful start or finish mutation.
// It is also the payload stored under the idempotency key: a replayed request
// deserializes into the identical value, so callers observe byte-identical
// responses with zero additional mutation.
type LegResult struct {
	OrderID     string  `json:"orderId"`
	OrderStatus string  `json:"orderStatus"`
	RiderID     *string `json:"riderId,omitempty"`
	LegNumber   int     `json:"legNumber"`
	LegStatus   string  `json:"legStatus"`
}

// NewLegResult builds a LegResult from the mutated order and the affected leg.
func NewLegResult(o *order.Order, leg *order.Leg) LegResult {
	var riderID *string
	if id := o.Rider(); id != nil {
		s := id.String()
		riderID = &s
	}

	return LegResult{
		OrderID:     o.ID().String(),
		OrderStatus: o.Status().String(),
		RiderID:     riderID,
		LegNumber:   leg.Number(),
		LegStatus:   leg.Status().String(),
	}
}
