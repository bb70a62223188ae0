package ports

import (
	"context"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Reads return the order together with its complete leg ledger; writes persist
// the order row and its leg rows as one unit so no partial state is ever
// observable by a subsequent lock holder.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including any
	// newly opened or completed legs. Must run inside a UnitOfWork transaction
	// so the order and its legs commit atomically.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier with its
	// full leg ledger ordered by leg number.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
