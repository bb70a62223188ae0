package queries

import (
	"context"
	"time"

	"handoff/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStalledOrdersQueryHandler finds orders stuck in AwaitingHandoff.
type GetStalledOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetStalledOrdersQueryHandler creates a handler for stalled-order queries.
// Requires a GORM database connection for query execution.
func NewGetStalledOrdersQueryHandler(db *gorm.DB) GetStalledOrdersQueryHandler {
	return GetStalledOrdersQueryHandler{db: db}
}

// Handle returns all orders that entered AwaitingHandoff before the threshold
// and have not been picked up since. Results are sorted oldest first.
func (h GetStalledOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStalledOrdersQuery,
) ([]GetStalledOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-query.OlderThan())
	stalled := make([]GetStalledOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			updated_at
		FROM orders
		WHERE status = ?
		  AND updated_at < ?
		ORDER BY updated_at
	`, order.AwaitingHandoff, cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        uuid.UUID
			updatedAt time.Time
		)

		if err = rows.Scan(&id, &updatedAt); err != nil {
			return nil, err
		}

		stalled = append(stalled, GetStalledOrdersQueryResponse{
			OrderID:   id.String(),
			UpdatedAt: updatedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stalled, nil
}
