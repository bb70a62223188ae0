package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"handoff/internal/core/domain/model/order"
	"handoff/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order and its leg history from the database.
// This is a pure read: no locking, no idempotency involvement.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and returns the order with its legs ordered by
// leg number. Returns errs.ErrObjectNotFound for an unknown order id.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var (
		id        uuid.UUID
		riderID   *uuid.UUID
		status    int
		createdAt time.Time
		updatedAt time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			rider_id,
			status,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	if err := row.Scan(&id, &riderID, &status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	response := GetOrderQueryResponse{
		OrderID:   id.String(),
		Status:    order.Status(status).String(),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Legs:      make([]LegView, 0),
	}

	if riderID != nil {
		s := riderID.String()
		response.RiderID = &s
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			rider_id,
			number,
			status,
			started_at,
			finished_at
		FROM legs
		WHERE order_id = ?
		ORDER BY number
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			legRider   uuid.UUID
			number     int
			legStatus  int
			startedAt  time.Time
			finishedAt *time.Time
		)

		if err = rows.Scan(&legRider, &number, &legStatus, &startedAt, &finishedAt); err != nil {
			return GetOrderQueryResponse{}, err
		}

		response.Legs = append(response.Legs, LegView{
			Number:     number,
			RiderID:    legRider.String(),
			Status:     order.LegStatus(legStatus).String(),
			StartedAt:  startedAt,
			FinishedAt: finishedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}
