// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Timestamps are domain-controlled, so GORM's automatic time tracking is
// disabled on them.
type OrderDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RiderID   *uuid.UUID `gorm:"type:uuid;index"`
	Status    int
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
	Legs      []LegDTO  `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LegDTO represents one ledger row. The composite unique index on
// (order_id, number) backs the no-gaps/no-repeats numbering invariant at the
// storage layer.
type LegDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_legs_order_number"`
	RiderID    uuid.UUID `gorm:"type:uuid"`
	Number     int       `gorm:"uniqueIndex:idx_legs_order_number"`
	Status     int
	StartedAt  time.Time
	FinishedAt *time.Time
}

// TableName specifies the database table name for leg entities.
func (LegDTO) TableName() string {
	return "legs"
}

// fromDomain converts an order domain aggregate to its database representation,
// including the complete leg ledger.
func fromDomain(aggregate *order.Order) OrderDTO {
	var riderID *uuid.UUID
	if id := aggregate.Rider(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	legs := aggregate.Legs()
	legDTOs := make([]LegDTO, 0, len(legs))
	for _, leg := range legs {
		legDTOs = append(legDTOs, legFromDomain(leg))
	}

	return OrderDTO{
		ID:        aggregate.ID().Bytes(),
		RiderID:   riderID,
		Status:    int(aggregate.Status()),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		Legs:      legDTOs,
	}
}

// legFromDomain converts a leg entity to its database representation.
func legFromDomain(leg *order.Leg) LegDTO {
	return LegDTO{
		ID:         leg.ID().Bytes(),
		OrderID:    leg.OrderID().Bytes(),
		RiderID:    leg.RiderID().Bytes(),
		Number:     leg.Number(),
		Status:     int(leg.Status()),
		StartedAt:  leg.StartedAt(),
		FinishedAt: leg.FinishedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Legs must already be ordered by number; RestoreOrder re-checks the
// ledger invariants and fails on corrupted rows.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	legs := make([]*order.Leg, 0, len(dto.Legs))
	for _, legDTO := range dto.Legs {
		leg, legErr := legToDomain(legDTO)
		if legErr != nil {
			return nil, legErr
		}
		legs = append(legs, leg)
	}

	return order.RestoreOrder(id, order.Status(dto.Status), riderID, legs, dto.CreatedAt, dto.UpdatedAt)
}

// legToDomain converts a leg row to a leg entity.
func legToDomain(dto LegDTO) (*order.Leg, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	riderID, err := kernel.UUIDFromBytes(dto.RiderID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreLeg(id, orderID, riderID, dto.Number, order.LegStatus(dto.Status), dto.StartedAt, dto.FinishedAt)
}
