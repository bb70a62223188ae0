package commands

import (
	"context"
	"time"

	"handoff/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creation needs no lock or idempotency handling: a fresh UUID cannot race
// with anything, and a duplicate insert fails on the primary key.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command and returns the created order view.
// Uses a transaction to ensure the order is properly persisted or rolled back on error.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (OrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return OrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := order.NewOrder(cmd.OrderID(), time.Now().UTC())
	if err != nil {
		return OrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return OrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return OrderResult{}, err
	}

	return NewOrderResult(aggregate), nil
}
