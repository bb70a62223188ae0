// Package http is the inbound HTTP adapter. It binds requests, invokes the
// command/query handlers, and maps the error taxonomy to status codes.
package http

import (
	"errors"
	"net/http"

	"handoff/internal/core/application/usecases/commands"
	"handoff/internal/core/application/usecases/queries"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/order"
	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// idempotencyKeyHeader carries the caller-supplied deduplication key for
// mutating requests.
const idempotencyKeyHeader = "Idempotency-Key"

// Error is the JSON error body returned for failed requests.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server implements the HTTP request boundary for the handoff engine.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler commands.CreateOrderCommandHandler
	startLegHandler    commands.StartLegCommandHandler
	finishLegHandler   commands.FinishLegCommandHandler

	// Query handlers
	getOrderHandler queries.GetOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	startLegHandler commands.StartLegCommandHandler,
	finishLegHandler commands.FinishLegCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		startLegHandler:    startLegHandler,
		finishLegHandler:   finishLegHandler,
		getOrderHandler:    getOrderHandler,
	}
}

// RegisterRoutes wires the four operations onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderID", s.GetOrder)
	api.POST("/orders/:orderID/legs/start", s.StartLeg)
	api.POST("/orders/:orderID/legs/finish", s.FinishLeg)
}

// startLegRequest is the body of POST /orders/:orderID/legs/start.
type startLegRequest struct {
	RiderID string `json:"riderId"`
}

// finishLegRequest is the body of POST /orders/:orderID/legs/finish.
type finishLegRequest struct {
	RiderID         string `json:"riderId"`
	IsFinalDelivery bool   `json:"isFinalDelivery"`
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID())
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, result)
}

// StartLeg handles POST /api/v1/orders/:orderID/legs/start - a rider picks the order up.
func (s *Server) StartLeg(ctx echo.Context) error {
	orderID, riderID, dedupKey, err := s.bindLegRequest(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewStartLegCommand(orderID, riderID, dedupKey)
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.startLegHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// FinishLeg handles POST /api/v1/orders/:orderID/legs/finish - the rider hands
// off or completes the delivery.
func (s *Server) FinishLeg(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req finishLegRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidErrorWithCause("riderId", err))
	}

	cmd, err := commands.NewFinishLegCommand(orderID, riderID, req.IsFinalDelivery, ctx.Request().Header.Get(idempotencyKeyHeader))
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.finishLegHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// GetOrder handles GET /api/v1/orders/:orderID - current state plus leg history.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// bindLegRequest extracts the common start-leg request parts.
func (s *Server) bindLegRequest(ctx echo.Context) (kernel.UUID, kernel.UUID, string, error) {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, "", err
	}

	var req startLegRequest
	if err = ctx.Bind(&req); err != nil {
		return kernel.UUID{}, kernel.UUID{}, "", errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, "", errs.NewValueIsInvalidErrorWithCause("riderId", err)
	}

	return orderID, riderID, ctx.Request().Header.Get(idempotencyKeyHeader), nil
}

// parseOrderID reads the order id path parameter.
func parseOrderID(ctx echo.Context) (kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	return orderID, nil
}

// writeError maps the error taxonomy to HTTP responses:
//
//	NotFound                 -> 404, precise order id
//	ValidationError          -> 400, precise rejected transition or field
//	Conflict (lock busy)     -> 409, retryable
//	InternalConsistencyError -> 500, opaque (no internal detail leaks)
func (s *Server) writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, ports.ErrLockBusy):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Order is being modified by another request, retry shortly",
		})
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, commands.ErrDedupKeyIsRequired):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		// Ledger inconsistencies and infrastructure failures stay opaque.
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
}
