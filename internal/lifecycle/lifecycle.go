// Package lifecycle owns the order status state machine: which transitions
// are legal and the service that applies them through the data API.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/epping-food-court/api/internal/enum"
	"github.com/epping-food-court/api/internal/model"
)

var (
	// ErrInvalidTransition rejects a move outside the transition table.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnknownStatus rejects a target that is not a defined status.
	ErrUnknownStatus = errors.New("unknown order status")
)

// transitions maps each status to its allowed successors. Delivered and
// cancelled are terminal.
var transitions = map[string][]string{
	enum.OrderStatusPending:   {enum.OrderStatusConfirmed, enum.OrderStatusCancelled},
	enum.OrderStatusConfirmed: {enum.OrderStatusPreparing, enum.OrderStatusCancelled},
	enum.OrderStatusPreparing: {enum.OrderStatusReady, enum.OrderStatusCancelled},
	enum.OrderStatusReady:     {enum.OrderStatusDelivered, enum.OrderStatusCancelled},
	enum.OrderStatusDelivered: {},
	enum.OrderStatusCancelled: {},
}

// CanTransition reports whether moving from one status to the other is
// in the transition table.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Next returns the forward step from the given status, if one exists.
// Cancellation is never the forward step.
func Next(status string) (string, bool) {
	for _, next := range transitions[status] {
		if next != enum.OrderStatusCancelled {
			return next, true
		}
	}
	return "", false
}

// Terminal reports whether no transition leaves the given status.
func Terminal(status string) bool {
	return len(transitions[status]) == 0
}

// OrderStore is the order access the service needs. Satisfied by
// *store.Orders.
type OrderStore interface {
	Get(ctx context.Context, id string) (*model.Order, error)
	PatchStatus(ctx context.Context, id, status string) (*model.Order, error)
}

// ChangeNotifier schedules a stats recompute. Satisfied by *bus.Bus.
type ChangeNotifier interface {
	Notify()
}

// Service validates and applies status transitions.
type Service struct {
	store OrderStore
	bus   ChangeNotifier
	log   *slog.Logger
}

func NewService(store OrderStore, bus ChangeNotifier, log *slog.Logger) *Service {
	return &Service{store: store, bus: bus, log: log}
}

// Transition moves an order to target. The transition table is checked
// against the order's current status as the data API reports it, not
// against whatever column the caller dragged from, so a stale board view
// cannot force an illegal move. On success the bus is notified.
func (s *Service) Transition(ctx context.Context, orderID, target string) (*model.Order, error) {
	if !enum.ValidOrderStatus(target) {
		return nil, fmt.Errorf("%q: %w", target, ErrUnknownStatus)
	}

	order, err := s.store.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(order.Status, target) {
		return nil, fmt.Errorf("%s to %s: %w", order.Status, target, ErrInvalidTransition)
	}

	updated, err := s.store.PatchStatus(ctx, orderID, target)
	if err != nil {
		return nil, err
	}

	s.log.Info("order status changed",
		"order", updated.Ref(), "from", order.Status, "to", target)
	s.bus.Notify()
	return updated, nil
}
