// Package board maps orders onto the status-keyed kanban columns and
// applies drag-initiated moves back through the state machine.
package board

import (
	"context"
	"sync"

	"github.com/epping-food-court/api/internal/enum"
	"github.com/epping-food-court/api/internal/model"
	"github.com/epping-food-court/api/internal/store"
)

// OrderLister is the read access the board needs. Satisfied by
// *store.Orders.
type OrderLister interface {
	List(ctx context.Context, f store.OrderFilter) ([]model.Order, error)
}

// Transitioner applies a validated status change. Satisfied by
// *lifecycle.Service.
type Transitioner interface {
	Transition(ctx context.Context, orderID, target string) (*model.Order, error)
}

// Columns is the board layout: orders bucketed by status in the fixed
// column order. Cancelled orders are not displayed.
type Columns struct {
	Order   []string                 `json:"order"`
	Columns map[string][]model.Order `json:"columns"`
}

// Board is the kanban controller.
type Board struct {
	orders     OrderLister
	transition Transitioner

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(orders OrderLister, transition Transitioner) *Board {
	return &Board{
		orders:     orders,
		transition: transition,
		locks:      make(map[string]*sync.Mutex),
	}
}

// Load fetches the current order list and buckets it into columns.
func (b *Board) Load(ctx context.Context) (*Columns, error) {
	orders, err := b.orders.List(ctx, store.OrderFilter{})
	if err != nil {
		return nil, err
	}
	return bucket(orders), nil
}

// MoveOrder applies one drag as one status-transition request. The "from"
// column is the caller's possibly stale view and is not trusted; the
// state machine validates against the order's current status. On any
// failure nothing local changes and the previous layout stands. On success
// the full list is reloaded rather than patched in place, which sidesteps
// rollback entirely at the cost of a round trip.
//
// Moves on distinct orders may run concurrently; moves on the same order
// are serialized here, and with no version checks the last completed
// persist wins.
func (b *Board) MoveOrder(ctx context.Context, orderID, from, to string) (*Columns, error) {
	lock := b.orderLock(orderID)
	lock.Lock()
	defer lock.Unlock()

	if from != to {
		if _, err := b.transition.Transition(ctx, orderID, to); err != nil {
			return nil, err
		}
	}
	return b.Load(ctx)
}

func (b *Board) orderLock(orderID string) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()
	lock, ok := b.locks[orderID]
	if !ok {
		lock = &sync.Mutex{}
		b.locks[orderID] = lock
	}
	return lock
}

func bucket(orders []model.Order) *Columns {
	cols := make(map[string][]model.Order, len(enum.BoardColumns))
	for _, status := range enum.BoardColumns {
		cols[status] = []model.Order{}
	}
	for _, order := range orders {
		if _, ok := cols[order.Status]; ok {
			cols[order.Status] = append(cols[order.Status], order)
		}
	}
	return &Columns{Order: enum.BoardColumns, Columns: cols}
}
