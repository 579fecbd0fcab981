package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/epping-food-court/api/internal/model"
)

// OrderFilter narrows an order list request. Zero value means the full
// collection.
type OrderFilter struct {
	Status    string
	OrderType string
	StartDate time.Time
	EndDate   time.Time
}

func (f OrderFilter) empty() bool {
	return f.Status == "" && f.OrderType == "" && f.StartDate.IsZero() && f.EndDate.IsZero()
}

func (f OrderFilter) query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.OrderType != "" {
		q.Set("orderType", f.OrderType)
	}
	if !f.StartDate.IsZero() {
		q.Set("startDate", f.StartDate.Format(time.RFC3339))
	}
	if !f.EndDate.IsZero() {
		q.Set("endDate", f.EndDate.Format(time.RFC3339))
	}
	return q
}

// Orders is the order collection client. Reads of the unfiltered list go
// through the optional cache; every write invalidates it.
type Orders struct {
	c     *Client
	cache *ListCache
}

func NewOrders(c *Client, cache *ListCache) *Orders {
	return &Orders{c: c, cache: cache}
}

// List returns orders matching the filter, oldest first (the data API's
// insertion order).
func (s *Orders) List(ctx context.Context, f OrderFilter) ([]model.Order, error) {
	if f.empty() {
		if orders, ok := s.cache.Get(ctx); ok {
			return orders, nil
		}
	}

	var orders []model.Order
	if err := s.c.do(ctx, http.MethodGet, "/orders", f.query(), nil, &orders); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	if f.empty() {
		s.cache.Set(ctx, orders)
	}
	return orders, nil
}

func (s *Orders) Get(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	if err := s.c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, nil, &order); err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return &order, nil
}

// Create stores a new order. The data API assigns the id and timestamps.
func (s *Orders) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	var created model.Order
	if err := s.c.do(ctx, http.MethodPost, "/orders", nil, order, &created); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.cache.Invalidate(ctx)
	return &created, nil
}

// Update replaces an order's editable fields. Status is owned by
// PatchStatus and is not touched here.
func (s *Orders) Update(ctx context.Context, id string, order model.Order) (*model.Order, error) {
	var updated model.Order
	if err := s.c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id), nil, order, &updated); err != nil {
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}
	s.cache.Invalidate(ctx)
	return &updated, nil
}

// PatchStatus writes a new status; the data API refreshes updatedAt.
func (s *Orders) PatchStatus(ctx context.Context, id, status string) (*model.Order, error) {
	body := map[string]string{"status": status}
	var updated model.Order
	if err := s.c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id)+"/status", nil, body, &updated); err != nil {
		return nil, fmt.Errorf("patch order %s status: %w", id, err)
	}
	s.cache.Invalidate(ctx)
	return &updated, nil
}

// Delete is the administrative escape hatch; normal workflow never
// removes orders.
func (s *Orders) Delete(ctx context.Context, id string) error {
	if err := s.c.do(ctx, http.MethodDelete, "/orders/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	s.cache.Invalidate(ctx)
	return nil
}

// Recent returns the n most recently created orders, newest first.
func (s *Orders) Recent(ctx context.Context, n int) ([]model.Order, error) {
	q := url.Values{"limit": []string{strconv.Itoa(n)}}
	var orders []model.Order
	if err := s.c.do(ctx, http.MethodGet, "/orders/recent", q, nil, &orders); err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	return orders, nil
}

// Pending returns orders awaiting confirmation.
func (s *Orders) Pending(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := s.c.do(ctx, http.MethodGet, "/orders/pending", nil, nil, &orders); err != nil {
		return nil, fmt.Errorf("pending orders: %w", err)
	}
	return orders, nil
}

// Statistics returns the data API's own order aggregates.
func (s *Orders) Statistics(ctx context.Context) (*model.OrderStatistics, error) {
	var stats model.OrderStatistics
	if err := s.c.do(ctx, http.MethodGet, "/orders/stats", nil, nil, &stats); err != nil {
		return nil, fmt.Errorf("order statistics: %w", err)
	}
	return &stats, nil
}
