package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/epping-food-court/api/internal/model"
)

// InventoryFilter narrows an inventory list request.
type InventoryFilter struct {
	Category string
	LowStock bool
}

// Inventory is the inventory collection client.
type Inventory struct {
	c *Client
}

func NewInventory(c *Client) *Inventory {
	return &Inventory{c: c}
}

func (s *Inventory) List(ctx context.Context, f InventoryFilter) ([]model.InventoryItem, error) {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.LowStock {
		q.Set("lowStock", "true")
	}
	var items []model.InventoryItem
	if err := s.c.do(ctx, http.MethodGet, "/inventory", q, nil, &items); err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return items, nil
}

func (s *Inventory) Get(ctx context.Context, id string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := s.c.do(ctx, http.MethodGet, "/inventory/"+url.PathEscape(id), nil, nil, &item); err != nil {
		return nil, fmt.Errorf("get inventory item %s: %w", id, err)
	}
	return &item, nil
}

func (s *Inventory) Add(ctx context.Context, item model.InventoryItem) (*model.InventoryItem, error) {
	var created model.InventoryItem
	if err := s.c.do(ctx, http.MethodPost, "/inventory", nil, item, &created); err != nil {
		return nil, fmt.Errorf("add inventory item: %w", err)
	}
	return &created, nil
}

func (s *Inventory) Update(ctx context.Context, id string, item model.InventoryItem) (*model.InventoryItem, error) {
	var updated model.InventoryItem
	if err := s.c.do(ctx, http.MethodPut, "/inventory/"+url.PathEscape(id), nil, item, &updated); err != nil {
		return nil, fmt.Errorf("update inventory item %s: %w", id, err)
	}
	return &updated, nil
}

func (s *Inventory) Delete(ctx context.Context, id string) error {
	if err := s.c.do(ctx, http.MethodDelete, "/inventory/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete inventory item %s: %w", id, err)
	}
	return nil
}

// PatchStock sets an item's current stock level.
func (s *Inventory) PatchStock(ctx context.Context, id string, currentStock float64) error {
	body := map[string]float64{"currentStock": currentStock}
	if err := s.c.do(ctx, http.MethodPatch, "/inventory/"+url.PathEscape(id)+"/stock", nil, body, nil); err != nil {
		return fmt.Errorf("patch inventory item %s stock: %w", id, err)
	}
	return nil
}

// Statistics returns the inventory aggregates, including the low-stock
// count the dashboard shows.
func (s *Inventory) Statistics(ctx context.Context) (*model.InventoryStatistics, error) {
	var stats model.InventoryStatistics
	if err := s.c.do(ctx, http.MethodGet, "/inventory/stats", nil, nil, &stats); err != nil {
		return nil, fmt.Errorf("inventory statistics: %w", err)
	}
	return &stats, nil
}

// LowStockList returns the items at or below their minimum stock.
func (s *Inventory) LowStockList(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	if err := s.c.do(ctx, http.MethodGet, "/inventory/low-stock", nil, nil, &items); err != nil {
		return nil, fmt.Errorf("low stock list: %w", err)
	}
	return items, nil
}
