package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/epping-food-court/api/internal/model"
)

// MenuFilter narrows a menu list request.
type MenuFilter struct {
	Restaurant string
	Category   string
}

// Menu is the menu collection client.
type Menu struct {
	c *Client
}

func NewMenu(c *Client) *Menu {
	return &Menu{c: c}
}

func (s *Menu) List(ctx context.Context, f MenuFilter) ([]model.MenuItem, error) {
	q := url.Values{}
	if f.Restaurant != "" {
		q.Set("restaurant", f.Restaurant)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	var items []model.MenuItem
	if err := s.c.do(ctx, http.MethodGet, "/menu", q, nil, &items); err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	return items, nil
}

func (s *Menu) Get(ctx context.Context, id string) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := s.c.do(ctx, http.MethodGet, "/menu/"+url.PathEscape(id), nil, nil, &item); err != nil {
		return nil, fmt.Errorf("get menu item %s: %w", id, err)
	}
	return &item, nil
}

func (s *Menu) Add(ctx context.Context, item model.MenuItem) (*model.MenuItem, error) {
	var created model.MenuItem
	if err := s.c.do(ctx, http.MethodPost, "/menu", nil, item, &created); err != nil {
		return nil, fmt.Errorf("add menu item: %w", err)
	}
	return &created, nil
}

func (s *Menu) Update(ctx context.Context, id string, item model.MenuItem) (*model.MenuItem, error) {
	var updated model.MenuItem
	if err := s.c.do(ctx, http.MethodPut, "/menu/"+url.PathEscape(id), nil, item, &updated); err != nil {
		return nil, fmt.Errorf("update menu item %s: %w", id, err)
	}
	return &updated, nil
}

func (s *Menu) Delete(ctx context.Context, id string) error {
	if err := s.c.do(ctx, http.MethodDelete, "/menu/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete menu item %s: %w", id, err)
	}
	return nil
}

// SetStock flips an item's in-stock flag.
func (s *Menu) SetStock(ctx context.Context, id string, inStock bool) error {
	body := map[string]bool{"inStock": inStock}
	if err := s.c.do(ctx, http.MethodPatch, "/menu/"+url.PathEscape(id)+"/stock", nil, body, nil); err != nil {
		return fmt.Errorf("set menu item %s stock: %w", id, err)
	}
	return nil
}

func (s *Menu) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := s.c.do(ctx, http.MethodGet, "/menu/categories", nil, nil, &categories); err != nil {
		return nil, fmt.Errorf("list menu categories: %w", err)
	}
	return categories, nil
}
