package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/epping-food-court/api/internal/model"
)

// Default fees applied when the settings document is unavailable.
const (
	DefaultDeliveryFee = 2.50
	DefaultServiceFee  = 1.50
)

// Settings is the client for the single business settings document.
type Settings struct {
	c *Client
}

func NewSettings(c *Client) *Settings {
	return &Settings{c: c}
}

func (s *Settings) Get(ctx context.Context) (*model.Settings, error) {
	var doc model.Settings
	if err := s.c.do(ctx, http.MethodGet, "/settings", nil, nil, &doc); err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &doc, nil
}

func (s *Settings) Replace(ctx context.Context, doc model.Settings) (*model.Settings, error) {
	var updated model.Settings
	if err := s.c.do(ctx, http.MethodPut, "/settings", nil, doc, &updated); err != nil {
		return nil, fmt.Errorf("replace settings: %w", err)
	}
	return &updated, nil
}

// Reset restores the settings document to its defaults.
func (s *Settings) Reset(ctx context.Context) (*model.Settings, error) {
	var doc model.Settings
	if err := s.c.do(ctx, http.MethodPost, "/settings/reset", nil, nil, &doc); err != nil {
		return nil, fmt.Errorf("reset settings: %w", err)
	}
	return &doc, nil
}
