package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// Payments is the payment collaborator client. The provider is a black
// box: we ask for an intent and hand its confirmation handle back to the
// storefront.
type Payments struct {
	c *Client
}

func NewPayments(c *Client) *Payments {
	return &Payments{c: c}
}

type createIntentRequest struct {
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
}

type createIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreateIntent registers a payment intent for the given amount (major
// currency units) and returns the client-usable confirmation handle.
func (s *Payments) CreateIntent(ctx context.Context, amount float64, currency string) (string, error) {
	pence := decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	req := createIntentRequest{Amount: pence, Currency: currency}

	var resp createIntentResponse
	if err := s.c.do(ctx, http.MethodPost, "/payments/create-payment-intent", nil, req, &resp); err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return resp.ClientSecret, nil
}
