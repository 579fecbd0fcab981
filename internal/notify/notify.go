// Package notify builds the normalized order-summary payloads sent to the
// notification collaborator (customer confirmations and restaurant
// alerts). Delivery is strictly best-effort: a failed notification is
// logged and swallowed, never surfaced to the order flow that caused it.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/epping-food-court/api/internal/enum"
	"github.com/epping-food-court/api/internal/model"
)

// SummaryItem is one line of a notification payload.
type SummaryItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Summary is the normalized order payload the mailer consumes.
type Summary struct {
	OrderID             string        `json:"orderId"`
	CustomerName        string        `json:"customerName"`
	CustomerEmail       string        `json:"customerEmail"`
	CustomerPhone       string        `json:"customerPhone"`
	OrderType           string        `json:"orderType"`
	PaymentMethod       string        `json:"paymentMethod,omitempty"`
	Items               []SummaryItem `json:"items"`
	Total               float64       `json:"total"`
	DeliveryAddress     string        `json:"deliveryAddress,omitempty"`
	SpecialInstructions string        `json:"specialInstructions,omitempty"`
	CreatedAt           time.Time     `json:"createdAt"`
}

// NewSummary normalizes an order into its notification payload.
func NewSummary(order *model.Order) Summary {
	items := make([]SummaryItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, SummaryItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	s := Summary{
		OrderID:             order.ID,
		CustomerName:        order.CustomerInfo.Name,
		CustomerEmail:       order.CustomerInfo.Email,
		CustomerPhone:       order.CustomerInfo.Phone,
		OrderType:           order.OrderType,
		PaymentMethod:       order.CustomerInfo.PaymentMethod,
		Items:               items,
		Total:               order.Total,
		SpecialInstructions: order.SpecialInstructions,
		CreatedAt:           order.CreatedAt,
	}
	if order.OrderType == enum.OrderTypeDelivery {
		s.DeliveryAddress = order.CustomerInfo.Address
	}
	return s
}

// Notifier delivers the two notification kinds.
type Notifier interface {
	// SendOrderConfirmation notifies the customer their order was placed.
	SendOrderConfirmation(ctx context.Context, s Summary) error

	// SendRestaurantAlert tells the restaurant a new order arrived.
	SendRestaurantAlert(ctx context.Context, s Summary) error

	Close() error
}

// LogNotifier is the fallback when no broker is configured: payloads are
// logged so nothing is silently dropped in development.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendOrderConfirmation(_ context.Context, s Summary) error {
	n.log.Info("order confirmation (log only)",
		"order", s.OrderID, "email", s.CustomerEmail, "total", s.Total)
	return nil
}

func (n *LogNotifier) SendRestaurantAlert(_ context.Context, s Summary) error {
	n.log.Info("restaurant alert (log only)",
		"order", s.OrderID, "type", s.OrderType, "total", s.Total)
	return nil
}

func (n *LogNotifier) Close() error { return nil }
