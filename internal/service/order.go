// Package service implements order intake: checkout and in-house order
// taking, plus the admin "edit order" operation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/epping-food-court/api/internal/enum"
	"github.com/epping-food-court/api/internal/model"
	"github.com/epping-food-court/api/internal/notify"
	"github.com/epping-food-court/api/internal/store"
)

const notifyTimeout = 10 * time.Second

// Errors returned by the order service. All are caught before any remote
// write is attempted.
var (
	ErrMissingName      = errors.New("customer name is required")
	ErrMissingPhone     = errors.New("customer phone is required")
	ErrMissingEmail     = errors.New("customer email is required")
	ErrMissingAddress   = errors.New("delivery address is required for delivery orders")
	ErrEmptyItems       = errors.New("items are required")
	ErrInvalidQuantity  = errors.New("quantity must be > 0")
	ErrInvalidOrderType = errors.New("invalid order type")
)

// ValidationError reports whether err is one of the pre-flight validation
// failures, as opposed to a remote or payment failure.
func ValidationError(err error) bool {
	return errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrMissingPhone) ||
		errors.Is(err, ErrMissingEmail) ||
		errors.Is(err, ErrMissingAddress) ||
		errors.Is(err, ErrEmptyItems) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidOrderType)
}

// OrderStore is the order access the service needs. Satisfied by
// *store.Orders.
type OrderStore interface {
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	Update(ctx context.Context, id string, order model.Order) (*model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
}

// SettingsReader fetches the business settings document. Satisfied by
// *store.Settings.
type SettingsReader interface {
	Get(ctx context.Context) (*model.Settings, error)
}

// PaymentIntenter registers a payment intent with the payment
// collaborator. Satisfied by *store.Payments.
type PaymentIntenter interface {
	CreateIntent(ctx context.Context, amount float64, currency string) (string, error)
}

// ChangeNotifier schedules a stats recompute. Satisfied by *bus.Bus.
type ChangeNotifier interface {
	Notify()
}

// OrderService handles order intake business logic.
type OrderService struct {
	store    OrderStore
	settings SettingsReader
	payments PaymentIntenter
	notifier notify.Notifier
	bus      ChangeNotifier
	log      *slog.Logger
}

func NewOrderService(store OrderStore, settings SettingsReader, payments PaymentIntenter,
	notifier notify.Notifier, bus ChangeNotifier, log *slog.Logger) *OrderService {
	return &OrderService{
		store:    store,
		settings: settings,
		payments: payments,
		notifier: notifier,
		bus:      bus,
		log:      log,
	}
}

// CreateOrderRequest is the validated input for placing an order.
type CreateOrderRequest struct {
	OrderType           string
	Customer            model.CustomerInfo
	Items               []model.OrderItem
	SpecialInstructions string
}

// CreateOrderResult is the created order plus the payment confirmation
// handle when a card intent was opened.
type CreateOrderResult struct {
	Order         *model.Order
	PaymentSecret string
}

// CreateOrder validates, prices and persists a new order with status
// pending. Fees are computed once here and stored on the order; card
// payments open an intent before anything is persisted (intent failure
// aborts the order). Notifications go out after the write, fire and
// forget.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	if err := validateCustomer(req.OrderType, req.Customer); err != nil {
		return nil, err
	}
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}

	fees := s.fees(ctx, req.OrderType)
	subtotal := itemSum(req.Items)
	total := subtotal.Add(fees).Round(2)

	var paymentSecret string
	if req.Customer.PaymentMethod == enum.PaymentMethodCard {
		secret, err := s.payments.CreateIntent(ctx, total.InexactFloat64(), "gbp")
		if err != nil {
			return nil, err
		}
		paymentSecret = secret
	}

	order := model.Order{
		Status:              enum.OrderStatusPending,
		OrderType:           req.OrderType,
		CustomerInfo:        req.Customer,
		Items:               req.Items,
		Total:               total.InexactFloat64(),
		Fees:                fees.InexactFloat64(),
		SpecialInstructions: req.SpecialInstructions,
	}

	created, err := s.store.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	s.dispatchNotifications(created)
	s.bus.Notify()

	s.log.Info("order created",
		"order", created.Ref(), "type", created.OrderType, "total", created.Total)
	return &CreateOrderResult{Order: created, PaymentSecret: paymentSecret}, nil
}

// EditOrderRequest replaces an order's editable fields. Status is never
// touched here; that is the state machine's job.
type EditOrderRequest struct {
	OrderType           string
	Customer            model.CustomerInfo
	Items               []model.OrderItem
	SpecialInstructions string
}

// EditOrder rewrites customer info, items and instructions. The total is
// recomputed from the new items plus the fee amount fixed at creation;
// fees are never recomputed retroactively.
func (s *OrderService) EditOrder(ctx context.Context, id string, req EditOrderRequest) (*model.Order, error) {
	if err := validateCustomer(req.OrderType, req.Customer); err != nil {
		return nil, err
	}
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}

	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fees := decimal.NewFromFloat(existing.Fees)
	total := itemSum(req.Items).Add(fees).Round(2)

	updated := *existing
	updated.OrderType = req.OrderType
	updated.CustomerInfo = req.Customer
	updated.Items = req.Items
	updated.SpecialInstructions = req.SpecialInstructions
	updated.Total = total.InexactFloat64()

	saved, err := s.store.Update(ctx, id, updated)
	if err != nil {
		return nil, err
	}

	s.bus.Notify()
	return saved, nil
}

// fees returns the applicable fees for the fulfillment type: service fee
// always, delivery fee for delivery orders. When the settings document is
// unreachable the defaults apply, so checkout keeps working through a
// settings outage.
func (s *OrderService) fees(ctx context.Context, orderType string) decimal.Decimal {
	deliveryFee := decimal.NewFromFloat(store.DefaultDeliveryFee)
	serviceFee := decimal.NewFromFloat(store.DefaultServiceFee)

	if doc, err := s.settings.Get(ctx); err != nil {
		s.log.Warn("settings unavailable, using default fees", "error", err)
	} else {
		deliveryFee = decimal.NewFromFloat(doc.DeliveryFee)
		serviceFee = decimal.NewFromFloat(doc.ServiceFee)
	}

	fees := serviceFee
	if orderType == enum.OrderTypeDelivery {
		fees = fees.Add(deliveryFee)
	}
	return fees
}

// dispatchNotifications sends the confirmation and restaurant alert in
// the background. Failures are logged and swallowed: notification
// delivery must never fail or roll back the order.
func (s *OrderService) dispatchNotifications(order *model.Order) {
	summary := notify.NewSummary(order)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.SendOrderConfirmation(ctx, summary); err != nil {
			s.log.Warn("order confirmation failed", "order", order.Ref(), "error", err)
		}
		if err := s.notifier.SendRestaurantAlert(ctx, summary); err != nil {
			s.log.Warn("restaurant alert failed", "order", order.Ref(), "error", err)
		}
	}()
}

func validateCustomer(orderType string, c model.CustomerInfo) error {
	if !enum.ValidOrderType(orderType) {
		return fmt.Errorf("%q: %w", orderType, ErrInvalidOrderType)
	}
	if c.Name == "" {
		return ErrMissingName
	}
	if c.Phone == "" {
		return ErrMissingPhone
	}
	if c.Email == "" {
		return ErrMissingEmail
	}
	if orderType == enum.OrderTypeDelivery && c.Address == "" {
		return ErrMissingAddress
	}
	return nil
}

func validateItems(items []model.OrderItem) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	for i, item := range items {
		if item.Quantity <= 0 {
			return fmt.Errorf("item[%d]: %w", i, ErrInvalidQuantity)
		}
	}
	return nil
}

func itemSum(items []model.OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(decimal.NewFromFloat(item.Price).
			Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}
