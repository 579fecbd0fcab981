package notify

import (
	"testing"
	"time"

	"github.com/epping-food-court/api/internal/enum"
	"github.com/epping-food-court/api/internal/model"
)

func sampleOrder(orderType string) *model.Order {
	return &model.Order{
		ID:        "64f1c2d3e4a5b6c7order123",
		OrderType: orderType,
		CustomerInfo: model.CustomerInfo{
			Name:          "Alice Example",
			Phone:         "07700900000",
			Email:         "alice@example.com",
			Address:       "1 High Street, Epping",
			PaymentMethod: enum.PaymentMethodCard,
		},
		Items: []model.OrderItem{
			{Name: "Smash Burger", Price: 9.50, Quantity: 2, Brand: enum.BrandOhSmash},
			{Name: "Okra Fries", Price: 4.00, Quantity: 1, Brand: enum.BrandOkraGreen},
		},
		Total:               24.50,
		SpecialInstructions: "extra napkins",
		CreatedAt:           time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewSummary(t *testing.T) {
	s := NewSummary(sampleOrder(enum.OrderTypeDelivery))

	if s.OrderID != "64f1c2d3e4a5b6c7order123" {
		t.Errorf("order id = %q", s.OrderID)
	}
	if s.CustomerName != "Alice Example" || s.CustomerEmail != "alice@example.com" {
		t.Error("customer contact not carried over")
	}
	if len(s.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(s.Items))
	}
	if s.Items[0] != (SummaryItem{Name: "Smash Burger", Quantity: 2, Price: 9.50}) {
		t.Errorf("first item = %+v", s.Items[0])
	}
	if s.Total != 24.50 {
		t.Errorf("total = %.2f, want 24.50", s.Total)
	}
	if s.SpecialInstructions != "extra napkins" {
		t.Errorf("instructions = %q", s.SpecialInstructions)
	}
}

func TestNewSummary_DeliveryCarriesAddress(t *testing.T) {
	s := NewSummary(sampleOrder(enum.OrderTypeDelivery))
	if s.DeliveryAddress != "1 High Street, Epping" {
		t.Errorf("delivery address = %q", s.DeliveryAddress)
	}
}

func TestNewSummary_PickupOmitsAddress(t *testing.T) {
	s := NewSummary(sampleOrder(enum.OrderTypePickup))
	if s.DeliveryAddress != "" {
		t.Errorf("pickup summary must not carry an address, got %q", s.DeliveryAddress)
	}
}
