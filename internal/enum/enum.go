package enum

// ── Order lifecycle ──

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses is the forward progression of an order. Cancelled sits
// outside the sequence and is reachable from any non-terminal status.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusDelivered,
}

// BoardColumns is the column layout of the order board, left to right.
// Cancelled orders are not shown on the board.
var BoardColumns = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusDelivered,
}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ── Fulfillment ──

const (
	OrderTypeDelivery = "delivery"
	OrderTypePickup   = "pickup"
)

func ValidOrderType(s string) bool {
	return s == OrderTypeDelivery || s == OrderTypePickup
}

// ── Brands ──

// The three vendor identities sharing the food court. The order of Brands
// is the canonical kitchen-ticket print order.
const (
	BrandOhSmash     = "OhSmash"
	BrandWonderWings = "Wonder Wings"
	BrandOkraGreen   = "Okra Green"

	// BrandUnknown buckets items whose brand tag is missing or unrecognised.
	BrandUnknown = "Unknown"
)

var Brands = []string{BrandOhSmash, BrandWonderWings, BrandOkraGreen}

func ValidBrand(s string) bool {
	switch s {
	case BrandOhSmash, BrandWonderWings, BrandOkraGreen:
		return true
	}
	return false
}

// ── Payment ──

const (
	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"
)
