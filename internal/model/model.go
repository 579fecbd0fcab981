// Package model holds the wire types shared with the remote data API and
// the snapshot types delivered to dashboard subscribers. Field names follow
// the data API's camelCase JSON.
package model

import "time"

// CustomerInfo identifies the ordering customer. Address is set only for
// delivery orders; PaymentMethod is an informational tag.
type CustomerInfo struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

// OrderItem is a single line of an order. Brand tags which kitchen prepares
// the item; an empty or unrecognised brand is grouped under "Unknown" on
// tickets rather than rejected.
type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Brand    string  `json:"brand,omitempty"`
}

// Order is the central record of the fulfillment workflow. The data API
// assigns ID and timestamps on creation and refreshes UpdatedAt on every
// mutation. Total is fixed at creation time as the item sum plus Fees;
// Fees is never recomputed retroactively.
type Order struct {
	ID                  string       `json:"id"`
	Status              string       `json:"status"`
	OrderType           string       `json:"orderType"`
	CustomerInfo        CustomerInfo `json:"customerInfo"`
	Items               []OrderItem  `json:"items"`
	Total               float64      `json:"total"`
	Fees                float64      `json:"fees"`
	SpecialInstructions string       `json:"specialInstructions,omitempty"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// Ref returns the short order reference printed on tickets and shown on
// the board (the last 8 characters of the id).
func (o *Order) Ref() string {
	if len(o.ID) > 8 {
		return o.ID[len(o.ID)-8:]
	}
	if o.ID == "" {
		return "N/A"
	}
	return o.ID
}

// MenuItem is a storefront menu entry owned by the menu collaborator.
type MenuItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Restaurant string  `json:"restaurant"`
	Category   string  `json:"category"`
	InStock    bool    `json:"inStock"`
}

// InventoryItem is a stock record owned by the inventory collaborator.
// An item is low on stock when CurrentStock <= MinStock.
type InventoryItem struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	CurrentStock float64   `json:"currentStock"`
	MinStock     float64   `json:"minStock"`
	MaxStock     float64   `json:"maxStock"`
	Unit         string    `json:"unit"`
	Supplier     string    `json:"supplier"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

func (i *InventoryItem) LowStock() bool {
	return i.CurrentStock <= i.MinStock
}

// DayHours is one weekday's opening window; "Closed" marks a closed day.
type DayHours struct {
	Day   string `json:"day"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Settings is the single business settings document.
type Settings struct {
	Hours       map[string][]DayHours `json:"hours"`
	DeliveryFee float64               `json:"deliveryFee"`
	ServiceFee  float64               `json:"serviceFee"`
	Features    map[string]bool       `json:"features"`
}

// TopItem is one row of the top-sellers table: total quantity ordered and
// total line revenue for an item name.
type TopItem struct {
	Name    string  `json:"name"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// StatsSnapshot is the derived dashboard metrics object. It has no
// identity beyond "most recent computation".
type StatsSnapshot struct {
	TotalRevenue      float64   `json:"totalRevenue"`
	TotalOrders       int       `json:"totalOrders"`
	ActiveCustomers   int       `json:"activeCustomers"`
	AverageOrderValue float64   `json:"averageOrderValue"`
	OrdersToday       int       `json:"ordersToday"`
	RevenueToday      float64   `json:"revenueToday"`
	TopItems          []TopItem `json:"topItems"`
	RecentOrders      []Order   `json:"recentOrders"`
	LowStockItems     int       `json:"lowStockItems"`
	ComputedAt        time.Time `json:"computedAt"`
}

// OrderStatistics is the data API's order aggregate endpoint response.
type OrderStatistics struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
	ByType   map[string]int `json:"byType"`
}

// InventoryStatistics is the data API's inventory aggregate endpoint
// response.
type InventoryStatistics struct {
	TotalItems    int     `json:"totalItems"`
	LowStockItems int     `json:"lowStockItems"`
	TotalValue    float64 `json:"totalValue"`
}
