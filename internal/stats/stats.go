// Package stats derives the dashboard metrics snapshot from the current
// order and inventory views. Compute is a pure function of its inputs so
// recomputation is idempotent and cheap.
package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/epping-food-court/api/internal/model"
)

const (
	topItemCount     = 5
	recentOrderCount = 10
	activeWindowDays = 30
)

// Compute scans the order snapshot once and derives the dashboard metrics.
// lowStockItems comes from the inventory collaborator (items at or below
// their minimum). The inputs are treated as read-only and never mutated.
func Compute(orders []model.Order, lowStockItems int, now time.Time) model.StatsSnapshot {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	activeSince := now.AddDate(0, 0, -activeWindowDays)

	totalRevenue := decimal.Zero
	todayRevenue := decimal.Zero
	ordersToday := 0
	activeCustomers := make(map[string]struct{})

	type itemAcc struct {
		quantity int
		revenue  decimal.Decimal
	}
	itemStats := make(map[string]*itemAcc)
	var itemNames []string // first-seen order, keeps the revenue sort stable

	for _, order := range orders {
		total := decimal.NewFromFloat(order.Total)
		totalRevenue = totalRevenue.Add(total)

		if !order.CreatedAt.Before(midnight) {
			ordersToday++
			todayRevenue = todayRevenue.Add(total)
		}

		if !order.CreatedAt.Before(activeSince) {
			activeCustomers[order.CustomerInfo.Email] = struct{}{}
		}

		for _, item := range order.Items {
			acc, ok := itemStats[item.Name]
			if !ok {
				acc = &itemAcc{}
				itemStats[item.Name] = acc
				itemNames = append(itemNames, item.Name)
			}
			acc.quantity += item.Quantity
			lineRevenue := decimal.NewFromFloat(item.Price).
				Mul(decimal.NewFromInt(int64(item.Quantity)))
			acc.revenue = acc.revenue.Add(lineRevenue)
		}
	}

	sort.SliceStable(itemNames, func(i, j int) bool {
		return itemStats[itemNames[i]].revenue.GreaterThan(itemStats[itemNames[j]].revenue)
	})
	if len(itemNames) > topItemCount {
		itemNames = itemNames[:topItemCount]
	}
	topItems := make([]model.TopItem, 0, len(itemNames))
	for _, name := range itemNames {
		acc := itemStats[name]
		topItems = append(topItems, model.TopItem{
			Name:    name,
			Orders:  acc.quantity,
			Revenue: round2(acc.revenue),
		})
	}

	average := decimal.Zero
	if len(orders) > 0 {
		average = totalRevenue.Div(decimal.NewFromInt(int64(len(orders))))
	}

	return model.StatsSnapshot{
		TotalRevenue:      round2(totalRevenue),
		TotalOrders:       len(orders),
		ActiveCustomers:   len(activeCustomers),
		AverageOrderValue: round2(average),
		OrdersToday:       ordersToday,
		RevenueToday:      round2(todayRevenue),
		TopItems:          topItems,
		RecentOrders:      recent(orders),
		LowStockItems:     lowStockItems,
		ComputedAt:        now,
	}
}

// recent returns the newest orders first, at most recentOrderCount of them.
func recent(orders []model.Order) []model.Order {
	sorted := make([]model.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > recentOrderCount {
		sorted = sorted[:recentOrderCount]
	}
	return sorted
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
