// Package ticket turns an order into its printed documents: one kitchen
// ticket per brand and one consolidated packing/customer copy.
package ticket

import (
	"sort"

	"github.com/epping-food-court/api/internal/enum"
	"github.com/epping-food-court/api/internal/model"
)

// Line is one aggregated row of a ticket: duplicate item names within a
// bucket are collapsed with their quantities summed.
type Line struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Set is the full document set for one order.
type Set struct {
	// Kitchen holds one aggregated line list per brand present in the
	// order. Kitchen copies carry name and quantity only; prices are a
	// packing-ticket concern.
	Kitchen map[string][]Line `json:"kitchenTickets"`

	// Brands lists the Kitchen keys in canonical print order, so kitchens
	// always receive their tickets in the same sequence.
	Brands []string `json:"brands"`

	// Packing is the cross-brand consolidated list, sorted by name.
	Packing []Line `json:"packingTicket"`

	// Total is the order's stored grand total, printed on the packing
	// copy. It is not recomputed from the lines.
	Total float64 `json:"total"`
}

// Generate aggregates an order's items in a single pass. Items with a
// missing or unrecognised brand land in the "Unknown" bucket. Output is
// deterministic: the same order always yields the same grouping and
// ordering. A zero-item order yields a valid empty set.
func Generate(order *model.Order) Set {
	kitchen := make(map[string][]Line)
	packingIdx := make(map[string]int)
	var packing []Line

	for _, item := range order.Items {
		brand := item.Brand
		if !enum.ValidBrand(brand) {
			brand = enum.BrandUnknown
		}

		merged := false
		for i := range kitchen[brand] {
			if kitchen[brand][i].Name == item.Name {
				kitchen[brand][i].Quantity += item.Quantity
				merged = true
				break
			}
		}
		if !merged {
			kitchen[brand] = append(kitchen[brand], Line{
				Name:      item.Name,
				Quantity:  item.Quantity,
				UnitPrice: item.Price,
			})
		}

		if i, ok := packingIdx[item.Name]; ok {
			packing[i].Quantity += item.Quantity
		} else {
			packingIdx[item.Name] = len(packing)
			packing = append(packing, Line{
				Name:      item.Name,
				Quantity:  item.Quantity,
				UnitPrice: item.Price,
			})
		}
	}

	sort.Slice(packing, func(i, j int) bool {
		return packing[i].Name < packing[j].Name
	})

	var brands []string
	for _, b := range append(append([]string{}, enum.Brands...), enum.BrandUnknown) {
		if len(kitchen[b]) > 0 {
			brands = append(brands, b)
		}
	}

	return Set{
		Kitchen: kitchen,
		Brands:  brands,
		Packing: packing,
		Total:   order.Total,
	}
}
