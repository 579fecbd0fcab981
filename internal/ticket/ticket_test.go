package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epping-food-court/api/internal/enum"
	"github.com/epping-food-court/api/internal/model"
)

func item(name string, price float64, qty int, brand string) model.OrderItem {
	return model.OrderItem{Name: name, Price: price, Quantity: qty, Brand: brand}
}

func TestGenerate_SplitsByBrand(t *testing.T) {
	order := &model.Order{
		Total: 31.00,
		Items: []model.OrderItem{
			item("Smash Burger", 9.50, 2, enum.BrandOhSmash),
			item("Buffalo Wings", 8.00, 1, enum.BrandWonderWings),
			item("Okra Fries", 4.00, 1, enum.BrandOkraGreen),
		},
	}

	set := Generate(order)

	require.Len(t, set.Kitchen, 3)
	assert.Equal(t, []string{enum.BrandOhSmash, enum.BrandWonderWings, enum.BrandOkraGreen}, set.Brands)
	assert.Equal(t, []Line{{Name: "Smash Burger", Quantity: 2, UnitPrice: 9.50}}, set.Kitchen[enum.BrandOhSmash])
	assert.Equal(t, 31.00, set.Total)
}

func TestGenerate_MergesDuplicateLines(t *testing.T) {
	order := &model.Order{
		Items: []model.OrderItem{
			item("Buffalo Wings", 8.00, 2, enum.BrandWonderWings),
			item("Lemon Pepper Wings", 8.50, 1, enum.BrandWonderWings),
			item("Buffalo Wings", 8.00, 3, enum.BrandWonderWings),
		},
	}

	set := Generate(order)

	require.Len(t, set.Kitchen[enum.BrandWonderWings], 2)
	assert.Equal(t, Line{Name: "Buffalo Wings", Quantity: 5, UnitPrice: 8.00}, set.Kitchen[enum.BrandWonderWings][0])
}

func TestGenerate_QuantityConservation(t *testing.T) {
	order := &model.Order{
		Items: []model.OrderItem{
			item("Smash Burger", 9.50, 2, enum.BrandOhSmash),
			item("Buffalo Wings", 8.00, 3, enum.BrandWonderWings),
			item("Smash Burger", 9.50, 1, enum.BrandOhSmash),
			item("Mystery Dish", 5.00, 4, "Popup Kitchen"),
		},
	}

	set := Generate(order)

	input := 0
	for _, it := range order.Items {
		input += it.Quantity
	}
	kitchen := 0
	for _, lines := range set.Kitchen {
		for _, l := range lines {
			kitchen += l.Quantity
		}
	}
	packing := 0
	for _, l := range set.Packing {
		packing += l.Quantity
	}

	assert.Equal(t, input, kitchen, "kitchen tickets must conserve quantities")
	assert.Equal(t, input, packing, "packing ticket must conserve quantities")
}

func TestGenerate_UnknownBrandBucket(t *testing.T) {
	order := &model.Order{
		Items: []model.OrderItem{
			item("Mystery Dish", 5.00, 1, "Popup Kitchen"),
			item("Nameless Special", 6.00, 1, ""),
		},
	}

	set := Generate(order)

	require.Contains(t, set.Kitchen, enum.BrandUnknown)
	assert.Len(t, set.Kitchen[enum.BrandUnknown], 2)
	assert.Equal(t, []string{enum.BrandUnknown}, set.Brands)
}

func TestGenerate_BrandOrderIsCanonical(t *testing.T) {
	// Items arrive in reverse brand order; the print order must not follow.
	order := &model.Order{
		Items: []model.OrderItem{
			item("Okra Fries", 4.00, 1, enum.BrandOkraGreen),
			item("Buffalo Wings", 8.00, 1, enum.BrandWonderWings),
			item("Smash Burger", 9.50, 1, enum.BrandOhSmash),
		},
	}

	set := Generate(order)
	assert.Equal(t, []string{enum.BrandOhSmash, enum.BrandWonderWings, enum.BrandOkraGreen}, set.Brands)
}

func TestGenerate_PackingSortedByName(t *testing.T) {
	order := &model.Order{
		Items: []model.OrderItem{
			item("Zesty Okra", 4.50, 1, enum.BrandOkraGreen),
			item("Apple Slaw", 3.00, 1, enum.BrandOhSmash),
			item("Mango Wings", 8.00, 1, enum.BrandWonderWings),
		},
	}

	set := Generate(order)

	require.Len(t, set.Packing, 3)
	assert.Equal(t, "Apple Slaw", set.Packing[0].Name)
	assert.Equal(t, "Mango Wings", set.Packing[1].Name)
	assert.Equal(t, "Zesty Okra", set.Packing[2].Name)
}

func TestGenerate_Deterministic(t *testing.T) {
	order := &model.Order{
		Total: 42.00,
		Items: []model.OrderItem{
			item("Smash Burger", 9.50, 2, enum.BrandOhSmash),
			item("Buffalo Wings", 8.00, 1, enum.BrandWonderWings),
			item("Smash Burger", 9.50, 1, enum.BrandOhSmash),
		},
	}

	first := Generate(order)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Generate(order))
	}
}

func TestGenerate_EmptyOrder(t *testing.T) {
	set := Generate(&model.Order{Total: 0})

	assert.Empty(t, set.Kitchen)
	assert.Empty(t, set.Brands)
	assert.Empty(t, set.Packing)
	assert.Zero(t, set.Total)
}

func TestGenerate_TotalIsStoredNotRecomputed(t *testing.T) {
	// The stored total includes fees the line items do not carry.
	order := &model.Order{
		Total: 13.50,
		Items: []model.OrderItem{
			item("Smash Burger", 9.50, 1, enum.BrandOhSmash),
		},
	}

	set := Generate(order)
	assert.Equal(t, 13.50, set.Total)
}
