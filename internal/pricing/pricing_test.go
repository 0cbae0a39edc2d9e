package pricing

import (
	"testing"

	"kirana-kart/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		expected float64
	}{
		{name: "No discount", price: 100, discount: 0, expected: 100},
		{name: "Ten percent off", price: 100, discount: 10, expected: 90},
		{name: "Full discount", price: 100, discount: 100, expected: 0},
		{name: "Fractional price", price: 49.50, discount: 20, expected: 39.60},
		{name: "Zero price", price: 0, discount: 50, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.Product{ID: "P001", Name: "Rice", Price: tt.price, Discount: tt.discount}
			got := FinalPrice(p)
			assert.InDelta(t, tt.expected, got, 1e-9)
			assert.LessOrEqual(t, got, tt.price)
		})
	}
}

func TestFinalPrice_NeverExceedsPrice(t *testing.T) {
	for discount := 0.0; discount <= 100; discount += 2.5 {
		p := model.Product{ID: "P001", Name: "Rice", Price: 123.45, Discount: discount}
		assert.LessOrEqual(t, FinalPrice(p), p.Price)
		assert.GreaterOrEqual(t, FinalPrice(p), 0.0)
	}
}

func TestCartTotal(t *testing.T) {
	cart := model.Cart{
		{Product: model.Product{ID: "P001", Name: "Rice", Price: 100, Discount: 10, Unit: "kg"}, Quantity: 2},
		{Product: model.Product{ID: "P002", Name: "Oil", Price: 50, Unit: "ltr"}, Quantity: 3},
	}

	// 2*90 + 3*50
	assert.InDelta(t, 330.0, CartTotal(cart), 1e-9)
}

func TestCartTotal_EmptyCart(t *testing.T) {
	assert.Zero(t, CartTotal(model.Cart{}))
	assert.Zero(t, CartTotal(nil))
}

func TestCartTotal_MatchesLineTotals(t *testing.T) {
	cart := model.Cart{
		{Product: model.Product{ID: "A", Name: "A", Price: 12.30, Discount: 5}, Quantity: 4},
		{Product: model.Product{ID: "B", Name: "B", Price: 7.77, Discount: 33}, Quantity: 1},
		{Product: model.Product{ID: "C", Name: "C", Price: 250, Discount: 0}, Quantity: 10},
	}

	var sum float64
	for _, item := range cart {
		sum += LineTotal(item)
	}
	assert.InDelta(t, sum, CartTotal(cart), 1e-9)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "330.00", FormatAmount(330))
	assert.Equal(t, "39.60", FormatAmount(39.6))
	assert.Equal(t, "0.01", FormatAmount(0.005))
}
