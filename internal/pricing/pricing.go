// Package pricing computes customer-facing prices and cart totals.
// All functions are pure; amounts are kept at full float precision and
// rounded only when formatted for display.
package pricing

import (
	"fmt"

	"kirana-kart/internal/model"
)

// FinalPrice returns the discounted unit price of a product.
// A zero discount leaves the price unchanged.
func FinalPrice(p model.Product) float64 {
	return p.Price - p.Price*p.Discount/100
}

// LineTotal returns the discounted total for a single cart line.
func LineTotal(item model.CartItem) float64 {
	return FinalPrice(item.Product) * float64(item.Quantity)
}

// CartTotal returns the discounted total across the whole cart.
// An empty cart totals zero.
func CartTotal(cart model.Cart) float64 {
	var total float64
	for _, item := range cart {
		total += LineTotal(item)
	}
	return total
}

// FormatAmount renders an amount for display with two decimal places.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
