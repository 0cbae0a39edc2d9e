package model

// CartItem pairs a product snapshot with the quantity in the cart.
// At most one CartItem exists per product id.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Validate checks a cart item before it is turned into an order item.
func (c *CartItem) Validate() error {
	if c.Product.ID == "" || c.Product.Name == "" {
		return ErrInvalidCartItem
	}
	if c.Quantity <= 0 {
		return ErrInvalidCartItem
	}
	return nil
}

// Cart is the ordered sequence of items for the active customer.
type Cart []CartItem

// Find returns the index of the item holding the given product id,
// or -1 if the product is not in the cart.
func (c Cart) Find(productID string) int {
	for i, item := range c {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart has no items.
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}
