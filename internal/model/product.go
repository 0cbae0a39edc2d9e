package model

// Product is the catalogue snapshot embedded in cart items. Price and
// discount are captured at add-to-cart time; later catalogue changes do
// not alter an existing cart until it is re-synced.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	NameGu   string  `json:"name_gu,omitempty"`
	Price    float64 `json:"price"`
	Discount float64 `json:"discount"`
	Unit     string  `json:"unit"`
	ImageURL string  `json:"image_url,omitempty"`
	Category string  `json:"category,omitempty"`
}

// Validate checks the product snapshot at the parse boundary.
func (p *Product) Validate() error {
	if p.ID == "" {
		return NewDomainError(ErrCodeInvalidProduct, "product id is required")
	}
	if p.Name == "" {
		return NewDomainError(ErrCodeInvalidProduct, "product name is required")
	}
	if p.Price < 0 {
		return NewDomainError(ErrCodeInvalidProduct, "product price must not be negative")
	}
	if p.Discount < 0 || p.Discount > 100 {
		return NewDomainError(ErrCodeInvalidProduct, "product discount must be between 0 and 100")
	}
	return nil
}

// Category is a catalogue grouping shown on the storefront home screen.
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameGu string `json:"name_gu,omitempty"`
	Order  int    `json:"order"`
}

// StoreSettings holds storefront-wide settings fetched at startup.
type StoreSettings struct {
	StoreName      string   `json:"store_name"`
	LogoURL        string   `json:"logo_url,omitempty"`
	Banners        []string `json:"banners,omitempty"`
	MinOrderAmount float64  `json:"min_order_amount"`
	DeliveryCharge float64  `json:"delivery_charge"`
}
