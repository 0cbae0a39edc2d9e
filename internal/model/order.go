package model

import (
	"regexp"
	"time"
)

// OrderStatus is the fulfillment pipeline state of an order.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusPacked         OrderStatus = "packed"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
)

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a known pipeline status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPacked, StatusOutForDelivery, StatusDelivered:
		return true
	}
	return false
}

// IsTerminal reports whether the order has reached the end of the pipeline.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered
}

// Delivery OTPs are exactly 4 digits.
var otpPattern = regexp.MustCompile(`^\d{4}$`)

// ValidOTP reports whether s is a well-formed delivery OTP.
func ValidOTP(s string) bool {
	return otpPattern.MatchString(s)
}

// OrderItem is an immutable line item snapshot taken from the cart at
// order creation time.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
}

// Validate guards against corrupted cart data crossing into an order.
func (i *OrderItem) Validate() error {
	if i.ProductID == "" || i.ProductName == "" {
		return ErrInvalidCartItem
	}
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if i.Price < 0 {
		return NewDomainError(ErrCodeInvalidProduct, "item price must not be negative")
	}
	if i.Discount < 0 || i.Discount > 100 {
		return NewDomainError(ErrCodeInvalidProduct, "item discount must be between 0 and 100")
	}
	return nil
}

// Order is a persisted customer order. It is created once by checkout
// and afterwards mutated only by admin/delivery actors through status
// transitions; the cart side never touches it again.
type Order struct {
	ID string `json:"id,omitempty"`

	// ClientOrderID is generated by the storefront before the first
	// creation attempt and resent unchanged on retries, so the backend
	// can deduplicate a submission that succeeded but whose response
	// was lost.
	ClientOrderID string `json:"client_order_id,omitempty"`

	CustomerID          string      `json:"customer_id"`
	CustomerInfo        Customer    `json:"customer_info"`
	Items               []OrderItem `json:"items"`
	TotalAmount         float64     `json:"total_amount"`
	Status              OrderStatus `json:"status"`
	DeliveryPartnerID   string      `json:"delivery_partner_id,omitempty"`
	DeliveryPartnerName string      `json:"delivery_partner_name,omitempty"`
	DeliveryOTP         string      `json:"delivery_otp,omitempty"`
	CreatedAt           time.Time   `json:"created_at,omitempty"`
}

// Validate checks an order received from the backend boundary.
func (o *Order) Validate() error {
	if o.ID == "" {
		return NewDomainError(ErrCodeInternalError, "order id is required")
	}
	if !o.Status.IsValid() {
		return NewDomainError(ErrCodeInternalError, "unknown order status: "+string(o.Status))
	}
	if len(o.Items) == 0 {
		return NewDomainError(ErrCodeInternalError, "order has no items")
	}
	for i := range o.Items {
		if err := o.Items[i].Validate(); err != nil {
			return err
		}
	}
	if o.TotalAmount <= 0 {
		return ErrInvalidTotal
	}
	return nil
}

// DeliveryPartner is a delivery actor registered by the admin.
type DeliveryPartner struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}
