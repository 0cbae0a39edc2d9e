package model

import "regexp"

// Indian mobile numbers: 10 digits, leading digit 6-9.
var mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// Indian postal codes: exactly 6 digits.
var pincodePattern = regexp.MustCompile(`^\d{6}$`)

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Customer identifies a shop by its owner's mobile number. The mobile
// is the natural key: customers are created on first checkout and
// looked up by mobile on every subsequent one.
type Customer struct {
	ID             string   `json:"id,omitempty"`
	ShopName       string   `json:"shop_name"`
	OwnerName      string   `json:"owner_name"`
	Mobile         string   `json:"mobile"`
	Address        string   `json:"address"`
	Pincode        string   `json:"pincode,omitempty"`
	Location       Location `json:"location"`
	DeliveryOption string   `json:"delivery_option,omitempty"`
}

// Validate checks the fields required to place an order.
func (c *Customer) Validate() error {
	if c.ShopName == "" {
		return NewDomainError(ErrCodeMissingField, "Shop name is required")
	}
	if c.OwnerName == "" {
		return NewDomainError(ErrCodeMissingField, "Owner name is required")
	}
	if c.Mobile == "" {
		return NewDomainError(ErrCodeMissingField, "Mobile number is required")
	}
	if c.Address == "" {
		return NewDomainError(ErrCodeMissingField, "Address is required")
	}
	if !mobilePattern.MatchString(c.Mobile) {
		return ErrInvalidMobile
	}
	if c.Pincode != "" && !pincodePattern.MatchString(c.Pincode) {
		return ErrInvalidPincode
	}
	return nil
}

// ValidMobile reports whether s is an acceptable mobile number.
func ValidMobile(s string) bool {
	return mobilePattern.MatchString(s)
}
