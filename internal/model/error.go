package model

// Standard error codes surfaced by storefront operations.
const (
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidMobile      = "INVALID_MOBILE"
	ErrCodeInvalidPincode     = "INVALID_PINCODE"
	ErrCodeInvalidProduct     = "INVALID_PRODUCT"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInvalidCartItem    = "INVALID_CART_ITEM"
	ErrCodeInvalidTotal       = "INVALID_TOTAL"
	ErrCodeInvalidOTP         = "INVALID_OTP"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeInvalidTransition  = "INVALID_TRANSITION"
	ErrCodeNotAssigned        = "NOT_ASSIGNED"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeBackendUnavailable = "BACKEND_UNAVAILABLE"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside a human-readable message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptyCart         = NewDomainError(ErrCodeEmptyCart, "Your cart is empty")
	ErrInvalidMobile     = NewDomainError(ErrCodeInvalidMobile, "Please enter a valid 10-digit mobile number")
	ErrInvalidPincode    = NewDomainError(ErrCodeInvalidPincode, "Please enter a valid 6-digit pincode")
	ErrInvalidQuantity   = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidCartItem   = NewDomainError(ErrCodeInvalidCartItem, "Invalid items in cart. Please refresh and try again.")
	ErrInvalidTotal      = NewDomainError(ErrCodeInvalidTotal, "Invalid order total. Please check your cart.")
	ErrInvalidOTP        = NewDomainError(ErrCodeInvalidOTP, "Invalid delivery OTP")
	ErrOrderNotFound     = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidTransition = NewDomainError(ErrCodeInvalidTransition, "Order status change not allowed")
	ErrNotAssigned       = NewDomainError(ErrCodeNotAssigned, "Order is not assigned to this delivery partner")
)
