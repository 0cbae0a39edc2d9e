// Package backend is the typed client for the external storefront API.
// All payloads crossing this boundary are decoded into model types and
// validated; malformed shapes are rejected rather than propagated.
package backend

import (
	"context"

	"kirana-kart/internal/model"
)

// Client defines the logical operations the storefront core needs from
// the external backend.
type Client interface {
	// GetCustomer looks a customer up by mobile number. Returns
	// (nil, nil) when no customer exists for that mobile.
	GetCustomer(ctx context.Context, mobile string) (*model.Customer, error)

	// CreateCustomer creates a customer record and returns it with its
	// generated id.
	CreateCustomer(ctx context.Context, customer *model.Customer) (*model.Customer, error)

	// CreateOrder persists a new order and returns the created order,
	// including its generated id and delivery OTP.
	CreateOrder(ctx context.Context, order *model.Order) (*model.Order, error)

	// GetOrder fetches the canonical state of an order.
	GetOrder(ctx context.Context, id string) (*model.Order, error)

	// ListOrders fetches orders, optionally filtered by status
	// (empty status means all).
	ListOrders(ctx context.Context, status model.OrderStatus) ([]model.Order, error)

	// UpdateOrderStatus asks the backend to move an order to the given
	// status.
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error

	// AssignDeliveryPartner writes the delivery partner onto the order.
	AssignDeliveryPartner(ctx context.Context, id, partnerID, partnerName string) error

	// VerifyDeliveryOTP submits the customer's delivery OTP. Succeeds
	// only on exact match, transitioning the order to delivered.
	VerifyDeliveryOTP(ctx context.Context, id, otp string) error

	// GetProducts fetches the full product catalogue.
	GetProducts(ctx context.Context) ([]model.Product, error)

	// SearchProducts runs a catalogue search.
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)

	// GetCategories fetches the catalogue categories.
	GetCategories(ctx context.Context) ([]model.Category, error)

	// GetSettings fetches storefront-wide settings.
	GetSettings(ctx context.Context) (*model.StoreSettings, error)
}
