// Package store provides the device-local key-value persistence used
// by the cart and checkout session. It replaces the browser's local
// storage with an injectable interface so tests can run in memory and
// kiosk deployments can share state through Postgres.
package store

import "context"

// Well-known storage keys.
const (
	KeyCart           = "cart"
	KeyCustomerMobile = "customer_mobile"
)

// Store is a durable key-value map for small JSON payloads.
type Store interface {
	// Load returns the value stored under key, or (nil, nil) if the
	// key is absent.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save persists value under key, replacing any previous value.
	Save(ctx context.Context, key string, value []byte) error

	// Delete removes key entirely. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, key string) error
}
