package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"kirana-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend implements backend.Client for catalogue tests.
type stubBackend struct {
	products    []model.Product
	categories  []model.Category
	settings    *model.StoreSettings
	productsErr error
	delay       time.Duration
}

func (s *stubBackend) GetProducts(ctx context.Context) ([]model.Product, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.products, s.productsErr
}

func (s *stubBackend) GetCategories(ctx context.Context) ([]model.Category, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.categories, nil
}

func (s *stubBackend) GetSettings(ctx context.Context) (*model.StoreSettings, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.settings, nil
}

func (s *stubBackend) GetCustomer(ctx context.Context, mobile string) (*model.Customer, error) {
	return nil, nil
}
func (s *stubBackend) CreateCustomer(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	return nil, nil
}
func (s *stubBackend) CreateOrder(ctx context.Context, o *model.Order) (*model.Order, error) {
	return nil, nil
}
func (s *stubBackend) GetOrder(ctx context.Context, id string) (*model.Order, error) { return nil, nil }
func (s *stubBackend) ListOrders(ctx context.Context, st model.OrderStatus) ([]model.Order, error) {
	return nil, nil
}
func (s *stubBackend) UpdateOrderStatus(ctx context.Context, id string, st model.OrderStatus) error {
	return nil
}
func (s *stubBackend) AssignDeliveryPartner(ctx context.Context, id, pid, pname string) error {
	return nil
}
func (s *stubBackend) VerifyDeliveryOTP(ctx context.Context, id, otp string) error { return nil }
func (s *stubBackend) SearchProducts(ctx context.Context, q string) ([]model.Product, error) {
	return nil, nil
}

func TestLoad(t *testing.T) {
	stub := &stubBackend{
		products:   []model.Product{{ID: "P001", Name: "Rice", Price: 100, Unit: "kg"}},
		categories: []model.Category{{ID: "C1", Name: "Grains", Order: 1}},
		settings:   &model.StoreSettings{StoreName: "Shree Kirana"},
	}

	loader := NewLoader(stub, zerolog.Nop())
	cat, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, cat.Products, 1)
	assert.Len(t, cat.Categories, 1)
	require.NotNil(t, cat.Settings)
	assert.Equal(t, "Shree Kirana", cat.Settings.StoreName)
}

func TestLoad_FetchesConcurrently(t *testing.T) {
	stub := &stubBackend{delay: 50 * time.Millisecond}
	loader := NewLoader(stub, zerolog.Nop())

	start := time.Now()
	_, err := loader.Load(context.Background())
	require.NoError(t, err)

	// Three 50ms fetches in parallel finish well under 150ms.
	assert.Less(t, time.Since(start), 140*time.Millisecond)
}

func TestLoad_SingleFailureFailsTheLoad(t *testing.T) {
	stub := &stubBackend{productsErr: fmt.Errorf("backend unreachable")}
	loader := NewLoader(stub, zerolog.Nop())

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load catalogue")
}
