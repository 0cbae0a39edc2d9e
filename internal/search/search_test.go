package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"kirana-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend implements backend.Client for search tests; only
// SearchProducts is exercised.
type stubBackend struct {
	mu      sync.Mutex
	queries []string
	delay   time.Duration
}

func (s *stubBackend) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return []model.Product{{ID: "P-" + query, Name: query, Price: 10, Unit: "kg"}}, nil
}

func (s *stubBackend) seen() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.queries))
	copy(out, s.queries)
	return out
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
func (s *stubBackend) GetProducts(ctx context.Context) ([]model.Product, error)    { return nil, nil }
func (s *stubBackend) GetCategories(ctx context.Context) ([]model.Category, error) { return nil, nil }
func (s *stubBackend) GetSettings(ctx context.Context) (*model.StoreSettings, error) {
	return nil, nil
}

func TestDebouncer_DeliversResult(t *testing.T) {
	stub := &stubBackend{}
	d := NewDebouncer(stub, 5*time.Millisecond, zerolog.Nop())
	defer d.Close()

	d.Query(context.Background(), "rice")

	select {
	case res := <-d.Results():
		require.NoError(t, res.Err)
		assert.Equal(t, "rice", res.Query)
		require.Len(t, res.Products, 1)
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}
}

func TestDebouncer_OnlyLastQuerySurvives(t *testing.T) {
	stub := &stubBackend{}
	d := NewDebouncer(stub, 20*time.Millisecond, zerolog.Nop())
	defer d.Close()

	ctx := context.Background()
	// Rapid keystrokes: each supersedes the previous within the window.
	d.Query(ctx, "r")
	d.Query(ctx, "ri")
	d.Query(ctx, "ric")
	d.Query(ctx, "rice")

	select {
	case res := <-d.Results():
		require.NoError(t, res.Err)
		assert.Equal(t, "rice", res.Query)
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}

	// Superseded queries never reached the backend.
	assert.Equal(t, []string{"rice"}, stub.seen())

	// And no stray result shows up afterwards.
	select {
	case res := <-d.Results():
		t.Fatalf("unexpected extra result for %q", res.Query)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncer_InFlightResultDroppedWhenSuperseded(t *testing.T) {
	stub := &stubBackend{delay: 30 * time.Millisecond}
	d := NewDebouncer(stub, time.Millisecond, zerolog.Nop())
	defer d.Close()

	ctx := context.Background()
	d.Query(ctx, "wheat")
	// Let "wheat" start its backend call, then supersede it.
	time.Sleep(10 * time.Millisecond)
	d.Query(ctx, "jowar")

	select {
	case res := <-d.Results():
		require.NoError(t, res.Err)
		assert.Equal(t, "jowar", res.Query)
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}
}

func TestDebouncer_CloseCancelsPending(t *testing.T) {
	stub := &stubBackend{}
	d := NewDebouncer(stub, 50*time.Millisecond, zerolog.Nop())

	d.Query(context.Background(), "rice")
	d.Close()

	select {
	case res := <-d.Results():
		t.Fatalf("unexpected result after close: %q", res.Query)
	case <-time.After(100 * time.Millisecond):
	}
	assert.Empty(t, stub.seen())
}
