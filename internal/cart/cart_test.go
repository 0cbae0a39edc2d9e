package cart

import (
	"context"
	"testing"

	"kirana-kart/internal/model"
	"kirana-kart/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, store.Store) {
	st := store.NewMemoryStore()
	return NewService(st, zerolog.Nop()), st
}

func testProduct(id string) model.Product {
	return model.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    100,
		Discount: 10,
		Unit:     "kg",
	}
}

func TestAddToCart_NewProduct(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cart, err := svc.AddToCart(ctx, testProduct("P001"), 2)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, "P001", cart[0].Product.ID)
	assert.Equal(t, 2, cart[0].Quantity)

	// Survives a fresh read
	assert.Equal(t, cart, svc.GetCart(ctx))
}

func TestAddToCart_MergesSameProduct(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, testProduct("P001"), 2)
	require.NoError(t, err)
	cart, err := svc.AddToCart(ctx, testProduct("P001"), 3)
	require.NoError(t, err)

	require.Len(t, cart, 1)
	assert.Equal(t, 5, cart[0].Quantity)
}

func TestAddToCart_NonPositiveQuantityIsNoOp(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cart, err := svc.AddToCart(ctx, testProduct("P001"), 0)
	require.NoError(t, err)
	assert.Empty(t, cart)

	cart, err = svc.AddToCart(ctx, testProduct("P001"), -1)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestAddToCart_RejectsInvalidSnapshot(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, model.Product{ID: "P001", Name: "Bad", Price: -5}, 1)
	require.Error(t, err)
	assert.Empty(t, svc.GetCart(ctx))
}

func TestUpdateCartItem_SetsQuantity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, testProduct("P001"), 2)
	require.NoError(t, err)

	cart, err := svc.UpdateCartItem(ctx, "P001", 7)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 7, cart[0].Quantity)
}

func TestUpdateCartItem_ZeroRemoves(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, testProduct("P001"), 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, testProduct("P002"), 1)
	require.NoError(t, err)

	cart, err := svc.UpdateCartItem(ctx, "P001", 0)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, "P002", cart[0].Product.ID)

	assert.Equal(t, -1, svc.GetCart(ctx).Find("P001"))
}

func TestUpdateCartItem_UnknownProductIsNoOp(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, testProduct("P001"), 2)
	require.NoError(t, err)

	cart, err := svc.UpdateCartItem(ctx, "P999", 5)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestClearCart(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, testProduct("P001"), 2)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx))
	assert.Empty(t, svc.GetCart(ctx))
}

func TestGetCart_MalformedDataFailsSoft(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, store.KeyCart, []byte("{not json")))

	assert.NotPanics(t, func() {
		assert.Empty(t, svc.GetCart(ctx))
	})

	// The store stays usable after corruption.
	cart, err := svc.AddToCart(ctx, testProduct("P001"), 1)
	require.NoError(t, err)
	assert.Len(t, cart, 1)
}

func TestGetCart_AbsentIsEmpty(t *testing.T) {
	svc, _ := newTestService()
	assert.Empty(t, svc.GetCart(context.Background()))
}

func TestGetCartTotal(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, testProduct("P001"), 2)
	require.NoError(t, err)

	cart := svc.GetCart(ctx)
	// price 100, 10% discount, qty 2
	assert.InDelta(t, 180.0, svc.GetCartTotal(cart), 1e-9)
	assert.Zero(t, svc.GetCartTotal(model.Cart{}))
}

func TestAddToCart_SnapshotIsStable(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p := testProduct("P001")
	_, err := svc.AddToCart(ctx, p, 1)
	require.NoError(t, err)

	// Catalogue price changes do not reach the cart until re-synced.
	p.Price = 999
	cart := svc.GetCart(ctx)
	assert.InDelta(t, 100.0, cart[0].Product.Price, 1e-9)
}
