// Package cart owns the persisted shopping cart: a mapping from
// product id to a product snapshot plus quantity, held in the local
// store under a fixed key. No other component writes the cart.
package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"kirana-kart/internal/model"
	"kirana-kart/internal/pricing"
	"kirana-kart/internal/store"

	"github.com/rs/zerolog"
)

// Service provides cart operations over an injectable store.
type Service struct {
	store  store.Store
	logger zerolog.Logger
}

// NewService creates a cart service backed by the given store.
func NewService(st store.Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  st,
		logger: logger.With().Str("service", "cart").Logger(),
	}
}

// GetCart reads the persisted cart. Absent or malformed stored data
// yields an empty cart, never an error: a corrupted cart must not take
// the storefront down.
func (s *Service) GetCart(ctx context.Context) model.Cart {
	data, err := s.store.Load(ctx, store.KeyCart)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load cart, treating as empty")
		return model.Cart{}
	}
	if len(data) == 0 {
		return model.Cart{}
	}

	var cart model.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		s.logger.Warn().Err(err).Msg("malformed cart data, treating as empty")
		return model.Cart{}
	}
	return cart
}

// AddToCart adds quantity of product to the cart, merging with an
// existing line for the same product id. A non-positive quantity is a
// no-op. Returns the updated cart.
func (s *Service) AddToCart(ctx context.Context, product model.Product, quantity int) (model.Cart, error) {
	cart := s.GetCart(ctx)

	if quantity <= 0 {
		return cart, nil
	}
	if err := product.Validate(); err != nil {
		return cart, err
	}

	if i := cart.Find(product.ID); i >= 0 {
		cart[i].Quantity += quantity
	} else {
		cart = append(cart, model.CartItem{Product: product, Quantity: quantity})
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("product_id", product.ID).
		Int("quantity", quantity).
		Int("cart_size", len(cart)).
		Msg("product added to cart")

	return cart, nil
}

// UpdateCartItem sets the quantity for a product already in the cart.
// A quantity of zero or less removes the line; this is the only
// removal path. Unknown product ids are ignored. Returns the updated
// cart.
func (s *Service) UpdateCartItem(ctx context.Context, productID string, quantity int) (model.Cart, error) {
	cart := s.GetCart(ctx)

	i := cart.Find(productID)
	if i < 0 {
		return cart, nil
	}

	if quantity <= 0 {
		cart = append(cart[:i], cart[i+1:]...)
	} else {
		cart[i].Quantity = quantity
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("product_id", productID).
		Int("quantity", quantity).
		Int("cart_size", len(cart)).
		Msg("cart item updated")

	return cart, nil
}

// ClearCart deletes the persisted cart entirely.
func (s *Service) ClearCart(ctx context.Context) error {
	if err := s.store.Delete(ctx, store.KeyCart); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	s.logger.Debug().Msg("cart cleared")
	return nil
}

// GetCartTotal returns the discounted total of the given cart.
func (s *Service) GetCartTotal(cart model.Cart) float64 {
	return pricing.CartTotal(cart)
}

func (s *Service) save(ctx context.Context, cart model.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.store.Save(ctx, store.KeyCart, data); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
