// Package checkout turns the current cart into a persisted order:
// local validation, customer upsert by mobile, item snapshotting,
// total recomputation, and order creation with bounded retry. The cart
// is cleared only once the backend has confirmed the order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kirana-kart/internal/backend"
	"kirana-kart/internal/cart"
	"kirana-kart/internal/model"
	"kirana-kart/internal/pricing"
	"kirana-kart/internal/store"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config holds the retry policy for order creation.
type Config struct {
	// MaxRetries is the number of additional attempts after the first
	// failure. Default: 2 (3 attempts total).
	MaxRetries int

	// InitialInterval is the delay before the first retry; each
	// subsequent delay doubles. Default: 1s.
	InitialInterval time.Duration
}

// DefaultConfig returns the production retry policy.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      2,
		InitialInterval: time.Second,
	}
}

// Service orchestrates order submission.
type Service struct {
	cart     *cart.Service
	backend  backend.Client
	store    store.Store
	notifier Notifier
	config   Config
	logger   zerolog.Logger
}

// NewService creates a checkout service. A nil notifier discards
// progress messages.
func NewService(
	cartSvc *cart.Service,
	client backend.Client,
	st store.Store,
	notifier Notifier,
	config Config,
	logger zerolog.Logger,
) *Service {
	if notifier == nil {
		notifier = NopNotifier()
	}
	if config.MaxRetries == 0 && config.InitialInterval == 0 {
		config = DefaultConfig()
	}
	return &Service{
		cart:     cartSvc,
		backend:  client,
		store:    st,
		notifier: notifier,
		config:   config,
		logger:   logger.With().Str("service", "checkout").Logger(),
	}
}

// Submit places an order for the current cart on behalf of customer.
// On success the cart is cleared and the new order id returned. On any
// failure the cart is left untouched.
func (s *Service) Submit(ctx context.Context, customer model.Customer) (string, error) {
	// Local validation first: no network call for a bad form.
	if err := customer.Validate(); err != nil {
		return "", err
	}

	currentCart := s.cart.GetCart(ctx)
	if currentCart.IsEmpty() {
		return "", model.ErrEmptyCart
	}

	customerID, err := s.resolveCustomer(ctx, customer)
	if err != nil {
		s.logger.Error().Err(err).Str("mobile", customer.Mobile).Msg("customer resolution failed")
		return "", fmt.Errorf("failed to save customer information: %w", err)
	}

	items, err := buildOrderItems(currentCart)
	if err != nil {
		return "", err
	}

	total := pricing.CartTotal(currentCart)
	if total <= 0 {
		return "", model.ErrInvalidTotal
	}

	order := &model.Order{
		ClientOrderID: uuid.NewString(),
		CustomerID:    customerID,
		CustomerInfo:  customer,
		Items:         items,
		TotalAmount:   total,
		Status:        model.StatusPending,
	}

	created, err := s.createWithRetry(ctx, order)
	if err != nil {
		s.notifier.Error(err.Error())
		return "", err
	}

	if err := s.cart.ClearCart(ctx); err != nil {
		// The order exists; a stale local cart is recoverable, losing
		// the order id is not.
		s.logger.Warn().Err(err).Str("order_id", created.ID).Msg("failed to clear cart after order creation")
	}

	s.notifier.Success("Order placed successfully!")
	s.logger.Info().
		Str("order_id", created.ID).
		Int("item_count", len(created.Items)).
		Float64("total_amount", created.TotalAmount).
		Msg("order placed")

	return created.ID, nil
}

// resolveCustomer is an upsert keyed by mobile: reuse the existing
// customer id when one exists, create the record otherwise. Safe to
// call repeatedly with the same mobile.
func (s *Service) resolveCustomer(ctx context.Context, customer model.Customer) (string, error) {
	existing, err := s.backend.GetCustomer(ctx, customer.Mobile)
	if err != nil {
		return "", err
	}
	if existing != nil {
		s.logger.Debug().Str("customer_id", existing.ID).Msg("existing customer found")
		return existing.ID, nil
	}

	created, err := s.backend.CreateCustomer(ctx, &customer)
	if err != nil {
		return "", err
	}

	if err := s.rememberMobile(ctx, customer.Mobile); err != nil {
		s.logger.Warn().Err(err).Msg("failed to remember customer mobile")
	}

	s.logger.Debug().Str("customer_id", created.ID).Msg("customer created")
	return created.ID, nil
}

// createWithRetry submits the order, retrying transient failures with
// exponential backoff and notifying the caller between attempts.
func (s *Service) createWithRetry(ctx context.Context, order *model.Order) (*model.Order, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.config.InitialInterval
	policy.RandomizationFactor = 0
	policy.Multiplier = 2

	var created *model.Order
	attempt := 0

	operation := func() error {
		attempt++
		var err error
		created, err = s.backend.CreateOrder(ctx, order)
		if err != nil {
			s.logger.Warn().Err(err).Int("attempt", attempt).Msg("order creation attempt failed")
			if attempt <= s.config.MaxRetries {
				s.notifier.Info(fmt.Sprintf("Retrying order placement... (%d/%d)", attempt, s.config.MaxRetries))
			}
			return err
		}
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(s.config.MaxRetries)), ctx))
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	return created, nil
}

// buildOrderItems snapshots cart lines into immutable order items,
// rejecting corrupted entries.
func buildOrderItems(c model.Cart) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, 0, len(c))
	for _, line := range c {
		if err := line.Validate(); err != nil {
			return nil, err
		}
		items = append(items, model.OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			Unit:        line.Product.Unit,
			Price:       line.Product.Price,
			Discount:    line.Product.Discount,
		})
	}
	return items, nil
}
