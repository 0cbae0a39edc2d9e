package fulfillment

import (
	"context"
	"errors"

	"kirana-kart/internal/backend"
	"kirana-kart/internal/model"

	"github.com/rs/zerolog"
)

// DeliveryService performs the delivery partner's side of fulfillment:
// picking up packed orders and completing OTP-gated handoffs. All
// operations are scoped to the acting partner's assignments.
type DeliveryService struct {
	backend backend.Client
	partner model.DeliveryPartner
	logger  zerolog.Logger
}

// NewDeliveryService creates a fulfillment service acting as partner.
func NewDeliveryService(client backend.Client, partner model.DeliveryPartner, logger zerolog.Logger) *DeliveryService {
	return &DeliveryService{
		backend: client,
		partner: partner,
		logger: logger.With().
			Str("service", "fulfillment-delivery").
			Str("partner_id", partner.ID).
			Logger(),
	}
}

// AssignedOrders returns the partner's active deliveries: orders
// assigned to them that are packed or out for delivery.
func (s *DeliveryService) AssignedOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.backend.ListOrders(ctx, "")
	if err != nil {
		return nil, err
	}

	assigned := make([]model.Order, 0, len(orders))
	for _, order := range orders {
		if order.DeliveryPartnerID != s.partner.ID {
			continue
		}
		if order.Status == model.StatusPacked || order.Status == model.StatusOutForDelivery {
			assigned = append(assigned, order)
		}
	}
	return assigned, nil
}

// StartDelivery moves an assigned packed order to out_for_delivery.
func (s *DeliveryService) StartDelivery(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.fetchAssigned(ctx, orderID)
	if err != nil {
		return nil, err
	}

	next, err := Transition(order.Status, EventStartDelivery)
	if err != nil {
		return nil, err
	}

	if err := s.backend.UpdateOrderStatus(ctx, orderID, next); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to start delivery")
		return nil, err
	}

	updated, err := s.backend.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", orderID).Msg("delivery started")
	return updated, nil
}

// CompleteDelivery submits the customer's 4-digit OTP to finish an
// out-for-delivery order. A wrong OTP fails this attempt only; the
// order stays out_for_delivery and the partner may retry.
func (s *DeliveryService) CompleteDelivery(ctx context.Context, orderID, otp string) (*model.Order, error) {
	if !model.ValidOTP(otp) {
		return nil, model.NewDomainError(model.ErrCodeInvalidOTP, "Please enter 4-digit OTP")
	}

	order, err := s.fetchAssigned(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Gate locally: the deliver action only exists for orders that are
	// out for delivery.
	if _, err := Transition(order.Status, EventDeliver); err != nil {
		return nil, err
	}

	if err := s.backend.VerifyDeliveryOTP(ctx, orderID, otp); err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			s.logger.Warn().Str("order_id", orderID).Msg("delivery OTP rejected")
			return nil, model.NewDomainError(model.ErrCodeInvalidOTP, apiErr.Error())
		}
		return nil, err
	}

	updated, err := s.backend.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if updated.Status != model.StatusDelivered {
		return nil, model.NewDomainError(
			model.ErrCodeInternalError,
			"backend accepted the OTP but the order is not delivered",
		)
	}

	s.logger.Info().Str("order_id", orderID).Msg("order delivered")
	return updated, nil
}

// fetchAssigned loads an order and verifies it belongs to the acting
// partner.
func (s *DeliveryService) fetchAssigned(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.backend.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.DeliveryPartnerID != s.partner.ID {
		return nil, model.ErrNotAssigned
	}
	return order, nil
}
