package fulfillment

import (
	"context"
	"fmt"

	"kirana-kart/internal/backend"
	"kirana-kart/internal/model"

	"github.com/rs/zerolog"
)

// AdminService performs the administrative side of fulfillment:
// packing orders and assigning delivery partners.
type AdminService struct {
	backend backend.Client
	logger  zerolog.Logger
}

// NewAdminService creates an admin fulfillment service.
func NewAdminService(client backend.Client, logger zerolog.Logger) *AdminService {
	return &AdminService{
		backend: client,
		logger:  logger.With().Str("service", "fulfillment-admin").Logger(),
	}
}

// ListOrders returns orders, optionally filtered by status.
func (s *AdminService) ListOrders(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	return s.backend.ListOrders(ctx, status)
}

// MarkPacked moves a pending order to packed and returns the canonical
// order state afterwards.
func (s *AdminService) MarkPacked(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.backend.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	next, err := Transition(order.Status, EventMarkPacked)
	if err != nil {
		return nil, err
	}

	if err := s.backend.UpdateOrderStatus(ctx, orderID, next); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to mark order packed")
		return nil, err
	}

	updated, err := s.refetch(ctx, orderID, next)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", orderID).Msg("order marked packed")
	return updated, nil
}

// AssignPartner writes the delivery partner onto a packed order. The
// order stays packed; the partner starts delivery separately.
func (s *AdminService) AssignPartner(ctx context.Context, orderID string, partner model.DeliveryPartner) (*model.Order, error) {
	if partner.ID == "" || partner.Name == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "delivery partner id and name are required")
	}

	order, err := s.backend.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanAssign(order.Status) {
		return nil, model.NewDomainError(
			model.ErrCodeInvalidTransition,
			fmt.Sprintf("cannot assign a delivery partner to an order in status %s", order.Status),
		)
	}

	if err := s.backend.AssignDeliveryPartner(ctx, orderID, partner.ID, partner.Name); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to assign delivery partner")
		return nil, err
	}

	updated, err := s.refetch(ctx, orderID, model.StatusPacked)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", orderID).
		Str("partner_id", partner.ID).
		Msg("delivery partner assigned")
	return updated, nil
}

// refetch pulls the canonical order after a mutation and checks the
// backend actually applied the expected status.
func (s *AdminService) refetch(ctx context.Context, orderID string, want model.OrderStatus) (*model.Order, error) {
	order, err := s.backend.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != want {
		return nil, model.NewDomainError(
			model.ErrCodeInternalError,
			fmt.Sprintf("backend reports status %s, expected %s", order.Status, want),
		)
	}
	return order, nil
}
