package checkout

import (
	"context"

	"kirana-kart/internal/model"
	"kirana-kart/internal/store"
)

// rememberMobile records the checkout identity so later sessions can
// prefill the form and look up past orders.
func (s *Service) rememberMobile(ctx context.Context, mobile string) error {
	return s.store.Save(ctx, store.KeyCustomerMobile, []byte(mobile))
}

// RememberedMobile returns the mobile from the most recent checkout,
// or "" when none is stored or the stored value is malformed.
func (s *Service) RememberedMobile(ctx context.Context) string {
	data, err := s.store.Load(ctx, store.KeyCustomerMobile)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load remembered mobile")
		return ""
	}
	mobile := string(data)
	if !model.ValidMobile(mobile) {
		return ""
	}
	return mobile
}

// RecallCustomer loads the customer record for the remembered mobile,
// for checkout prefill. Returns nil when nothing can be recalled;
// lookup failures degrade to an empty form rather than an error.
func (s *Service) RecallCustomer(ctx context.Context) *model.Customer {
	mobile := s.RememberedMobile(ctx)
	if mobile == "" {
		return nil
	}

	customer, err := s.backend.GetCustomer(ctx, mobile)
	if err != nil {
		s.logger.Warn().Err(err).Str("mobile", mobile).Msg("failed to recall customer")
		return nil
	}
	return customer
}
