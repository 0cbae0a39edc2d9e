// Package geo resolves the customer's delivery location with a bounded
// timeout and a fixed fallback, mirroring how the storefront handles
// slow or denied device geolocation.
package geo

import (
	"context"
	"time"

	"kirana-kart/internal/model"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a location request.
const DefaultTimeout = 15 * time.Second

// Fallback is the default delivery location (Ahmedabad, Gujarat) used
// when the device location cannot be determined.
var Fallback = model.Location{Lat: 23.0225, Lng: 72.5714}

// Locator obtains the device's current location. Implementations are
// expected to honor ctx cancellation.
type Locator interface {
	Locate(ctx context.Context) (model.Location, error)
}

// Resolver wraps a Locator with the timeout/fallback policy.
type Resolver struct {
	locator Locator
	timeout time.Duration
	logger  zerolog.Logger
}

// NewResolver creates a location resolver. A zero timeout uses
// DefaultTimeout.
func NewResolver(locator Locator, timeout time.Duration, logger zerolog.Logger) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{
		locator: locator,
		timeout: timeout,
		logger:  logger.With().Str("component", "geo").Logger(),
	}
}

// Resolve returns the device location, or the fallback when the
// locator fails or exceeds the timeout. The second return value
// reports whether the fallback was used, so callers can notify the
// user.
func (r *Resolver) Resolve(ctx context.Context) (model.Location, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	loc, err := r.locator.Locate(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("location detection failed, using fallback")
		return Fallback, true
	}

	r.logger.Debug().
		Float64("lat", loc.Lat).
		Float64("lng", loc.Lng).
		Msg("location detected")
	return loc, false
}
