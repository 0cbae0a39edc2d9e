// Package catalog loads the storefront's startup data set. Products,
// categories, and settings are independent fetches, so they run
// concurrently and the slowest one bounds the load.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"kirana-kart/internal/backend"
	"kirana-kart/internal/model"

	"github.com/rs/zerolog"
)

// Catalog is the assembled startup data set.
type Catalog struct {
	Products   []model.Product
	Categories []model.Category
	Settings   *model.StoreSettings
}

// Loader fetches the catalogue from the backend.
type Loader struct {
	backend backend.Client
	logger  zerolog.Logger
}

// NewLoader creates a catalogue loader.
func NewLoader(client backend.Client, logger zerolog.Logger) *Loader {
	return &Loader{
		backend: client,
		logger:  logger.With().Str("component", "catalog").Logger(),
	}
}

// Load fetches products, categories, and settings concurrently. Any
// single failure fails the whole load.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	var (
		wg      sync.WaitGroup
		cat     Catalog
		errs    [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		cat.Products, errs[0] = l.backend.GetProducts(ctx)
	}()
	go func() {
		defer wg.Done()
		cat.Categories, errs[1] = l.backend.GetCategories(ctx)
	}()
	go func() {
		defer wg.Done()
		cat.Settings, errs[2] = l.backend.GetSettings(ctx)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			l.logger.Error().Err(err).Msg("catalogue load failed")
			return nil, fmt.Errorf("failed to load catalogue: %w", err)
		}
	}

	l.logger.Info().
		Int("product_count", len(cat.Products)).
		Int("category_count", len(cat.Categories)).
		Msg("catalogue loaded")

	return &cat, nil
}
