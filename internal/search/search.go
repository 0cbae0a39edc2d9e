// Package search provides debounced product search: each new query
// cancels and reschedules the pending one, so only the most recent
// query reaches the backend and its result is the only one delivered.
package search

import (
	"context"
	"sync"
	"time"

	"kirana-kart/internal/backend"
	"kirana-kart/internal/model"

	"github.com/rs/zerolog"
)

// DefaultDebounce is the keystroke settling window.
const DefaultDebounce = 300 * time.Millisecond

// Result is the outcome of the query that survived the debounce
// window.
type Result struct {
	Query    string
	Products []model.Product
	Err      error
}

// Debouncer schedules searches against the backend. It is safe for use
// from a single UI goroutine; Query supersedes any pending query.
type Debouncer struct {
	backend backend.Client
	window  time.Duration
	results chan Result
	logger  zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    int
	closed bool
}

// NewDebouncer creates a search debouncer. A zero window uses
// DefaultDebounce.
func NewDebouncer(client backend.Client, window time.Duration, logger zerolog.Logger) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Debouncer{
		backend: client,
		window:  window,
		results: make(chan Result, 1),
		logger:  logger.With().Str("component", "search").Logger(),
	}
}

// Results delivers the outcome of the most recent query. Superseded
// queries never produce a Result.
func (d *Debouncer) Results() <-chan Result {
	return d.results
}

// Query schedules query to run after the debounce window, cancelling
// any pending query.
func (d *Debouncer) Query(ctx context.Context, query string) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.cancel != nil {
		d.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.seq++
	seq := d.seq
	d.mu.Unlock()

	timer := time.NewTimer(d.window)
	go func() {
		defer timer.Stop()

		select {
		case <-runCtx.Done():
			return
		case <-timer.C:
		}

		products, err := d.backend.SearchProducts(runCtx, query)
		if runCtx.Err() != nil {
			// Superseded while in flight; drop the result.
			return
		}

		d.mu.Lock()
		stale := seq != d.seq || d.closed
		d.mu.Unlock()
		if stale {
			return
		}

		// Replace any undelivered older result.
		select {
		case <-d.results:
		default:
		}
		d.results <- Result{Query: query, Products: products, Err: err}
	}()
}

// Close cancels any pending query. No Result is delivered afterwards.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.cancel != nil {
		d.cancel()
	}
}
