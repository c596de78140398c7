// Package lowstock keeps a periodically refreshed snapshot of the products
// that have fallen below their restock threshold.
package lowstock

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/models"
)

// Fetcher is the slice of the catalog client the watcher needs.
type Fetcher interface {
	LowStock(ctx context.Context) ([]models.Product, error)
}

// Watcher polls the backend for low-stock products on a fixed interval. It
// has an explicit Start/Stop lifecycle instead of a bare timer so shutdown
// cannot leak the polling goroutine. A failed refresh keeps the previous
// snapshot and records the error for the UI to surface as retryable.
type Watcher struct {
	fetcher  Fetcher
	interval time.Duration
	log      zerolog.Logger

	mu        sync.RWMutex
	products  []models.Product
	fetchedAt time.Time
	lastErr   error

	cancel context.CancelFunc
	done   chan struct{}
}

func New(fetcher Fetcher, interval time.Duration, log zerolog.Logger) *Watcher {
	return &Watcher{
		fetcher:  fetcher,
		interval: interval,
		log:      log.With().Str("component", "lowstock").Logger(),
	}
}

// Start launches the polling loop. It refreshes once immediately, then on
// every tick until Stop is called or ctx is cancelled. Start is not
// reentrant; call Stop before starting again.
func (w *Watcher) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go func() {
		defer close(w.done)
		w.Refresh(ctx)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.Refresh(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit.
func (w *Watcher) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
}

// Refresh fetches the low-stock list once. It is also called directly by the
// "Refresh Now" action on the alerts page.
func (w *Watcher) Refresh(ctx context.Context) {
	products, err := w.fetcher.LowStock(ctx)
	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.lastErr = err
		w.log.Warn().Err(err).Msg("low-stock refresh failed")
		return
	}
	w.products = products
	w.fetchedAt = time.Now()
	w.lastErr = nil
	if len(products) > 0 {
		w.log.Info().Int("count", len(products)).Msg("products below restock threshold")
	}
}

// Current returns the latest snapshot, when it was fetched, and the error of
// the most recent refresh (nil after a success).
func (w *Watcher) Current() ([]models.Product, time.Time, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]models.Product, len(w.products))
	copy(out, w.products)
	return out, w.fetchedAt, w.lastErr
}
