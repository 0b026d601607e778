package order

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default refresh intervals
const (
	DefaultTrackInterval = 10 * time.Second
	DefaultBoardInterval = 5 * time.Second
)

// poll runs fn immediately and then on every tick until fn returns true or
// ctx is done
func poll(ctx context.Context, interval time.Duration, fn func(context.Context) bool) error {
	if fn(ctx) {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if fn(ctx) {
				return nil
			}
		}
	}
}

// Watcher runs a refresh function in the background on a fixed interval
type Watcher struct {
	interval time.Duration
	fn       func(context.Context)
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a stopped watcher
func NewWatcher(interval time.Duration, fn func(context.Context), logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{interval: interval, fn: fn, logger: logger}
}

// Start begins refreshing. Calling Start on a running watcher does nothing.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		_ = poll(ctx, w.interval, func(ctx context.Context) bool {
			w.fn(ctx)
			return false
		})
	}()
	w.logger.Debug("watcher started", zap.Duration("interval", w.interval))
}

// Stop cancels the refresh loop and waits for it to exit, or for ctx
func (w *Watcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Debug("watcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
