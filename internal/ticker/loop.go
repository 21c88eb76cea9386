// Package ticker drives grid time forward: a blocking loop that samples the
// wall clock once per iteration and feeds the elapsed delta to its target.
package ticker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval is the pause between ticks.
const DefaultInterval = 500 * time.Millisecond

// Updater receives elapsed wall-clock time in milliseconds. The grid
// manager's Update method satisfies it; a serving process instead passes an
// adapter that serializes access before forwarding.
type Updater interface {
	Update(diff uint32)
}

// Loop is the grid's tick loop. Each iteration samples the wall clock,
// computes the delta since the previous sample, forwards it to the target,
// then sleeps the configured interval. There is no catch-up: a late tick
// simply carries a larger delta.
type Loop struct {
	target   Updater
	interval time.Duration
	logger   *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewLoop creates a tick loop. A non-positive interval falls back to
// DefaultInterval.
func NewLoop(target Updater, interval time.Duration, logger *slog.Logger) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{
		target:   target,
		interval: interval,
		logger:   logger.With("component", "ticker"),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the loop on the calling goroutine until ctx is cancelled or
// Stop is called. The stop condition is checked once per iteration, during
// the sleep, so shutdown latency is bounded by one interval.
func (l *Loop) Start(ctx context.Context) error {
	l.logger.Info("tick loop started", "interval", l.interval)
	defer close(l.doneCh)

	prev := time.Now()
	for {
		now := time.Now()
		diff := uint32(now.Sub(prev) / time.Millisecond)
		prev = now

		l.target.Update(diff)

		select {
		case <-ctx.Done():
			l.logger.Info("tick loop stopped", "reason", "context cancelled")
			return ctx.Err()
		case <-l.stopCh:
			l.logger.Info("tick loop stopped", "reason", "stop requested")
			return nil
		case <-time.After(l.interval):
		}
	}
}

// Stop signals the loop and waits for the current iteration to finish.
// Safe to call more than once; must not be called before Start.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
	<-l.doneCh
}

// Tick runs a single iteration against the target with an explicit delta.
// Used for tests and for manual time control.
func (l *Loop) Tick(diff uint32) {
	l.target.Update(diff)
}
