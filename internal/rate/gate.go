package rate

import (
	"context"
	"sync"
	"time"
)

// Gate enforces a minimum interval between successive operations.
// It is safe for concurrent use, although the pipeline issues API calls
// strictly sequentially; the mutex guards against misuse rather than an
// expected access pattern.
type Gate struct {
	// interval is the minimum spacing between releases.
	interval time.Duration

	// clk returns the current time. Injectable for tests.
	clk func() time.Time

	// sleep waits for the given duration or until ctx is cancelled.
	// Injectable for tests.
	sleep func(ctx context.Context, d time.Duration) error

	mu   sync.Mutex
	last time.Time
}

// Option configures a Gate.
type Option func(*Gate)

// WithClock sets a custom clock function. Used in tests to avoid
// real waiting.
func WithClock(clk func() time.Time) Option {
	return func(g *Gate) {
		g.clk = clk
	}
}

// WithSleeper sets a custom sleep function. Used in tests to record
// requested waits instead of performing them.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(g *Gate) {
		g.sleep = sleep
	}
}

// NewGate creates a gate with the given minimum interval between
// releases. A non-positive interval disables waiting entirely.
func NewGate(interval time.Duration, opts ...Option) *Gate {
	g := &Gate{
		interval: interval,
		clk:      time.Now,
		sleep:    sleepCtx,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Wait blocks until the configured interval has elapsed since the
// previous release, or until ctx is cancelled. The first call returns
// immediately.
func (g *Gate) Wait(ctx context.Context) error {
	if g.interval <= 0 {
		return ctx.Err()
	}

	g.mu.Lock()
	now := g.clk()
	var wait time.Duration
	if !g.last.IsZero() {
		if elapsed := now.Sub(g.last); elapsed < g.interval {
			wait = g.interval - elapsed
		}
	}
	g.last = now.Add(wait)
	g.mu.Unlock()

	if wait <= 0 {
		return ctx.Err()
	}
	return g.sleep(ctx, wait)
}

// Interval returns the configured minimum spacing.
func (g *Gate) Interval() time.Duration {
	return g.interval
}

// sleepCtx waits for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
