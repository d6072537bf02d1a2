package rate

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestGateFirstCallDoesNotWait tests that the first release is immediate.
func TestGateFirstCallDoesNotWait(t *testing.T) {
	t.Parallel()

	var slept []time.Duration
	g := NewGate(time.Second,
		WithClock(func() time.Time { return time.Unix(0, 0) }),
		WithSleeper(func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		}),
	)

	if err := g.Wait(context.Background()); err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if len(slept) != 0 {
		t.Errorf("first Wait slept %v, expected no sleep", slept)
	}
}

// TestGateSpacesCalls tests that back-to-back calls are spaced by the
// configured interval.
func TestGateSpacesCalls(t *testing.T) {
	t.Parallel()

	now := time.Unix(0, 0)
	var slept []time.Duration
	g := NewGate(time.Second,
		WithClock(func() time.Time { return now }),
		WithSleeper(func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		}),
	)

	// First call passes immediately; second call at the same instant
	// must wait a full interval.
	if err := g.Wait(context.Background()); err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if err := g.Wait(context.Background()); err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}

	if len(slept) != 1 || slept[0] != time.Second {
		t.Errorf("slept %v, expected exactly one 1s sleep", slept)
	}
}

// TestGatePartialElapsed tests that only the remaining portion of the
// interval is waited.
func TestGatePartialElapsed(t *testing.T) {
	t.Parallel()

	now := time.Unix(0, 0)
	var slept []time.Duration
	g := NewGate(time.Second,
		WithClock(func() time.Time { return now }),
		WithSleeper(func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		}),
	)

	if err := g.Wait(context.Background()); err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	now = now.Add(600 * time.Millisecond)
	if err := g.Wait(context.Background()); err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}

	if len(slept) != 1 || slept[0] != 400*time.Millisecond {
		t.Errorf("slept %v, expected one 400ms sleep", slept)
	}
}

// TestGateZeroIntervalDisabled tests that a zero interval never waits.
func TestGateZeroIntervalDisabled(t *testing.T) {
	t.Parallel()

	g := NewGate(0, WithSleeper(func(_ context.Context, _ time.Duration) error {
		return errors.New("sleep should not be called")
	}))

	for range 3 {
		if err := g.Wait(context.Background()); err != nil {
			t.Fatalf("Wait returned error: %v", err)
		}
	}
}

// TestGateCancelledContext tests that a cancelled context aborts waiting.
func TestGateCancelledContext(t *testing.T) {
	t.Parallel()

	g := NewGate(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Prime the gate so the second call must wait.
	if err := g.Wait(context.Background()); err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if err := g.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait = %v, expected context.Canceled", err)
	}
}
