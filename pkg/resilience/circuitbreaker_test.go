package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errFail = errors.New("collaborator down")

func failing(context.Context) error { return errFail }
func succeeding(context.Context) error { return nil }

func TestBreakerTripsAfterThreshold(t *testing.T) {
	b := NewBreaker(BreakerOpts{FailThreshold: 3, Timeout: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := b.Call(ctx, failing); !errors.Is(err, errFail) {
			t.Fatalf("call %d: expected collaborator error, got %v", i, err)
		}
	}

	if b.State() != StateOpen {
		t.Fatalf("expected open, got %s", b.State())
	}
	if err := b.Call(ctx, succeeding); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	b := NewBreaker(BreakerOpts{FailThreshold: 1, Timeout: time.Minute, HalfOpenMax: 1})
	ctx := context.Background()

	now := time.Now()
	b.now = func() time.Time { return now }

	if err := b.Call(ctx, failing); !errors.Is(err, errFail) {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.State() != StateOpen {
		t.Fatalf("expected open, got %s", b.State())
	}

	// Advance past the timeout; probe call closes the breaker.
	now = now.Add(2 * time.Minute)
	if b.State() != StateHalfOpen {
		t.Fatalf("expected half-open, got %s", b.State())
	}
	if err := b.Call(ctx, succeeding); err != nil {
		t.Fatalf("probe should succeed: %v", err)
	}
	if b.State() != StateClosed {
		t.Fatalf("expected closed, got %s", b.State())
	}
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	b := NewBreaker(BreakerOpts{FailThreshold: 1, Timeout: time.Minute})
	ctx := context.Background()

	now := time.Now()
	b.now = func() time.Time { return now }

	b.Call(ctx, failing)
	now = now.Add(2 * time.Minute)

	if err := b.Call(ctx, failing); !errors.Is(err, errFail) {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.State() != StateOpen {
		t.Fatalf("expected reopened, got %s", b.State())
	}
}
