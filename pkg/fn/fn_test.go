package fn

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestResultOkErr(t *testing.T) {
	r := Ok(42)
	if !r.IsOk() || r.IsErr() {
		t.Fatal("expected ok result")
	}
	v, err := r.Unwrap()
	if v != 42 || err != nil {
		t.Fatalf("unexpected unwrap: %d, %v", v, err)
	}

	e := Err[int](errors.New("boom"))
	if e.IsOk() {
		t.Fatal("expected error result")
	}
	if got := e.UnwrapOr(7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
}

func TestFromPair(t *testing.T) {
	if r := FromPair(1, nil); r.IsErr() {
		t.Fatal("expected ok")
	}
	if r := FromPair(0, errors.New("x")); r.IsOk() {
		t.Fatal("expected err")
	}
}

func TestPipelineShortCircuits(t *testing.T) {
	var calls []string
	stage := func(name string, fail bool) Stage[int, int] {
		return func(_ context.Context, v int) Result[int] {
			calls = append(calls, name)
			if fail {
				return Errf[int]("%s failed", name)
			}
			return Ok(v + 1)
		}
	}

	p := Pipeline(stage("a", false), stage("b", true), stage("c", false))
	r := p(context.Background(), 0)
	if !r.IsErr() {
		t.Fatal("expected pipeline error")
	}
	if len(calls) != 2 || calls[0] != "a" || calls[1] != "b" {
		t.Fatalf("expected [a b], got %v", calls)
	}
}

func TestPipelineAccumulates(t *testing.T) {
	inc := func(_ context.Context, v int) Result[int] { return Ok(v + 1) }
	p := Pipeline[int](inc, inc, inc)
	v, err := p(context.Background(), 0).Unwrap()
	if err != nil || v != 3 {
		t.Fatalf("expected 3, got %d (%v)", v, err)
	}
}

func TestRetryEventuallySucceeds(t *testing.T) {
	attempts := 0
	opts := RetryOpts{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: time.Millisecond}
	r := Retry(context.Background(), opts, func(context.Context) Result[int] {
		attempts++
		if attempts < 3 {
			return Errf[int]("attempt %d", attempts)
		}
		return Ok(attempts)
	})
	if r.IsErr() {
		t.Fatal("expected success on third attempt")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryExhausts(t *testing.T) {
	attempts := 0
	opts := RetryOpts{MaxAttempts: 2, InitialWait: time.Millisecond, MaxWait: time.Millisecond}
	r := Retry(context.Background(), opts, func(context.Context) Result[int] {
		attempts++
		return Errf[int]("always fails")
	})
	if r.IsOk() || attempts != 2 {
		t.Fatalf("expected 2 failed attempts, got ok=%v attempts=%d", r.IsOk(), attempts)
	}
}

func TestSliceHelpers(t *testing.T) {
	doubled := Map([]int{1, 2, 3}, func(v int) int { return v * 2 })
	if len(doubled) != 3 || doubled[2] != 6 {
		t.Fatalf("unexpected map result: %v", doubled)
	}

	odd := Filter([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 1 })
	if len(odd) != 2 {
		t.Fatalf("unexpected filter result: %v", odd)
	}

	u := Unique([]string{"a", "b", "a", "c", "b"})
	if len(u) != 3 || u[0] != "a" || u[1] != "b" || u[2] != "c" {
		t.Fatalf("unexpected unique result: %v", u)
	}
}
