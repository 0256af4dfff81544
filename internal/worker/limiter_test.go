package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if !limiter.Allow() {
		t.Error("fresh limiter should allow a request")
	}

	// non-positive burst falls back to 1
	l2 := NewLimiter(10, -1)
	if !l2.Allow() {
		t.Error("first request should pass with fallback burst")
	}
	if l2.Allow() {
		t.Error("second immediate request should fail with burst 1")
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	ctx, cancel := context.WithCancel(context.Background())

	// drain the burst token, then cancel mid-wait
	_ = limiter.Allow()
	cancel()

	if err := limiter.Wait(ctx); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	start := time.Now()
	if err := limiter.WaitWithDelay(ctx, 50*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}

	if duration := time.Since(start); duration < 50*time.Millisecond {
		t.Errorf("expected delay >= 50ms, got %v", duration)
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow() {
		t.Error("first request should pass")
	}
	if limiter.Allow() {
		t.Error("expected allow to fail (exhausted tokens)")
	}
}
