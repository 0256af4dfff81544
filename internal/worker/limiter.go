package worker

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces requests to the reaction database service. All traffic goes
// to one host, so a single token bucket is enough; the per-record courtesy
// delay while walking a dataset comes from here.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter. A non-positive burst falls back to 1.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Wait blocks until the next request is allowed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a request may proceed right now without waiting.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// WaitWithDelay waits for rate clearance and then an additional fixed delay.
func (l *Limiter) WaitWithDelay(ctx context.Context, additionalDelay time.Duration) error {
	if err := l.Wait(ctx); err != nil {
		return err
	}
	if additionalDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(additionalDelay):
		}
	}
	return nil
}
