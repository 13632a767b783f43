package ratelimit

import (
	"context"
	"math"
	"time"

	"github.com/ostapkoval/conckit/pkg/syncx"
)

// TokenBucket is an in-process token bucket rate limiter. Tokens accumulate
// continuously at the configured rate up to the burst capacity; each admitted
// operation consumes one or more tokens. The bucket starts full, so an idle
// limiter always admits an initial burst.
//
// All methods are safe for concurrent use. Blocked Acquire callers are not
// served in FIFO order; under contention a late arrival may acquire before an
// earlier waiter.
type TokenBucket struct {
	rate  float64 // tokens per second
	burst int
	now   func() time.Time

	mon        *syncx.Monitor
	tokens     float64
	lastRefill time.Time
}

// Option configures a TokenBucket.
type Option func(*TokenBucket)

// WithClock replaces the limiter's time source. Intended for deterministic
// tests; the default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(tb *TokenBucket) {
		if now != nil {
			tb.now = now
		}
	}
}

// NewTokenBucket creates a limiter admitting ratePerSecond operations per
// second on average, with bursts of up to burst operations.
//
// A ratePerSecond of zero is legal and intentional: the bucket never refills,
// so exactly burst acquisitions succeed over the limiter's lifetime.
func NewTokenBucket(ratePerSecond float64, burst int, opts ...Option) (*TokenBucket, error) {
	if ratePerSecond < 0 || math.IsNaN(ratePerSecond) || math.IsInf(ratePerSecond, 0) {
		return nil, ErrInvalidRate
	}
	if burst < 1 {
		return nil, ErrInvalidBurst
	}

	tb := &TokenBucket{
		rate:   ratePerSecond,
		burst:  burst,
		now:    time.Now,
		mon:    syncx.NewMonitor(),
		tokens: float64(burst),
	}
	for _, opt := range opts {
		opt(tb)
	}
	tb.lastRefill = tb.now()
	return tb, nil
}

// TryAcquire consumes permits tokens if available and returns true, or
// returns false without consuming anything. It never blocks.
// Permits below 1 are treated as 1.
func (tb *TokenBucket) TryAcquire(permits int) bool {
	if permits < 1 {
		permits = 1
	}

	tb.mon.Lock()
	defer tb.mon.Unlock()

	tb.refill()
	if tb.tokens < float64(permits) {
		return false
	}
	tb.tokens -= float64(permits)
	return true
}

// Acquire blocks until permits tokens are available, then consumes them.
// The wait is computed from the current deficit and the refill rate, so a
// lone caller sleeps exactly once; under contention the deficit is re-checked
// after each sleep. Returns ctx.Err() if the context ends first, and
// ErrPermitsExceedBurst if the bucket can never hold enough tokens.
func (tb *TokenBucket) Acquire(ctx context.Context, permits int) error {
	if permits < 1 {
		permits = 1
	}
	if permits > tb.burst {
		return ErrPermitsExceedBurst
	}

	for {
		tb.mon.Lock()
		tb.refill()
		if tb.tokens >= float64(permits) {
			tb.tokens -= float64(permits)
			tb.mon.Unlock()
			return nil
		}

		if tb.rate == 0 {
			// Never refills: only cancellation can end the wait.
			tb.mon.Unlock()
			<-ctx.Done()
			return ctx.Err()
		}

		deficit := float64(permits) - tb.tokens
		wait := time.Duration(math.Ceil(deficit / tb.rate * float64(time.Second)))
		tb.mon.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			// Tokens should have accumulated; loop re-checks because a
			// concurrent caller may have taken them.
		}
	}
}

// AcquireTimeout is a bounded-wait Acquire. It returns true once the permits
// were consumed and false if the timeout elapsed first.
func (tb *TokenBucket) AcquireTimeout(permits int, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return tb.Acquire(ctx, permits) == nil
}

// Tokens returns the number of tokens currently available, after applying
// any pending refill.
func (tb *TokenBucket) Tokens() float64 {
	tb.mon.Lock()
	defer tb.mon.Unlock()
	tb.refill()
	return tb.tokens
}

// Rate returns the configured refill rate in tokens per second.
func (tb *TokenBucket) Rate() float64 {
	return tb.rate
}

// Burst returns the configured burst capacity.
func (tb *TokenBucket) Burst() int {
	return tb.burst
}

// refill must be called with the monitor locked.
func (tb *TokenBucket) refill() {
	now := tb.now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}
	tb.tokens = math.Min(float64(tb.burst), tb.tokens+elapsed*tb.rate)
	tb.lastRefill = now
}
