// Package ratelimit provides an in-process token bucket rate limiter.
//
// The bucket holds up to its burst capacity in tokens and refills
// continuously at a fixed rate; fractional tokens accumulate between calls,
// so low rates are throttled accurately. The bucket starts full.
//
// # Usage
//
//	limiter, err := ratelimit.NewTokenBucket(100, 10) // 100 ops/s, bursts of 10
//	if err != nil {
//		return err
//	}
//
//	// Non-blocking admission check:
//	if limiter.TryAcquire(1) {
//		handle(req)
//	}
//
//	// Blocking admission with cancellation:
//	if err := limiter.Acquire(ctx, 1); err != nil {
//		return err // context canceled or deadline exceeded
//	}
//
//	// Bounded wait:
//	if !limiter.AcquireTimeout(1, 50*time.Millisecond) {
//		return errOverloaded
//	}
//
// An exhausted bucket is backpressure, not an error: TryAcquire returns
// false and Acquire waits. A rate of zero builds a one-shot quota — the
// initial burst is all the limiter will ever admit.
package ratelimit
