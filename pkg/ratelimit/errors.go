package ratelimit

import "errors"

var (
	// ErrInvalidRate is returned when the refill rate is negative or not a
	// finite number. A rate of zero is valid: the bucket never refills.
	ErrInvalidRate = errors.New("refill rate must be a non-negative finite number")

	// ErrInvalidBurst is returned when the burst capacity is below 1.
	ErrInvalidBurst = errors.New("burst capacity must be at least 1")

	// ErrPermitsExceedBurst is returned by Acquire when the request can never
	// be satisfied because it asks for more permits than the bucket can hold.
	ErrPermitsExceedBurst = errors.New("requested permits exceed burst capacity")
)
