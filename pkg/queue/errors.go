package queue

import "errors"

// Common errors
var (
	// ErrInvalidCapacity is returned when constructing a queue with capacity < 1.
	ErrInvalidCapacity = errors.New("queue capacity must be at least 1")

	// ErrClosed is returned by Put on a closed queue, and by Take once a
	// closed queue has been fully drained.
	ErrClosed = errors.New("queue is closed")

	// ErrTimeout is returned by TryPut and TryTake when the timeout elapses
	// before the operation can make progress.
	ErrTimeout = errors.New("queue operation timed out")
)
