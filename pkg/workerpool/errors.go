package workerpool

import (
	"errors"

	"github.com/ostapkoval/conckit/pkg/queue"
)

// Common errors
var (
	// ErrInvalidWorkerCount is returned when constructing a pool with fewer
	// than one worker.
	ErrInvalidWorkerCount = errors.New("worker count must be at least 1")

	// ErrNilTask is returned by Submit when the task is nil.
	ErrNilTask = errors.New("task cannot be nil")

	// ErrPoolShutDown is returned by Submit once shutdown has begun.
	ErrPoolShutDown = errors.New("worker pool is shut down")

	// ErrQueueClosed is returned by Submit when the internal queue closed
	// while the submission was waiting for space.
	ErrQueueClosed = queue.ErrClosed

	// ErrTaskCanceled is reported by a handle whose task was canceled before
	// it started executing.
	ErrTaskCanceled = errors.New("task canceled before execution")

	// ErrTaskPanicked wraps the recovered value of a task that panicked.
	ErrTaskPanicked = errors.New("task panicked")

	// ErrAwaitTimeout is returned by Handle.AwaitWithTimeout when the task
	// does not complete in time.
	ErrAwaitTimeout = errors.New("await timed out")

	// ErrShutdownTimeout is returned by Run when workers do not stop within
	// the configured shutdown timeout.
	ErrShutdownTimeout = errors.New("worker pool shutdown timed out")
)
