package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Task is a unit of work executed by the pool. The context is canceled when
// the task is interrupted (Handle.Cancel on a running task, or a forced
// shutdown); cooperative tasks should honor it at their blocking points.
type Task func(ctx context.Context) error

// Handle states.
const (
	handlePending int32 = iota
	handleRunning
	handleCompleted
	handleCanceled
)

// Handle observes the completion, result, and cancellation of a submitted
// task. Handles are created by Pool.Submit; the zero value is not usable.
type Handle struct {
	id    uuid.UUID
	done  chan struct{}
	state atomic.Int32

	mu        sync.Mutex
	err       error
	interrupt context.CancelFunc // non-nil only while running
}

func newHandle() *Handle {
	return &Handle{
		id:   uuid.New(),
		done: make(chan struct{}),
	}
}

// ID returns the unique identifier assigned at submission.
func (h *Handle) ID() uuid.UUID {
	return h.id
}

// Done returns a channel closed when the task completes, fails, or is
// canceled before execution.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// IsComplete reports whether the task has finished, without blocking.
func (h *Handle) IsComplete() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Await blocks until the task finishes and returns its error: nil on
// success, the task's own error, ErrTaskPanicked for a recovered panic, or
// ErrTaskCanceled for pre-start cancellation.
func (h *Handle) Await() error {
	<-h.done
	return h.Err()
}

// AwaitWithTimeout waits like Await but returns ErrAwaitTimeout if the task
// has not finished when the timeout elapses. The task keeps running.
func (h *Handle) AwaitWithTimeout(timeout time.Duration) error {
	select {
	case <-h.done:
		return h.Err()
	case <-time.After(timeout):
		return ErrAwaitTimeout
	}
}

// Err returns the task's terminal error. It is nil until the handle is
// complete.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Canceled reports whether the task was canceled before it started.
func (h *Handle) Canceled() bool {
	return h.state.Load() == handleCanceled
}

// Cancel requests cancellation. A task that has not started is removed and
// never executes; its handle completes with ErrTaskCanceled. A running task
// only receives a cooperative interrupt through its context. Cancel returns
// true if a cancellation signal was delivered, false if the task had already
// finished.
func (h *Handle) Cancel() bool {
	if h.state.CompareAndSwap(handlePending, handleCanceled) {
		h.mu.Lock()
		h.err = ErrTaskCanceled
		h.mu.Unlock()
		close(h.done)
		return true
	}

	if h.state.Load() == handleRunning {
		h.mu.Lock()
		interrupt := h.interrupt
		h.mu.Unlock()
		if interrupt != nil {
			interrupt()
			return true
		}
	}
	return false
}

// beginRun transitions the handle to running, wiring the interrupt used for
// cooperative cancellation. It returns false if the handle was canceled
// before execution, in which case the worker must skip the task.
func (h *Handle) beginRun(interrupt context.CancelFunc) bool {
	if !h.state.CompareAndSwap(handlePending, handleRunning) {
		return false
	}
	h.mu.Lock()
	h.interrupt = interrupt
	h.mu.Unlock()
	return true
}

// complete records the task's terminal error and releases waiters.
func (h *Handle) complete(err error) {
	h.mu.Lock()
	h.err = err
	h.interrupt = nil
	h.mu.Unlock()
	h.state.Store(handleCompleted)
	close(h.done)
}
