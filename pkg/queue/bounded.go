package queue

import (
	"time"

	"github.com/ostapkoval/conckit/pkg/syncx"
)

// Bounded is a fixed-capacity FIFO queue with blocking semantics.
// Put blocks while the queue is full and Take blocks while it is empty,
// which makes the queue a natural backpressure boundary between producers
// and consumers.
//
// All methods are safe for concurrent use. FIFO order is preserved across
// producers; ties between producers blocked on a full queue are broken by
// lock-acquisition order.
type Bounded[T any] struct {
	mon      *syncx.Monitor
	notFull  *syncx.Condition
	notEmpty *syncx.Condition

	// Ring buffer state, guarded by mon.
	buf    []T
	head   int
	count  int
	closed bool
}

// NewBounded creates a bounded queue with the given capacity.
// Capacity must be at least 1.
func NewBounded[T any](capacity int) (*Bounded[T], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	mon := syncx.NewMonitor()
	return &Bounded[T]{
		mon:      mon,
		notFull:  mon.NewCondition(),
		notEmpty: mon.NewCondition(),
		buf:      make([]T, capacity),
	}, nil
}

// Put appends item to the tail of the queue, blocking while the queue is
// full. It returns ErrClosed if the queue is closed before the item could
// be inserted.
func (q *Bounded[T]) Put(item T) error {
	q.mon.Lock()
	defer q.mon.Unlock()

	for q.count == len(q.buf) && !q.closed {
		q.notFull.Wait()
	}
	if q.closed {
		return ErrClosed
	}

	q.insert(item)
	q.notEmpty.Signal()
	return nil
}

// TryPut behaves like Put but gives up after timeout, returning ErrTimeout.
// A zero or negative timeout makes a single non-blocking attempt.
func (q *Bounded[T]) TryPut(item T, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	q.mon.Lock()
	defer q.mon.Unlock()

	for q.count == len(q.buf) && !q.closed {
		if !q.notFull.WaitDeadline(deadline) {
			break
		}
	}
	if q.closed {
		return ErrClosed
	}
	if q.count == len(q.buf) {
		return ErrTimeout
	}

	q.insert(item)
	q.notEmpty.Signal()
	return nil
}

// Take removes and returns the item at the head of the queue, blocking while
// the queue is empty. Once the queue is closed, Take keeps draining the
// remaining items and returns ErrClosed only when the backlog is exhausted.
func (q *Bounded[T]) Take() (T, error) {
	q.mon.Lock()
	defer q.mon.Unlock()

	for q.count == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if q.count == 0 {
		var zero T
		return zero, ErrClosed
	}

	item := q.remove()
	q.notFull.Signal()
	return item, nil
}

// TryTake behaves like Take but gives up after timeout, returning ErrTimeout.
// A zero or negative timeout makes a single non-blocking attempt.
func (q *Bounded[T]) TryTake(timeout time.Duration) (T, error) {
	deadline := time.Now().Add(timeout)
	var zero T

	q.mon.Lock()
	defer q.mon.Unlock()

	for q.count == 0 && !q.closed {
		if !q.notEmpty.WaitDeadline(deadline) {
			break
		}
	}
	if q.count == 0 {
		if q.closed {
			return zero, ErrClosed
		}
		return zero, ErrTimeout
	}

	item := q.remove()
	q.notFull.Signal()
	return item, nil
}

// Close marks the queue closed. Pending and subsequent puts fail with
// ErrClosed; takes drain the remaining backlog before reporting ErrClosed.
// Close is idempotent.
func (q *Bounded[T]) Close() {
	q.mon.Lock()
	defer q.mon.Unlock()

	if q.closed {
		return
	}
	q.closed = true

	// Wake everyone: blocked producers must fail, blocked consumers must
	// re-check for end-of-stream.
	q.notFull.Broadcast()
	q.notEmpty.Broadcast()
}

// Closed reports whether Close has been called.
func (q *Bounded[T]) Closed() bool {
	q.mon.Lock()
	defer q.mon.Unlock()
	return q.closed
}

// Len returns the number of items currently queued.
func (q *Bounded[T]) Len() int {
	q.mon.Lock()
	defer q.mon.Unlock()
	return q.count
}

// Cap returns the queue's fixed capacity.
func (q *Bounded[T]) Cap() int {
	return len(q.buf)
}

// insert must be called with the monitor locked and free space available.
func (q *Bounded[T]) insert(item T) {
	tail := (q.head + q.count) % len(q.buf)
	q.buf[tail] = item
	q.count++
}

// remove must be called with the monitor locked and the queue non-empty.
func (q *Bounded[T]) remove() T {
	item := q.buf[q.head]
	var zero T
	q.buf[q.head] = zero // drop the reference so the item can be collected
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return item
}
