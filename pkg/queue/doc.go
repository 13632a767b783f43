// Package queue provides a fixed-capacity blocking FIFO queue for handing
// work between goroutines with built-in backpressure.
//
// Unlike a buffered channel, the queue supports deadline-bounded operations
// and drain-on-close semantics: after Close, producers fail fast while
// consumers still receive every item that was enqueued before the close.
//
// # Usage
//
// Basic producer/consumer handoff:
//
//	q, err := queue.NewBounded[string](64)
//	if err != nil {
//		return err
//	}
//
//	// Producer: blocks when the queue is full.
//	if err := q.Put("job-1"); err != nil {
//		// queue.ErrClosed: consumer side has shut down
//	}
//
//	// Consumer: blocks when the queue is empty, drains after Close.
//	for {
//		item, err := q.Take()
//		if err != nil {
//			break // queue closed and fully drained
//		}
//		process(item)
//	}
//
// Bounded waits return queue.ErrTimeout instead of blocking indefinitely:
//
//	if err := q.TryPut("job-2", 100*time.Millisecond); errors.Is(err, queue.ErrTimeout) {
//		// queue stayed full for the whole window
//	}
//
// # Ordering
//
// Items are dequeued in the order they were enqueued. When several producers
// are blocked on a full queue, the order in which they proceed is the order
// in which they re-acquire the internal lock; no fairness beyond that is
// guaranteed.
package queue
