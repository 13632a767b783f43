package syncx

import (
	"sync"
	"time"
)

// Monitor is a mutex that can carry any number of condition variables.
// It exists so that blocking structures (bounded queues, pools) share one
// wait/signal vocabulary instead of each wiring sync.Cond by hand.
type Monitor struct {
	mu sync.Mutex
}

// NewMonitor creates an unlocked monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// Lock acquires the monitor's mutex.
func (m *Monitor) Lock() {
	m.mu.Lock()
}

// Unlock releases the monitor's mutex.
func (m *Monitor) Unlock() {
	m.mu.Unlock()
}

// NewCondition creates a condition variable bound to the monitor's mutex.
// Multiple conditions may share the same monitor.
func (m *Monitor) NewCondition() *Condition {
	return &Condition{cond: sync.NewCond(&m.mu)}
}

// Condition is a condition variable tied to its monitor's mutex.
// All waits must be performed with the monitor locked, and callers must
// re-check their predicate after every wakeup: wakeups can be spurious,
// and WaitDeadline wakes every waiter on the condition when a deadline fires.
type Condition struct {
	cond *sync.Cond
}

// Wait atomically releases the monitor and suspends the calling goroutine
// until Signal or Broadcast. The monitor is re-acquired before returning.
func (c *Condition) Wait() {
	c.cond.Wait()
}

// WaitDeadline waits like Wait but gives up at the deadline.
// It returns false once the deadline has passed, true otherwise.
// A true return does not imply the predicate holds.
func (c *Condition) WaitDeadline(deadline time.Time) bool {
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return false
	}

	// Broadcast may be called without holding the lock, so a timer is enough
	// to bound the wait. Waiters sharing the condition wake and re-check.
	t := time.AfterFunc(remaining, c.cond.Broadcast)
	defer t.Stop()

	c.cond.Wait()
	return time.Now().Before(deadline)
}

// Signal wakes one goroutine waiting on the condition, if any.
func (c *Condition) Signal() {
	c.cond.Signal()
}

// Broadcast wakes all goroutines waiting on the condition.
func (c *Condition) Broadcast() {
	c.cond.Broadcast()
}
