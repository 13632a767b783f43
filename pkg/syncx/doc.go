// Package syncx provides the monitor primitive shared by the toolkit's
// blocking structures: a mutex that owns any number of condition variables,
// with plain and deadline-bounded waits.
//
// Usage follows the classic monitor discipline:
//
//	mon := syncx.NewMonitor()
//	notEmpty := mon.NewCondition()
//
//	// consumer
//	mon.Lock()
//	for len(items) == 0 {
//		notEmpty.Wait()
//	}
//	item := items[0]
//	mon.Unlock()
//
//	// producer
//	mon.Lock()
//	items = append(items, item)
//	notEmpty.Signal()
//	mon.Unlock()
//
// Predicates must always be re-checked in a loop: wakeups may be spurious,
// and deadline expiry wakes every waiter on the condition.
package syncx
