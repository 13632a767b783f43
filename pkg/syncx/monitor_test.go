package syncx_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostapkoval/conckit/pkg/syncx"
)

func TestMonitor_SignalWakesWaiter(t *testing.T) {
	t.Parallel()

	mon := syncx.NewMonitor()
	cond := mon.NewCondition()

	ready := false
	done := make(chan struct{})

	go func() {
		defer close(done)
		mon.Lock()
		for !ready {
			cond.Wait()
		}
		mon.Unlock()
	}()

	// Give the waiter a moment to park before signaling.
	time.Sleep(10 * time.Millisecond)

	mon.Lock()
	ready = true
	cond.Signal()
	mon.Unlock()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken by Signal")
	}
}

func TestMonitor_BroadcastWakesAllWaiters(t *testing.T) {
	t.Parallel()

	mon := syncx.NewMonitor()
	cond := mon.NewCondition()

	const waiters = 5
	ready := false

	var wg sync.WaitGroup
	for range waiters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mon.Lock()
			for !ready {
				cond.Wait()
			}
			mon.Unlock()
		}()
	}

	time.Sleep(10 * time.Millisecond)

	mon.Lock()
	ready = true
	cond.Broadcast()
	mon.Unlock()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("not all waiters were woken by Broadcast")
	}
}

func TestMonitor_WaitDeadline(t *testing.T) {
	t.Parallel()

	t.Run("expired deadline returns false without waiting", func(t *testing.T) {
		t.Parallel()

		mon := syncx.NewMonitor()
		cond := mon.NewCondition()

		mon.Lock()
		defer mon.Unlock()

		ok := cond.WaitDeadline(time.Now().Add(-time.Millisecond))
		assert.False(t, ok)
	})

	t.Run("times out when nobody signals", func(t *testing.T) {
		t.Parallel()

		mon := syncx.NewMonitor()
		cond := mon.NewCondition()

		mon.Lock()
		defer mon.Unlock()

		start := time.Now()
		deadline := start.Add(30 * time.Millisecond)
		for cond.WaitDeadline(deadline) {
			// Keep waiting; the predicate never becomes true.
		}
		require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	})

	t.Run("returns true when signaled before deadline", func(t *testing.T) {
		t.Parallel()

		mon := syncx.NewMonitor()
		cond := mon.NewCondition()

		go func() {
			time.Sleep(10 * time.Millisecond)
			mon.Lock()
			cond.Signal()
			mon.Unlock()
		}()

		mon.Lock()
		defer mon.Unlock()

		ok := cond.WaitDeadline(time.Now().Add(time.Second))
		assert.True(t, ok)
	})
}

func TestMonitor_MultipleConditionsShareOneLock(t *testing.T) {
	t.Parallel()

	mon := syncx.NewMonitor()
	notFull := mon.NewCondition()
	notEmpty := mon.NewCondition()

	const capacity = 2
	var buf []int
	done := make(chan struct{})

	// Consumer drains five items through a two-slot buffer.
	go func() {
		defer close(done)
		for range 5 {
			mon.Lock()
			for len(buf) == 0 {
				notEmpty.Wait()
			}
			buf = buf[1:]
			notFull.Signal()
			mon.Unlock()
		}
	}()

	for i := range 5 {
		mon.Lock()
		for len(buf) == capacity {
			notFull.Wait()
		}
		buf = append(buf, i)
		notEmpty.Signal()
		mon.Unlock()
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("producer/consumer handoff deadlocked")
	}
}
