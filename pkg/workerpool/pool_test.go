package workerpool_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostapkoval/conckit/pkg/queue"
	"github.com/ostapkoval/conckit/pkg/workerpool"
)

func newTestPool(t *testing.T, workers, capacity int, opts ...workerpool.Option) *workerpool.Pool {
	t.Helper()

	opts = append([]workerpool.Option{
		workerpool.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)

	p, err := workerpool.New(workers, capacity, opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		p.Shutdown(true)
		p.AwaitTermination(5 * time.Second)
	})
	return p
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := workerpool.New(0, 10)
	assert.ErrorIs(t, err, workerpool.ErrInvalidWorkerCount)

	_, err = workerpool.New(2, 0)
	assert.ErrorIs(t, err, queue.ErrInvalidCapacity)
}

func TestPool_ExecutesSubmittedTasks(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 3, 8)

	var executed atomic.Int32
	handles := make([]*workerpool.Handle, 0, 20)
	for range 20 {
		h, err := p.Submit(func(context.Context) error {
			executed.Add(1)
			return nil
		})
		require.NoError(t, err)
		handles = append(handles, h)
	}

	for _, h := range handles {
		require.NoError(t, h.Await())
		assert.True(t, h.IsComplete())
	}
	assert.Equal(t, int32(20), executed.Load())

	stats := p.Stats()
	assert.Equal(t, uint64(20), stats.Accepted)
	assert.Equal(t, uint64(20), stats.Completed)
	assert.Equal(t, workerpool.StateRunning, stats.State)
}

func TestPool_TaskErrorIsCapturedInHandle(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1, 4)

	boom := errors.New("boom")
	h, err := p.Submit(func(context.Context) error { return boom })
	require.NoError(t, err)
	assert.ErrorIs(t, h.Await(), boom)

	// The worker must survive the failure.
	h2, err := p.Submit(func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.NoError(t, h2.Await())

	assert.Equal(t, uint64(1), p.Stats().Failed)
}

func TestPool_TaskPanicIsCapturedInHandle(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1, 4)

	h, err := p.Submit(func(context.Context) error { panic("kaboom") })
	require.NoError(t, err)

	err = h.Await()
	assert.ErrorIs(t, err, workerpool.ErrTaskPanicked)
	assert.Contains(t, err.Error(), "kaboom")

	// Sibling tasks and the worker are unaffected.
	h2, err := p.Submit(func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.NoError(t, h2.Await())
}

func TestPool_SubmitNilTask(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1, 1)
	_, err := p.Submit(nil)
	assert.ErrorIs(t, err, workerpool.ErrNilTask)
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	t.Parallel()

	t.Run("forced shutdown rejects and never executes", func(t *testing.T) {
		t.Parallel()

		p := newTestPool(t, 2, 4)
		p.Shutdown(false)

		var executed atomic.Bool
		_, err := p.Submit(func(context.Context) error {
			executed.Store(true)
			return nil
		})
		assert.ErrorIs(t, err, workerpool.ErrPoolShutDown)

		require.True(t, p.AwaitTermination(5*time.Second))
		assert.False(t, executed.Load(), "rejected task must never run")
	})

	t.Run("graceful shutdown rejects new tasks", func(t *testing.T) {
		t.Parallel()

		p := newTestPool(t, 2, 4)
		p.Shutdown(true)

		_, err := p.Submit(func(context.Context) error { return nil })
		assert.ErrorIs(t, err, workerpool.ErrPoolShutDown)
	})
}

func TestPool_GracefulShutdownDrainsQueue(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1, 8)

	var executed atomic.Int32
	block := make(chan struct{})
	first, err := p.Submit(func(context.Context) error {
		<-block
		executed.Add(1)
		return nil
	})
	require.NoError(t, err)

	handles := []*workerpool.Handle{first}
	for range 5 {
		h, err := p.Submit(func(context.Context) error {
			executed.Add(1)
			return nil
		})
		require.NoError(t, err)
		handles = append(handles, h)
	}

	p.Shutdown(true)
	close(block)

	require.True(t, p.AwaitTermination(5*time.Second))
	assert.Equal(t, int32(6), executed.Load(), "graceful shutdown must run every queued task")
	for _, h := range handles {
		assert.NoError(t, h.Err())
	}
	assert.Equal(t, workerpool.StateTerminated, p.State())
}

func TestPool_ForcedShutdownDiscardsQueuedAndInterruptsRunning(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1, 8)

	started := make(chan struct{})
	running, err := p.Submit(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	require.NoError(t, err)
	<-started

	var executed atomic.Int32
	queued := make([]*workerpool.Handle, 0, 4)
	for range 4 {
		h, err := p.Submit(func(context.Context) error {
			executed.Add(1)
			return nil
		})
		require.NoError(t, err)
		queued = append(queued, h)
	}

	p.Shutdown(false)
	require.True(t, p.AwaitTermination(5*time.Second))

	assert.ErrorIs(t, running.Await(), context.Canceled, "in-flight task must be interrupted cooperatively")
	for _, h := range queued {
		assert.ErrorIs(t, h.Await(), workerpool.ErrTaskCanceled)
		assert.True(t, h.Canceled())
	}
	assert.Zero(t, executed.Load(), "queued tasks must be discarded by forced shutdown")
}

func TestPool_ShutdownIsIdempotent(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1, 4)

	var executed atomic.Int32
	block := make(chan struct{})
	_, err := p.Submit(func(context.Context) error {
		<-block
		executed.Add(1)
		return nil
	})
	require.NoError(t, err)

	h, err := p.Submit(func(context.Context) error {
		executed.Add(1)
		return nil
	})
	require.NoError(t, err)

	p.Shutdown(true)
	// A forced call after a graceful one is a no-op: queued work still runs.
	p.Shutdown(false)
	close(block)

	require.True(t, p.AwaitTermination(5*time.Second))
	assert.Equal(t, int32(2), executed.Load())
	assert.NoError(t, h.Err())
}

func TestPool_AwaitTermination(t *testing.T) {
	t.Parallel()

	t.Run("times out while the pool is running", func(t *testing.T) {
		t.Parallel()

		p := newTestPool(t, 1, 1)
		assert.False(t, p.AwaitTermination(20*time.Millisecond))
	})

	t.Run("returns true after shutdown completes", func(t *testing.T) {
		t.Parallel()

		p := newTestPool(t, 2, 2)
		p.Shutdown(true)
		assert.True(t, p.AwaitTermination(5*time.Second))
		assert.Equal(t, workerpool.StateTerminated, p.State())
	})
}

func TestPool_BackpressureEndToEnd(t *testing.T) {
	t.Parallel()

	// 2 workers, queue capacity 1: the first three submissions land
	// immediately (two executing, one queued); submissions 4 and 5 must wait
	// for earlier tasks to drain.
	p := newTestPool(t, 2, 1)

	var completed atomic.Int32
	task := func(context.Context) error {
		time.Sleep(10 * time.Millisecond)
		completed.Add(1)
		return nil
	}

	handles := make([]*workerpool.Handle, 0, 5)
	for i := range 5 {
		h, err := p.Submit(task)
		require.NoError(t, err)
		handles = append(handles, h)

		if i == 4 {
			assert.GreaterOrEqual(t, completed.Load(), int32(1),
				"the fifth Submit can only proceed after earlier tasks drained the queue")
		}
	}

	for _, h := range handles {
		require.NoError(t, h.Await())
	}
	assert.Equal(t, int32(5), completed.Load())

	p.Shutdown(true)
	assert.True(t, p.AwaitTermination(time.Second))
}

func TestPool_SubmitBlocksOnFullQueue(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1, 1)

	block := make(chan struct{})
	defer close(block)

	_, err := p.Submit(func(context.Context) error { <-block; return nil })
	require.NoError(t, err)

	// Wait for the worker to pick up the first task, then fill the queue.
	require.Eventually(t, func() bool {
		return p.Stats().RunningWorkers == 1
	}, time.Second, time.Millisecond)
	_, err = p.Submit(func(context.Context) error { return nil })
	require.NoError(t, err)

	submitted := make(chan struct{})
	go func() {
		defer close(submitted)
		_, _ = p.Submit(func(context.Context) error { return nil })
	}()

	select {
	case <-submitted:
		t.Fatal("Submit returned while the queue was full")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPool_Stats(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 2, 4)

	stats := p.Stats()
	assert.Equal(t, workerpool.StateRunning, stats.State)
	assert.Equal(t, 2, stats.Workers)
	assert.Equal(t, 2, stats.IdleWorkers)
	assert.Zero(t, stats.RunningWorkers)

	started := make(chan struct{}, 1)
	block := make(chan struct{})
	defer close(block)
	_, err := p.Submit(func(context.Context) error {
		started <- struct{}{}
		<-block
		return nil
	})
	require.NoError(t, err)
	<-started

	require.Eventually(t, func() bool {
		s := p.Stats()
		return s.RunningWorkers == 1 && s.IdleWorkers == 1
	}, time.Second, time.Millisecond)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	p, err := workerpool.NewFromConfig(workerpool.Config{
		Workers:         2,
		QueueCapacity:   8,
		ShutdownTimeout: time.Second,
	}, workerpool.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	defer func() {
		p.Shutdown(true)
		p.AwaitTermination(time.Second)
	}()

	assert.Equal(t, 2, p.Stats().Workers)

	_, err = workerpool.NewFromConfig(workerpool.Config{Workers: 0, QueueCapacity: 8})
	assert.ErrorIs(t, err, workerpool.ErrInvalidWorkerCount)
}
