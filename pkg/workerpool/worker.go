package workerpool

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
)

// Worker states.
const (
	workerIdle int32 = iota
	workerRunning
	workerStopped
)

// submission pairs a task with the handle observing it while it sits in the
// pool's queue.
type submission struct {
	task   Task
	handle *Handle
}

// worker is a long-lived goroutine owned by the pool. It repeatedly takes
// submissions from the queue and executes them; one task's failure never
// kills the worker.
type worker struct {
	id    uuid.UUID
	pool  *Pool
	state atomic.Int32
}

func newWorker(p *Pool) *worker {
	return &worker{id: uuid.New(), pool: p}
}

func (w *worker) run() {
	defer w.pool.wg.Done()
	defer w.state.Store(workerStopped)

	for {
		sub, err := w.pool.queue.Take()
		if err != nil {
			// Queue closed and drained: the shutdown signal for workers.
			w.pool.logger.Debug("worker stopping",
				slog.String("pool", w.pool.name),
				slog.String("worker_id", w.id.String()))
			return
		}
		w.execute(sub)
	}
}

func (w *worker) execute(sub submission) {
	h := sub.handle

	ctx, cancel := context.WithCancel(w.pool.baseCtx)
	defer cancel()

	if !h.beginRun(cancel) {
		// Canceled while queued; the handle is already complete.
		w.pool.canceled.Add(1)
		return
	}

	w.state.Store(workerRunning)
	defer w.state.Store(workerIdle)

	err := w.invoke(ctx, sub.task)
	h.complete(err)

	if err != nil {
		w.pool.failed.Add(1)
		w.pool.logger.Error("task failed",
			slog.String("pool", w.pool.name),
			slog.String("worker_id", w.id.String()),
			slog.String("task_id", h.id.String()),
			slog.String("error", err.Error()))
		return
	}
	w.pool.completed.Add(1)
}

// invoke runs the task, converting a panic into an error so it is captured
// in the handle instead of tearing down the worker.
func (w *worker) invoke(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()
	return task(ctx)
}
