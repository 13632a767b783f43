// Package workerpool provides a fixed-size worker pool with a bounded task
// queue, future-style handles, and graceful or forced shutdown.
//
// A pool owns its workers and its queue exclusively. Submit enqueues a task
// and returns a Handle; when the queue is full, Submit blocks, pushing
// backpressure onto producers rather than growing an unbounded backlog.
// Workers pull tasks in FIFO order and capture each task's failure — error
// or panic — into its handle, so one bad task never affects its siblings or
// the worker executing it.
//
// # Usage
//
//	pool, err := workerpool.New(4, 64, workerpool.WithName("thumbnails"))
//	if err != nil {
//		return err
//	}
//
//	handle, err := pool.Submit(func(ctx context.Context) error {
//		return renderThumbnail(ctx, img)
//	})
//	if err != nil {
//		return err // workerpool.ErrPoolShutDown after shutdown
//	}
//
//	if err := handle.Await(); err != nil {
//		// the task's own error, or workerpool.ErrTaskPanicked
//	}
//
// # Shutdown
//
// Shutdown(true) stops intake and lets queued and in-flight tasks finish;
// Shutdown(false) additionally cancels queued tasks and interrupts running
// ones through their contexts. Cancellation is cooperative: a running task
// is never killed, it is asked to stop. AwaitTermination waits for the
// workers with a timeout.
//
// The pool moves through created → running → shutting_down → terminated and
// never backwards; Submit after shutdown returns ErrPoolShutDown.
//
// For errgroup-managed services, Run ties the pool's lifetime to a context:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(pool.Run(ctx))
package workerpool
