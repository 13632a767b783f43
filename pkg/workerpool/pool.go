package workerpool

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ostapkoval/conckit/pkg/queue"
	"github.com/ostapkoval/conckit/pkg/statemachine"
)

// Pool lifecycle states, exposed through Stats. Transitions are
// one-directional: a pool never re-enters Running after shutdown begins.
const (
	StateCreated      statemachine.State = "created"
	StateRunning      statemachine.State = "running"
	StateShuttingDown statemachine.State = "shutting_down"
	StateTerminated   statemachine.State = "terminated"
)

const (
	eventStart    statemachine.Event = "start"
	eventShutdown statemachine.Event = "shutdown"
	eventDrained  statemachine.Event = "drained"
)

// Pool executes submitted tasks on a fixed set of workers fed by a bounded
// queue. A full queue blocks Submit, propagating backpressure to producers
// instead of buffering without bound. The pool owns its queue and workers
// exclusively.
type Pool struct {
	name            string
	logger          *slog.Logger
	shutdownTimeout time.Duration

	queue     *queue.Bounded[submission]
	lifecycle *statemachine.Machine
	workers   []*worker
	wg        sync.WaitGroup

	baseCtx    context.Context
	baseCancel context.CancelFunc
	terminated chan struct{}

	accepted  atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
	canceled  atomic.Uint64
}

// New creates a pool with workerCount workers and an internal queue of
// queueCapacity tasks, and starts it. Both values must be at least 1.
func New(workerCount, queueCapacity int, opts ...Option) (*Pool, error) {
	if workerCount < 1 {
		return nil, ErrInvalidWorkerCount
	}

	q, err := queue.NewBounded[submission](queueCapacity)
	if err != nil {
		return nil, err
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	p := &Pool{
		name:            options.name,
		logger:          options.logger,
		shutdownTimeout: options.shutdownTimeout,
		queue:           q,
		lifecycle:       newLifecycle(),
		terminated:      make(chan struct{}),
	}
	p.baseCtx, p.baseCancel = context.WithCancel(options.baseCtx)

	p.workers = make([]*worker, workerCount)
	for i := range workerCount {
		p.workers[i] = newWorker(p)
	}

	if _, err := p.lifecycle.Fire(eventStart); err != nil {
		return nil, err
	}
	for _, w := range p.workers {
		p.wg.Add(1)
		go w.run()
	}

	p.logger.Info("worker pool started",
		slog.String("pool", p.name),
		slog.Int("workers", workerCount),
		slog.Int("queue_capacity", queueCapacity))

	return p, nil
}

func newLifecycle() *statemachine.Machine {
	m := statemachine.New(StateCreated)
	// The transition table is static; registration cannot fail.
	_ = m.AddTransition(StateCreated, StateRunning, eventStart)
	_ = m.AddTransition(StateRunning, StateShuttingDown, eventShutdown)
	_ = m.AddTransition(StateShuttingDown, StateTerminated, eventDrained)
	return m
}

// Submit enqueues a task and returns a handle observing its completion.
// Submit blocks while the internal queue is full; that is the pool's
// backpressure mechanism, not an error. It returns ErrPoolShutDown once
// shutdown has begun and ErrQueueClosed if the queue closes while the
// submission is waiting for space. A task rejected with an error is never
// executed.
func (p *Pool) Submit(task Task) (*Handle, error) {
	if task == nil {
		return nil, ErrNilTask
	}
	if !p.lifecycle.Is(StateRunning) {
		return nil, ErrPoolShutDown
	}

	h := newHandle()
	if err := p.queue.Put(submission{task: task, handle: h}); err != nil {
		return nil, ErrQueueClosed
	}
	p.accepted.Add(1)
	return h, nil
}

// Shutdown stops the pool. Graceful shutdown stops accepting tasks but lets
// queued and in-flight tasks finish. Forced shutdown additionally interrupts
// in-flight tasks through their contexts and cancels everything still queued.
// Shutdown is idempotent: calls after the first are no-ops, including a
// forced call after a graceful one.
func (p *Pool) Shutdown(graceful bool) {
	if _, err := p.lifecycle.Fire(eventShutdown); err != nil {
		return // already shutting down or terminated
	}

	p.logger.Info("worker pool shutting down",
		slog.String("pool", p.name),
		slog.Bool("graceful", graceful))

	p.queue.Close()

	if !graceful {
		p.baseCancel()
		p.discardQueued()
	}

	go func() {
		p.wg.Wait()
		if _, err := p.lifecycle.Fire(eventDrained); err == nil {
			p.baseCancel()
			close(p.terminated)
			p.logger.Info("worker pool terminated", slog.String("pool", p.name))
		}
	}()
}

// discardQueued drains the closed queue, canceling every submission that no
// worker has picked up. Submissions a worker grabs concurrently see a
// canceled base context instead.
func (p *Pool) discardQueued() {
	for {
		sub, err := p.queue.TryTake(0)
		if err != nil {
			return
		}
		if sub.handle.Cancel() {
			p.canceled.Add(1)
		}
	}
}

// AwaitTermination blocks until every worker has stopped or the timeout
// elapses, reporting whether termination completed. It only returns true
// after Shutdown has been called.
func (p *Pool) AwaitTermination(timeout time.Duration) bool {
	select {
	case <-p.terminated:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Run returns a function suitable for errgroup.Group.Go: it blocks until ctx
// ends, then shuts the pool down gracefully and waits up to the configured
// shutdown timeout for workers to stop.
func (p *Pool) Run(ctx context.Context) func() error {
	return func() error {
		<-ctx.Done()
		p.Shutdown(true)
		if !p.AwaitTermination(p.shutdownTimeout) {
			return ErrShutdownTimeout
		}
		return nil
	}
}

// State returns the pool's lifecycle state.
func (p *Pool) State() statemachine.State {
	return p.lifecycle.Current()
}

// Stats is a point-in-time snapshot of pool activity.
type Stats struct {
	State          statemachine.State
	Workers        int
	IdleWorkers    int
	RunningWorkers int
	QueueLen       int
	Accepted       uint64
	Completed      uint64
	Failed         uint64
	Canceled       uint64
}

// Stats returns a snapshot of the pool's counters and worker states.
func (p *Pool) Stats() Stats {
	s := Stats{
		State:     p.lifecycle.Current(),
		Workers:   len(p.workers),
		QueueLen:  p.queue.Len(),
		Accepted:  p.accepted.Load(),
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
		Canceled:  p.canceled.Load(),
	}
	for _, w := range p.workers {
		switch w.state.Load() {
		case workerIdle:
			s.IdleWorkers++
		case workerRunning:
			s.RunningWorkers++
		}
	}
	return s
}
