package workerpool

import (
	"context"
	"log/slog"
	"time"
)

// Option is a functional option for configuring a pool.
type Option func(*options)

type options struct {
	name            string
	logger          *slog.Logger
	baseCtx         context.Context
	shutdownTimeout time.Duration
}

func defaultOptions() *options {
	return &options{
		name:            "default",
		logger:          slog.Default(),
		baseCtx:         context.Background(),
		shutdownTimeout: 30 * time.Second,
	}
}

// WithName sets the pool name used in log records.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets the logger for pool and worker events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBaseContext sets the parent context for task contexts. Canceling it
// interrupts every in-flight task.
func WithBaseContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.baseCtx = ctx
		}
	}
}

// WithShutdownTimeout bounds how long Run waits for workers after a
// graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}
