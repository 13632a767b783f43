package workerpool

import "time"

// Config holds environment-driven pool settings.
type Config struct {
	Workers         int           `env:"WORKER_POOL_SIZE" envDefault:"4"`
	QueueCapacity   int           `env:"WORKER_POOL_QUEUE_CAPACITY" envDefault:"64"`
	ShutdownTimeout time.Duration `env:"WORKER_POOL_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// NewFromConfig creates a pool from a Config. Options are applied after the
// config, so they win on overlap.
func NewFromConfig(cfg Config, opts ...Option) (*Pool, error) {
	opts = append([]Option{WithShutdownTimeout(cfg.ShutdownTimeout)}, opts...)
	return New(cfg.Workers, cfg.QueueCapacity, opts...)
}
