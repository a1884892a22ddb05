package pool

import "runtime"

// WorkerPoolOption is a functional option for configuring the worker pool
// and the fork-join helper.
type WorkerPoolOption func(*poolConfig)

type poolConfig struct {
	workerCount int
	taskBuffer  int
	pinWorkers  bool
}

func createConfig(opts ...WorkerPoolOption) *poolConfig {
	cfg := &poolConfig{
		workerCount: runtime.GOMAXPROCS(0),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.taskBuffer == 0 {
		cfg.taskBuffer = cfg.workerCount
	}

	return cfg
}

// WithWorkerCount sets the number of concurrent workers.
// If not specified, defaults to runtime.GOMAXPROCS(0).
func WithWorkerCount(count int) WorkerPoolOption {
	return func(cfg *poolConfig) {
		if count > 0 {
			cfg.workerCount = count
		}
	}
}

// WithTaskBuffer sets the buffer size for the task channel.
// If not specified, defaults to the number of workers.
func WithTaskBuffer(size int) WorkerPoolOption {
	return func(cfg *poolConfig) {
		if size >= 0 {
			cfg.taskBuffer = size
		}
	}
}

// WithAffinity pins each worker goroutine to its own OS thread and core for
// the lifetime of a Process call. Fork-join children are not pinned.
func WithAffinity() WorkerPoolOption {
	return func(cfg *poolConfig) {
		cfg.pinWorkers = true
	}
}
