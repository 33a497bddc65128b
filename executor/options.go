package executor

import (
	"log/slog"

	"github.com/hupe1980/collatzgo/internal/resource"
)

// Option defines a configuration option for the Executor.
type Option func(*Executor)

// WithLogger sets the logger for the executor.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithResourceController sets the resource controller for the executor.
// A controller may be shared by several executors.
func WithResourceController(rc *resource.Controller) Option {
	return func(e *Executor) {
		e.rc = rc
	}
}

// WithMemoryLimit bounds the shared memory a process strategy may map.
// If set to 0, memory is unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(e *Executor) {
		e.rc = resource.NewController(resource.Config{
			MemoryLimitBytes: bytes,
		})
	}
}

// WithMetricsObserver sets the metrics observer for the executor.
func WithMetricsObserver(o MetricsObserver) Option {
	return func(e *Executor) {
		if o != nil {
			e.metrics = o
		}
	}
}

// WithPartialCacheCapacity sets the number of slots of the shared partial
// cache used by memoizing process strategies.
func WithPartialCacheCapacity(capacity int) Option {
	return func(e *Executor) {
		e.partialCapacity = capacity
	}
}

// WithWorkerCommand sets the program started for process strategies. It must
// call ServeWorker when IsWorker reports true. Defaults to the running
// executable.
func WithWorkerCommand(path string, args ...string) Option {
	return func(e *Executor) {
		e.workerPath = path
		e.workerArgs = args
	}
}
