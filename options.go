package collatzgo

import (
	"log/slog"
	"os"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	workerPath       string
	workerArgs       []string
}

// Option configures Solver construction.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &collatzgo.BasicMetricsCollector{}
//	s, _ := collatzgo.New(cfg, collatzgo.WithMetricsCollector(metrics))
//	// ... use s ...
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, Avg latency: %dns\n", stats.RunCount, stats.RunAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging. It takes precedence over the
// log section of the Config. Pass nil to use the Config's logger.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger on stderr with the specified level and
// sets it. Convenience wrapper for WithLogger(NewTextLogger(os.Stderr, level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(os.Stderr, level)
	}
}

// WithWorkerCommand sets the program started by process strategies instead
// of the running executable. The program must call ServeWorker when
// IsWorker reports true.
func WithWorkerCommand(path string, args ...string) Option {
	return func(o *options) {
		o.workerPath = path
		o.workerArgs = args
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	return o
}
