package collatzgo

import (
	"context"
	"math/big"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/collatzgo/executor"
	"github.com/hupe1980/collatzgo/internal/resource"
)

// Solver computes stopping times for batches under one configuration.
// It is safe for concurrent use; concurrent runs share the resource limits.
type Solver struct {
	cfg     Config
	exec    *executor.Executor
	rc      *resource.Controller
	logger  *Logger
	metrics MetricsCollector
}

// New creates a Solver from a validated configuration.
func New(cfg Config, optFns ...Option) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := applyOptions(optFns)

	logger := o.logger
	if logger == nil {
		var err error
		if logger, err = cfg.Log.NewLogger(os.Stderr); err != nil {
			return nil, err
		}
	}

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes: cfg.MemoryLimitBytes,
		MaxWorkers:       cfg.MaxWorkers,
		SpawnsPerSecond:  cfg.SpawnsPerSecond,
	})

	execOpts := []executor.Option{
		executor.WithLogger(logger.Logger),
		executor.WithResourceController(rc),
		executor.WithMetricsObserver(observer{mc: o.metricsCollector}),
		executor.WithPartialCacheCapacity(cfg.PartialCacheCapacity),
	}
	if o.workerPath != "" {
		execOpts = append(execOpts, executor.WithWorkerCommand(o.workerPath, o.workerArgs...))
	}

	exec, err := executor.New(cfg.Strategy, cfg.Workers, execOpts...)
	if err != nil {
		return nil, err
	}

	s := &Solver{
		cfg:     cfg,
		exec:    exec,
		rc:      rc,
		logger:  logger.WithStrategy(cfg.Strategy),
		metrics: o.metricsCollector,
	}
	s.logger.LogConfig(context.Background(), cfg)
	return s, nil
}

// Config returns the configuration the Solver was created with.
func (s *Solver) Config() Config { return s.cfg }

// Run returns the stopping time of every batch element, in batch order.
// On error no results are returned.
func (s *Solver) Run(ctx context.Context, batch []*big.Int) ([]uint64, error) {
	id := uuid.NewString()
	ctx = executor.WithInvocationID(ctx, id)

	start := time.Now()
	results, err := s.exec.Run(ctx, batch, s.cfg.Memoize)
	s.logger.WithInvocation(id).LogRun(ctx, len(batch), time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return results, nil
}

// Usage reports the resources currently held by runs of this Solver.
type Usage struct {
	SharedMemoryBytes int64
	LiveWorkers       int64
}

// Usage returns the current resource usage.
func (s *Solver) Usage() Usage {
	return Usage{
		SharedMemoryBytes: s.rc.MemoryUsage(),
		LiveWorkers:       s.rc.LiveWorkers(),
	}
}
