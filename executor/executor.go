package executor

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/collatzgo/internal/collatz"
	"github.com/hupe1980/collatzgo/internal/conv"
	"github.com/hupe1980/collatzgo/internal/memo"
	"github.com/hupe1980/collatzgo/internal/resource"
)

// Executor computes stopping times for batches under one strategy.
// It holds no per-batch state and is safe for concurrent use.
type Executor struct {
	strategy Strategy
	workers  int

	logger          *slog.Logger
	rc              *resource.Controller
	metrics         MetricsObserver
	partialCapacity int

	workerPath string
	workerArgs []string
}

// New creates an executor. workers is the wave size, worker count or pool
// size depending on the strategy; for Async it is the number of futures that
// may run at once.
func New(strategy Strategy, workers int, opts ...Option) (*Executor, error) {
	if !strategy.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
	if workers <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}

	e := &Executor{
		strategy:        strategy,
		workers:         workers,
		logger:          slog.New(slog.DiscardHandler),
		metrics:         NoopMetricsObserver{},
		partialCapacity: memo.DefaultPartialCapacity,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.partialCapacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, e.partialCapacity)
	}
	return e, nil
}

// Strategy returns the executor's strategy.
func (e *Executor) Strategy() Strategy { return e.strategy }

// Workers returns the configured worker count.
func (e *Executor) Workers() int { return e.workers }

// Run returns the stopping time of every batch element, in batch order.
//
// With memoize set, a memoization backend scoped to this call is shared by
// all workers: an RW-locked map for in-process strategies, a shared partial
// array for process strategies. ctx gates dispatch only; units that have
// started always run to completion. On error no results are returned.
func (e *Executor) Run(ctx context.Context, batch []*big.Int, memoize bool) (results []uint64, err error) {
	start := time.Now()

	id := InvocationID(ctx)
	if id == "" {
		id = uuid.NewString()
	}
	log := e.logger.With("invocation", id, "strategy", e.strategy.String(), "workers", e.workers)

	defer func() {
		e.metrics.OnRun(e.strategy, len(batch), time.Since(start), err)
	}()

	if err := validateBatch(batch); err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return []uint64{}, nil
	}

	sched, err := e.plan(len(batch))
	if err != nil {
		return nil, err
	}

	inv := &invocation{
		batch:   batch,
		results: make([]uint64, len(batch)),
		done:    newTracker(len(batch)),
		log:     log,
	}

	r, err := e.newRunner(ctx, inv, memoize)
	if err != nil {
		log.Error("invocation aborted before dispatch", "error", err)
		return nil, err
	}
	defer func() {
		if closeErr := r.close(); closeErr != nil && err == nil {
			results, err = nil, closeErr
		}
	}()

	for c := range sched.cohorts() {
		e.metrics.OnCohort(e.strategy, len(c.units))
		log.Debug("dispatching cohort", "cohort", c.index, "units", len(c.units))

		if err := r.runCohort(ctx, inv, c); err != nil {
			log.Error("invocation aborted", "cohort", c.index, "error", err)
			return nil, err
		}
	}

	if err := r.collect(inv); err != nil {
		return nil, err
	}
	if err := inv.done.complete(); err != nil {
		return nil, err
	}

	log.Debug("invocation completed", "items", len(batch), "memoize", memoize, "duration", time.Since(start))
	return inv.results, nil
}

func validateBatch(batch []*big.Int) error {
	if err := checkBatchLen(len(batch)); err != nil {
		return err
	}
	for i, v := range batch {
		if v == nil || v.Sign() <= 0 {
			return &InvalidValueError{Index: i}
		}
	}
	return nil
}

// checkBatchLen rejects batches whose indices do not fit the completion
// tracker's uint32 domain.
func checkBatchLen(n int) error {
	if _, err := conv.IntToUint32(n); err != nil {
		return fmt.Errorf("%w: %w", ErrBatchTooLarge, err)
	}
	return nil
}

// runner is the concurrency primitive of a strategy, scoped to one Run.
type runner interface {
	// runCohort dispatches every unit of c and returns once all of them
	// have finished and their results are published.
	runCohort(ctx context.Context, inv *invocation, c cohort) error
	// collect moves results that live outside inv into it.
	collect(inv *invocation) error
	// close releases everything the runner holds.
	close() error
}

func (e *Executor) newRunner(ctx context.Context, inv *invocation, memoize bool) (runner, error) {
	if e.strategy.UsesProcesses() {
		r, err := newProcessRunner(e, inv, memoize)
		if err != nil {
			return nil, err
		}
		return r, nil
	}

	base := threadBase{e: e}
	if memoize {
		base.store = memo.NewStore()
		inv.memo = base.store
	}

	switch e.strategy {
	case ThreadPool:
		r, err := newPoolRunner(ctx, base)
		if err != nil {
			return nil, err
		}
		return r, nil
	case Async:
		return newAsyncRunner(base), nil
	default:
		return &goroutineRunner{threadBase: base}, nil
	}
}

// invocation is the state of one Run shared by its workers.
type invocation struct {
	batch   []*big.Int
	memo    collatz.Memo // nil without memoization
	results []uint64
	done    *tracker
	log     *slog.Logger
}

// compute evaluates unit u sequentially and returns its counts in position
// order.
func (inv *invocation) compute(c cohort, u unit) []uint64 {
	counts := make([]uint64, u.count)
	for j := range counts {
		counts[j] = collatz.Compute(inv.batch[c.partition.Index(u.sub, u.from+j)], inv.memo)
	}
	return counts
}

// publish stores counts at their original batch indices. Only the
// dispatching goroutine publishes.
func (inv *invocation) publish(c cohort, u unit, counts []uint64) {
	for j, v := range counts {
		i := c.partition.Index(u.sub, u.from+j)
		inv.results[i] = v
		inv.done.mark(i)
	}
}

// threadBase carries what every in-process runner shares.
type threadBase struct {
	e     *Executor
	store *memo.Store // nil without memoization
}

func (b threadBase) collect(*invocation) error {
	if b.store != nil {
		hits, misses := b.store.Stats()
		b.e.metrics.OnMemo(b.e.strategy, hits, misses)
	}
	return nil
}

func (b threadBase) close() error { return nil }

type invocationKey struct{}

// WithInvocationID returns a context carrying id. Run tags its log records
// with it instead of generating a fresh one.
func WithInvocationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, invocationKey{}, id)
}

// InvocationID returns the id stored by WithInvocationID, or "".
func InvocationID(ctx context.Context) string {
	id, _ := ctx.Value(invocationKey{}).(string)
	return id
}
