package executor

import (
	"context"
	"fmt"

	"github.com/hupe1980/collatzgo/internal/resource"
)

// poolRunner submits one task per unit to a WorkerPool owned by the
// invocation.
type poolRunner struct {
	threadBase
	pool     *WorkerPool
	reserved int
}

func newPoolRunner(ctx context.Context, b threadBase) (*poolRunner, error) {
	r := &poolRunner{threadBase: b}

	if limit := b.e.rc.MaxWorkers(); limit > 0 && int64(b.e.workers) > limit {
		err := resourceError("reserve pool", fmt.Errorf("%w: pool of %d, limit %d",
			resource.ErrWorkerLimitExceeded, b.e.workers, limit))
		b.e.metrics.OnSpawn(b.e.strategy, err)
		return nil, err
	}

	// Pool goroutines are live workers for their whole lifetime.
	for range b.e.workers {
		if err := b.e.rc.AcquireWorker(ctx); err != nil {
			r.releaseWorkers()
			err = resourceError("acquire pool worker", err)
			b.e.metrics.OnSpawn(b.e.strategy, err)
			return nil, err
		}
		r.reserved++
	}

	r.pool = NewWorkerPool(b.e.workers)
	for range r.pool.Size() {
		b.e.metrics.OnSpawn(b.e.strategy, nil)
	}
	return r, nil
}

func (r *poolRunner) runCohort(ctx context.Context, inv *invocation, c cohort) error {
	// One result channel per item, read in input order.
	futures := make([]*future[[]uint64], len(c.units))

	for k, u := range c.units {
		f := newFuture[[]uint64]()
		task := func() { f.resolve(inv.compute(c, u)) }

		if err := r.pool.Submit(ctx, task); err != nil {
			// Tasks already queued still run; wait for them before aborting.
			for _, submitted := range futures[:k] {
				submitted.get()
			}
			return resourceError("submit task", err)
		}
		futures[k] = f
	}

	for k, f := range futures {
		inv.publish(c, c.units[k], f.get())
	}
	return nil
}

func (r *poolRunner) close() error {
	r.pool.Close()
	r.releaseWorkers()
	return r.threadBase.close()
}

func (r *poolRunner) releaseWorkers() {
	for ; r.reserved > 0; r.reserved-- {
		r.e.rc.ReleaseWorker()
	}
}
