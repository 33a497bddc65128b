package executor

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// asyncRunner launches one future per unit, each on its own goroutine, with
// at most W of them running at once. When the resource controller refuses a
// live worker the future is deferred and evaluated by the collector when
// read.
type asyncRunner struct {
	threadBase
	slots *semaphore.Weighted
}

func newAsyncRunner(b threadBase) *asyncRunner {
	return &asyncRunner{
		threadBase: b,
		slots:      semaphore.NewWeighted(int64(b.e.workers)),
	}
}

func (r *asyncRunner) runCohort(ctx context.Context, inv *invocation, c cohort) error {
	rc := r.e.rc
	futures := make([]*future[[]uint64], 0, len(c.units))

	var (
		g           errgroup.Group
		deferred    int
		dispatchErr error
	)
	for _, u := range c.units {
		if err := r.slots.Acquire(ctx, 1); err != nil {
			dispatchErr = resourceError("acquire async slot", err)
			r.e.metrics.OnSpawn(r.e.strategy, dispatchErr)
			break
		}

		if !rc.TryAcquireWorker() {
			r.slots.Release(1)
			futures = append(futures, deferredFuture(func() []uint64 { return inv.compute(c, u) }))
			deferred++
			continue
		}

		f := newFuture[[]uint64]()
		futures = append(futures, f)
		r.e.metrics.OnSpawn(r.e.strategy, nil)

		g.Go(func() error {
			defer r.slots.Release(1)
			defer rc.ReleaseWorker()
			f.resolve(inv.compute(c, u))
			return nil
		})
	}
	inv.log.Debug("futures launched", "started", len(futures)-deferred, "deferred", deferred)

	if dispatchErr != nil {
		_ = g.Wait()
		return dispatchErr
	}

	for k, f := range futures {
		inv.publish(c, c.units[k], f.get())
	}
	return g.Wait()
}
