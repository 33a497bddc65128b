package executor

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// goroutineRunner starts one goroutine per unit. It serves wave-threads
// (cohorts of single-item units) and static-threads (one cohort of W
// sub-batch units).
type goroutineRunner struct {
	threadBase
}

func (r *goroutineRunner) runCohort(ctx context.Context, inv *invocation, c cohort) error {
	rc := r.e.rc
	futures := make([]*future[[]uint64], 0, len(c.units))

	var (
		g           errgroup.Group
		dispatchErr error
	)
	for _, u := range c.units {
		if err := rc.AcquireWorker(ctx); err != nil {
			dispatchErr = resourceError("acquire worker", err)
			r.e.metrics.OnSpawn(r.e.strategy, dispatchErr)
			break
		}

		f := newFuture[[]uint64]()
		futures = append(futures, f)
		r.e.metrics.OnSpawn(r.e.strategy, nil)

		g.Go(func() error {
			defer rc.ReleaseWorker()
			f.resolve(inv.compute(c, u))
			return nil
		})
	}

	// Barrier: the cohort is joined even when dispatch stopped early.
	_ = g.Wait()
	if dispatchErr != nil {
		return dispatchErr
	}

	for k, f := range futures {
		inv.publish(c, c.units[k], f.get())
	}
	return nil
}
