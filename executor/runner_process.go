package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/hupe1980/collatzgo/internal/memo"
	"github.com/hupe1980/collatzgo/internal/shm"
)

// processRunner runs units in worker processes that share the input, the
// results and optionally a partial cache with the parent through mapped
// regions. Regions are charged to the resource controller's memory budget.
type processRunner struct {
	e    *Executor
	path string
	args []string

	input   *shm.Region
	results *shm.Region
	partial *shm.Region
	cache   *memo.PartialArray
	charged int64
}

func newProcessRunner(e *Executor, inv *invocation, memoize bool) (*processRunner, error) {
	r := &processRunner{e: e, path: e.workerPath, args: e.workerArgs}
	if r.path == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, resourceError("resolve worker executable", err)
		}
		r.path = exe
	}

	if err := r.mapRegions(inv, memoize); err != nil {
		return nil, errors.Join(err, r.close())
	}
	return r, nil
}

func (r *processRunner) mapRegions(inv *invocation, memoize bool) (err error) {
	if r.input, err = r.alloc("input", encodedSize(inv.batch)); err != nil {
		return err
	}
	encodeBatch(r.input.Bytes(), inv.batch)

	if r.results, err = r.alloc("results", 8*len(inv.batch)); err != nil {
		return err
	}

	if !memoize {
		return nil
	}
	if r.partial, err = r.alloc("partial", memo.PartialArrayBytes(r.e.partialCapacity)); err != nil {
		return err
	}
	if r.cache, err = memo.NewPartialArray(r.partial); err != nil {
		return resourceError("map partial", err)
	}
	return nil
}

// alloc charges size bytes to the memory budget and maps a region.
func (r *processRunner) alloc(name string, size int) (*shm.Region, error) {
	if err := r.e.rc.AcquireMemory(int64(size)); err != nil {
		return nil, resourceError("map "+name, err)
	}

	region, err := shm.Create(name, size)
	if err != nil {
		r.e.rc.ReleaseMemory(int64(size))
		return nil, resourceError("map "+name, err)
	}
	r.charged += int64(size)
	return region, nil
}

func (r *processRunner) runCohort(ctx context.Context, inv *invocation, c cohort) error {
	handles := make([]*workerHandle, 0, len(c.units))

	var dispatchErr error
	for _, u := range c.units {
		if u.count == 0 {
			continue
		}
		h, err := r.spawn(ctx, c, u)
		if err != nil {
			r.e.metrics.OnSpawn(r.e.strategy, err)
			inv.log.Error("worker spawn failed", "cohort", c.index, "error", err)
			dispatchErr = err
			break
		}
		r.e.metrics.OnSpawn(r.e.strategy, nil)
		handles = append(handles, h)
	}

	// Started workers are waited for even when dispatch failed.
	if err := errors.Join(dispatchErr, awaitAll(handles)); err != nil {
		return err
	}

	for _, u := range c.units {
		inv.done.markProgression(c.first(u), c.partition.Stride(), u.count)
	}
	return nil
}

func (r *processRunner) spawn(ctx context.Context, c cohort, u unit) (*workerHandle, error) {
	rc := r.e.rc
	if err := rc.AcquireSpawn(ctx); err != nil {
		return nil, resourceError("acquire spawn token", err)
	}
	if err := rc.AcquireWorker(ctx); err != nil {
		return nil, resourceError("acquire worker", err)
	}

	spec := workerSpec{
		slots:  c.partition.N(),
		input:  r.input.Size(),
		start:  c.first(u),
		stride: c.partition.Stride(),
		count:  u.count,
	}
	files := []*os.File{r.input.File(), r.results.File()}
	if r.cache != nil {
		spec.capacity = r.cache.Cap()
		files = append(files, r.partial.File())
	}

	cmd := exec.Command(r.path, r.args...)
	cmd.Env = append(os.Environ(), workerEnv+"="+spec.String())
	cmd.ExtraFiles = files

	h, err := startWorker(cmd, spec, rc.ReleaseWorker)
	if err != nil {
		rc.ReleaseWorker()
		return nil, resourceError("start worker", err)
	}
	return h, nil
}

func (r *processRunner) collect(inv *invocation) error {
	copy(inv.results, r.results.Uint64s())
	if r.cache != nil {
		inv.log.Debug("partial cache", "filled", r.cache.Filled(), "capacity", r.cache.Cap())
	}
	return nil
}

// close unmaps every region and returns the memory charge.
func (r *processRunner) close() error {
	err := errors.Join(r.partial.Close(), r.results.Close(), r.input.Close())
	r.e.rc.ReleaseMemory(r.charged)
	r.charged = 0
	return err
}
