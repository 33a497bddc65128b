package executor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed is returned when submitting to a closed pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// WorkerPool manages a fixed pool of goroutines running submitted tasks.
// Tasks are run to completion; Close drains queued tasks before returning.
type WorkerPool struct {
	numWorkers int
	workCh     chan func() // Channel carries work closures
	stopCh     chan struct{}
	wg         sync.WaitGroup
	closed     atomic.Bool // Tracks if pool is closed
	submitMu   sync.RWMutex
	completed  atomic.Int64
}

// NewWorkerPool creates a worker pool with numWorkers goroutines.
// numWorkers must be positive.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	wp := &WorkerPool{
		numWorkers: numWorkers,
		workCh:     make(chan func(), numWorkers*2), // 2x buffer for pipelining
		stopCh:     make(chan struct{}),
	}

	// Start worker goroutines
	wp.wg.Add(numWorkers)
	for range numWorkers {
		go wp.worker()
	}

	return wp
}

// worker processes work closures from the work channel.
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.stopCh:
			// Drain remaining work before exiting
			for workFunc := range wp.workCh {
				wp.run(workFunc)
			}
			return
		case workFunc, ok := <-wp.workCh:
			if !ok {
				return
			}
			wp.run(workFunc)
		}
	}
}

func (wp *WorkerPool) run(task func()) {
	task()
	wp.completed.Add(1)
}

// Submit enqueues a task, blocking while the queue is full.
//
// Error conditions:
//   - Returns ErrPoolClosed if the pool is closed
//   - Returns the context error if ctx is done before enqueueing
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	wp.submitMu.RLock()
	defer wp.submitMu.RUnlock()

	if wp.closed.Load() {
		return ErrPoolClosed
	}

	// Enqueue work (with backpressure)
	select {
	case wp.workCh <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Size returns the number of worker goroutines.
func (wp *WorkerPool) Size() int {
	return wp.numWorkers
}

// Completed returns the number of tasks run so far.
func (wp *WorkerPool) Completed() int64 {
	return wp.completed.Load()
}

// Close stops accepting tasks, runs every queued task and joins the workers.
func (wp *WorkerPool) Close() {
	// Mark as closed (atomic, idempotent)
	if !wp.closed.CompareAndSwap(false, true) {
		return
	}

	wp.submitMu.Lock()
	close(wp.stopCh)
	close(wp.workCh)
	wp.submitMu.Unlock()

	wp.wg.Wait()
}
