// Package resource implements the Controller that governs what a batch
// invocation may consume.
//
// The Controller manages three resources:
//
//   - Memory: shared-memory regions are charged against a hard budget
//     (non-blocking, fail-fast)
//   - Workers: an optional cap on live workers (goroutines or processes)
//   - Spawns: an optional token bucket on worker process creation
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                         Controller                          │
//	├─────────────────┬─────────────────┬─────────────────────────┤
//	│  Memory Budget  │  Live Workers   │  Spawn Rate             │
//	│  (fail-fast)    │  (semaphore)    │  (token bucket)         │
//	├─────────────────┼─────────────────┼─────────────────────────┤
//	│  AcquireMemory  │  AcquireWorker  │  AcquireSpawn           │
//	│  ReleaseMemory  │  TryAcquire-    │                         │
//	│  MemoryUsage    │  Worker         │                         │
//	│                 │  ReleaseWorker  │                         │
//	└─────────────────┴─────────────────┴─────────────────────────┘
//
// # Memory Budget
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20,
//	})
//
//	if err := rc.AcquireMemory(size); err != nil {
//	    // ErrMemoryLimitExceeded: the invocation is aborted
//	}
//	defer rc.ReleaseMemory(size)
//
// # Worker Limits
//
// One Controller may be shared by several executors to bound the total
// number of live workers on a host:
//
//	if err := rc.AcquireWorker(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseWorker()
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use.
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
package resource
