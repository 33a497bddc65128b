// Package collatzgo computes Collatz stopping times for batches of
// arbitrary-precision integers.
//
// The stopping time of n is the number of steps (odd → 3n+1, even → n/2)
// needed to reach 1. A Solver evaluates a whole batch under one of six
// concurrency strategies and returns the counts in input order.
//
// # Quick Start
//
//	func main() {
//	    if collatzgo.IsWorker() {
//	        os.Exit(collatzgo.ServeWorker())
//	    }
//
//	    cfg := collatzgo.DefaultConfig()
//	    cfg.Strategy = collatzgo.StaticProcesses
//	    cfg.Workers = 4
//	    cfg.Memoize = true
//
//	    s, _ := collatzgo.New(cfg)
//	    counts, _ := s.Run(ctx, []*big.Int{big.NewInt(27), big.NewInt(97)})
//	    fmt.Println(counts) // [111 118]
//	}
//
// The IsWorker check is required for the process strategies, which start
// the running executable again as their workers.
//
// # Strategies
//
//	wave-threads      waves of at most W goroutines, one item each
//	static-threads    W goroutines over round-robin sub-batches
//	thread-pool       one task per item on a pool of W goroutines
//	wave-processes    waves of at most W worker processes
//	static-processes  W worker processes over round-robin sub-batches
//	async             one future per item, at most W running at once
//
// # Memoization
//
// With Memoize set, thread strategies share a lock-protected map of known
// stopping times for the duration of one Run. Process strategies share a
// fixed-size array in shared memory covering values below
// PartialCacheCapacity; concurrent writes to the same slot store the same
// value.
//
// # Configuration
//
// Configs can be built in code or loaded from YAML:
//
//	strategy: wave-processes
//	workers: 8
//	memoize: true
//	partial_cache_capacity: 1000000
//	memory_limit_bytes: 67108864
//	log:
//	  level: debug
//	  format: json
//
// # Failures
//
// Any resource exhaustion or worker failure aborts the Run without partial
// results. Errors match the sentinels of this package with errors.Is.
package collatzgo
