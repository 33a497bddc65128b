// Package executor runs a batch of stopping-time computations under one of
// six interchangeable concurrency strategies.
//
// # Strategies
//
//	wave-threads      ceil(n/W) waves of at most W goroutines, one item each
//	static-threads    W long-lived goroutines over round-robin sub-batches
//	thread-pool       n tasks on a fixed pool of W goroutines
//	wave-processes    like wave-threads, with worker processes
//	static-processes  like static-threads, with worker processes
//	async             one future per item, at most W running at once
//
// Every strategy is the same Executor: a schedule (a partition of the batch
// and whether its blocks run as sequential waves) and a runner (the
// concurrency primitive). Results are always placed through the partition's
// inverse mapping, so the output order is the input order regardless of
// completion order.
//
// # Process Workers
//
// Process strategies re-execute the current binary. Programs that use them
// must hand control to the worker side before doing anything else:
//
//	func main() {
//	    if executor.IsWorker() {
//	        os.Exit(executor.ServeWorker())
//	    }
//	    ...
//	}
//
// The batch, the result slots and the optional partial cache live in shared
// memory regions inherited by the children; the parent waits for every child
// of a wave before starting the next one.
//
// # Failures
//
// There are no retries. Resource exhaustion (a worker or region cannot be
// created) and worker failures abort the whole invocation with a *FatalError
// and no results. All workers are joined and all regions released before Run
// returns, on every path.
package executor
