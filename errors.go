package collatzgo

import (
	"errors"

	"github.com/hupe1980/collatzgo/executor"
	"github.com/hupe1980/collatzgo/internal/resource"
)

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrUnknownStrategy is returned for strategy names that do not exist.
	ErrUnknownStrategy = executor.ErrUnknownStrategy
	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = executor.ErrInvalidWorkers
	// ErrInvalidBatch is matched by errors for batches with non-positive or
	// unparsable values.
	ErrInvalidBatch = executor.ErrInvalidBatch
	// ErrBatchTooLarge is returned for batches longer than math.MaxUint32.
	ErrBatchTooLarge = executor.ErrBatchTooLarge
	// ErrIncomplete is returned when a run ends without a result for every item.
	ErrIncomplete = executor.ErrIncomplete
	// ErrResourceExhausted is matched by fatal resource exhaustion errors.
	ErrResourceExhausted = executor.ErrResourceExhausted
	// ErrChildWait is matched by fatal worker process failures.
	ErrChildWait = executor.ErrChildWait
	// ErrMemoryLimitExceeded is wrapped when the shared memory budget is too small.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
	// ErrWorkerLimitExceeded is wrapped when a pool cannot fit the worker limit.
	ErrWorkerLimitExceeded = resource.ErrWorkerLimitExceeded
)

// FatalError aborts a whole Run.
//
// The underlying error can be accessed via errors.Unwrap.
type FatalError = executor.FatalError

// InvalidValueError reports a nil or non-positive batch element.
type InvalidValueError = executor.InvalidValueError
