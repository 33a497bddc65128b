package executor

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStrategy is returned for strategy names that do not exist.
	ErrUnknownStrategy = errors.New("unknown strategy")
	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("worker count must be positive")
	// ErrInvalidCapacity is returned when the partial cache capacity is not positive.
	ErrInvalidCapacity = errors.New("partial cache capacity must be positive")
	// ErrInvalidBatch is matched by errors for batches with non-positive values.
	ErrInvalidBatch = errors.New("invalid batch")
	// ErrBatchTooLarge is returned for batches longer than math.MaxUint32.
	ErrBatchTooLarge = errors.New("batch too large")
	// ErrIncomplete is returned when a run ends without a result for every item.
	ErrIncomplete = errors.New("incomplete results")

	// ErrResourceExhausted is matched by fatal errors of kind ResourceExhaustion.
	ErrResourceExhausted = errors.New("resource exhausted")
	// ErrChildWait is matched by fatal errors of kind ChildWaitFailure.
	ErrChildWait = errors.New("worker process failed")
)

// FailureKind classifies a fatal error.
type FailureKind uint8

const (
	// ResourceExhaustion means a worker, process or shared region could not be created.
	ResourceExhaustion FailureKind = iota
	// ChildWaitFailure means a worker process could not be waited on or did not exit cleanly.
	ChildWaitFailure
)

func (k FailureKind) String() string {
	switch k {
	case ResourceExhaustion:
		return "resource exhaustion"
	case ChildWaitFailure:
		return "child wait failure"
	default:
		return fmt.Sprintf("FailureKind(%d)", uint8(k))
	}
}

// FatalError aborts a whole invocation. No results are returned with it.
//
// The underlying error can be accessed via errors.Unwrap.
type FatalError struct {
	Kind FailureKind
	Op   string
	Err  error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind.
func (e *FatalError) Is(target error) bool {
	switch target {
	case ErrResourceExhausted:
		return e.Kind == ResourceExhaustion
	case ErrChildWait:
		return e.Kind == ChildWaitFailure
	}
	return false
}

// InvalidValueError reports a nil or non-positive batch element.
type InvalidValueError struct {
	Index int
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid batch: value at index %d is not a positive integer", e.Index)
}

// Is matches ErrInvalidBatch.
func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidBatch
}

func resourceError(op string, err error) error {
	return &FatalError{Kind: ResourceExhaustion, Op: op, Err: err}
}
