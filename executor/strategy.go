package executor

import (
	"fmt"
	"slices"
)

// Strategy names a concurrency strategy.
type Strategy string

const (
	// WaveThreads runs waves of at most W goroutines, one item per goroutine.
	WaveThreads Strategy = "wave-threads"
	// StaticThreads runs W goroutines, each over a round-robin sub-batch.
	StaticThreads Strategy = "static-threads"
	// ThreadPool submits one task per item to a pool of W goroutines.
	ThreadPool Strategy = "thread-pool"
	// WaveProcesses runs waves of at most W worker processes.
	WaveProcesses Strategy = "wave-processes"
	// StaticProcesses runs W worker processes over round-robin sub-batches.
	StaticProcesses Strategy = "static-processes"
	// Async launches one future per item; a future refused a live worker is
	// deferred to the collector.
	Async Strategy = "async"
)

var strategies = []Strategy{
	WaveThreads,
	StaticThreads,
	ThreadPool,
	WaveProcesses,
	StaticProcesses,
	Async,
}

// Strategies returns every known strategy.
func Strategies() []Strategy {
	return slices.Clone(strategies)
}

// ParseStrategy converts a name into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	st := Strategy(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
	return st, nil
}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return slices.Contains(strategies, s)
}

// UsesProcesses reports whether s runs worker processes.
func (s Strategy) UsesProcesses() bool {
	return s == WaveProcesses || s == StaticProcesses
}

func (s Strategy) String() string {
	return string(s)
}
