package collatzgo

import "github.com/hupe1980/collatzgo/executor"

// Strategy names a concurrency strategy.
type Strategy = executor.Strategy

// Strategies, see the executor package for their semantics.
const (
	WaveThreads     = executor.WaveThreads
	StaticThreads   = executor.StaticThreads
	ThreadPool      = executor.ThreadPool
	WaveProcesses   = executor.WaveProcesses
	StaticProcesses = executor.StaticProcesses
	Async           = executor.Async
)

// Strategies returns every known strategy.
func Strategies() []Strategy { return executor.Strategies() }

// ParseStrategy converts a name into a Strategy.
func ParseStrategy(name string) (Strategy, error) { return executor.ParseStrategy(name) }

// IsWorker reports whether the process was started as a worker by a process
// strategy.
func IsWorker() bool { return executor.IsWorker() }

// ServeWorker runs the worker side of a process strategy and returns the exit
// code. Call it first thing in main when IsWorker reports true.
func ServeWorker() int { return executor.ServeWorker() }
