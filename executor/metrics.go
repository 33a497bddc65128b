package executor

import "time"

// MetricsObserver defines the interface for observing executor events.
type MetricsObserver interface {
	// OnRun is called when a Run call returns.
	OnRun(strategy Strategy, items int, duration time.Duration, err error)

	// OnCohort is called before a cohort (a wave, or the whole batch) is dispatched.
	OnCohort(strategy Strategy, units int)

	// OnSpawn is called for every worker goroutine or process started.
	OnSpawn(strategy Strategy, err error)

	// OnMemo reports lookup statistics of an in-process memo store.
	OnMemo(strategy Strategy, hits, misses int64)
}

// NoopMetricsObserver is a no-op implementation of MetricsObserver.
type NoopMetricsObserver struct{}

func (NoopMetricsObserver) OnRun(Strategy, int, time.Duration, error) {}
func (NoopMetricsObserver) OnCohort(Strategy, int)                    {}
func (NoopMetricsObserver) OnSpawn(Strategy, error)                   {}
func (NoopMetricsObserver) OnMemo(Strategy, int64, int64)             {}
