package collatzgo

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/collatzgo/executor"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus;
// the prommetrics package provides such an implementation.
type MetricsCollector interface {
	// RecordRun is called after each Run.
	// items is the batch length, err is nil if successful.
	RecordRun(strategy Strategy, items int, duration time.Duration, err error)

	// RecordCohort is called for every dispatched cohort (a wave, or the
	// whole batch) with its number of units.
	RecordCohort(strategy Strategy, units int)

	// RecordSpawn is called for every worker goroutine or process started,
	// and for every failed start.
	RecordSpawn(strategy Strategy, err error)

	// RecordMemo is called with the lookup statistics of an in-process memo store.
	RecordMemo(strategy Strategy, hits, misses int64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(Strategy, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordCohort(Strategy, int)                    {}
func (NoopMetricsCollector) RecordSpawn(Strategy, error)                   {}
func (NoopMetricsCollector) RecordMemo(Strategy, int64, int64)             {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount      atomic.Int64
	RunErrors     atomic.Int64
	RunTotalNanos atomic.Int64
	Items         atomic.Int64
	Cohorts       atomic.Int64
	Spawns        atomic.Int64
	SpawnErrors   atomic.Int64
	MemoHits      atomic.Int64
	MemoMisses    atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_ Strategy, items int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	b.Items.Add(int64(items))
}

// RecordCohort implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCohort(Strategy, int) {
	b.Cohorts.Add(1)
}

// RecordSpawn implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSpawn(_ Strategy, err error) {
	if err != nil {
		b.SpawnErrors.Add(1)
		return
	}
	b.Spawns.Add(1)
}

// RecordMemo implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMemo(_ Strategy, hits, misses int64) {
	b.MemoHits.Add(hits)
	b.MemoMisses.Add(misses)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:    b.RunCount.Load(),
		RunErrors:   b.RunErrors.Load(),
		RunAvgNanos: b.getAvgRunNanos(),
		Items:       b.Items.Load(),
		Cohorts:     b.Cohorts.Load(),
		Spawns:      b.Spawns.Load(),
		SpawnErrors: b.SpawnErrors.Load(),
		MemoHits:    b.MemoHits.Load(),
		MemoMisses:  b.MemoMisses.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount    int64
	RunErrors   int64
	RunAvgNanos int64
	Items       int64
	Cohorts     int64
	Spawns      int64
	SpawnErrors int64
	MemoHits    int64
	MemoMisses  int64
}

// observer forwards executor events to a MetricsCollector.
type observer struct {
	mc MetricsCollector
}

var _ executor.MetricsObserver = observer{}

func (o observer) OnRun(s Strategy, items int, d time.Duration, err error) {
	o.mc.RecordRun(s, items, d, err)
}

func (o observer) OnCohort(s Strategy, units int) { o.mc.RecordCohort(s, units) }

func (o observer) OnSpawn(s Strategy, err error) { o.mc.RecordSpawn(s, err) }

func (o observer) OnMemo(s Strategy, hits, misses int64) { o.mc.RecordMemo(s, hits, misses) }
