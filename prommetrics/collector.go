// Package prommetrics exports collatzgo metrics to Prometheus.
package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/collatzgo"
)

const namespace = "collatzgo"

var _ collatzgo.MetricsCollector = (*Collector)(nil)

// Collector implements collatzgo.MetricsCollector with Prometheus metrics.
type Collector struct {
	runs        *prometheus.CounterVec
	runLatency  *prometheus.HistogramVec
	items       *prometheus.CounterVec
	cohorts     *prometheus.CounterVec
	cohortUnits *prometheus.HistogramVec
	spawns      *prometheus.CounterVec
	memo        *prometheus.CounterVec
}

// New creates a Collector and registers its metrics with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of runs",
		}, []string{"strategy", "status"}),
		runLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Latency of runs",
			Buckets:   prometheus.DefBuckets,
		}, []string{"strategy"}),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_total",
			Help:      "Total number of batch items computed",
		}, []string{"strategy"}),
		cohorts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cohorts_total",
			Help:      "Total number of dispatched cohorts",
		}, []string{"strategy"}),
		cohortUnits: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cohort_units",
			Help:      "Units per dispatched cohort",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"strategy"}),
		spawns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workers_spawned_total",
			Help:      "Total number of worker goroutines and processes started",
		}, []string{"strategy", "status"}),
		memo: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "memo_lookups_total",
			Help:      "Total number of memo store lookups",
		}, []string{"strategy", "result"}),
	}

	reg.MustRegister(c.runs, c.runLatency, c.items, c.cohorts, c.cohortUnits, c.spawns, c.memo)
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordRun implements collatzgo.MetricsCollector.
func (c *Collector) RecordRun(s collatzgo.Strategy, items int, d time.Duration, err error) {
	c.runs.WithLabelValues(s.String(), status(err)).Inc()
	c.runLatency.WithLabelValues(s.String()).Observe(d.Seconds())
	if err == nil {
		c.items.WithLabelValues(s.String()).Add(float64(items))
	}
}

// RecordCohort implements collatzgo.MetricsCollector.
func (c *Collector) RecordCohort(s collatzgo.Strategy, units int) {
	c.cohorts.WithLabelValues(s.String()).Inc()
	c.cohortUnits.WithLabelValues(s.String()).Observe(float64(units))
}

// RecordSpawn implements collatzgo.MetricsCollector.
func (c *Collector) RecordSpawn(s collatzgo.Strategy, err error) {
	c.spawns.WithLabelValues(s.String(), status(err)).Inc()
}

// RecordMemo implements collatzgo.MetricsCollector.
func (c *Collector) RecordMemo(s collatzgo.Strategy, hits, misses int64) {
	c.memo.WithLabelValues(s.String(), "hit").Add(float64(hits))
	c.memo.WithLabelValues(s.String(), "miss").Add(float64(misses))
}
