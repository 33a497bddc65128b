package executor

import (
	"iter"

	"github.com/hupe1980/collatzgo/internal/partition"
)

// unit is the work of one worker: count consecutive positions of sub-batch
// sub, starting at position from.
type unit struct {
	sub   int
	from  int
	count int
}

// cohort is a set of units dispatched together and joined by one barrier.
type cohort struct {
	index     int
	partition partition.Partition
	units     []unit
}

// first returns the original index of the unit's first item.
func (c cohort) first(u unit) int {
	return c.partition.Index(u.sub, u.from)
}

// schedule is a partition plus the way its blocks are dispatched.
type schedule struct {
	partition partition.Partition
	// waves runs every block as its own cohort of single-item units.
	// Otherwise one cohort holds one unit per block.
	waves bool
}

func (e *Executor) plan(n int) (schedule, error) {
	var (
		p     partition.Partition
		err   error
		waves bool
	)
	switch e.strategy {
	case WaveThreads, WaveProcesses:
		p, err = partition.FixedBlocks(n, e.workers)
		waves = true
	case StaticThreads, StaticProcesses:
		p, err = partition.RoundRobin(n, e.workers)
	default:
		// One unit per item.
		p, err = partition.FixedBlocks(n, 1)
	}
	if err != nil {
		return schedule{}, err
	}
	return schedule{partition: p, waves: waves}, nil
}

// cohorts yields the cohorts in dispatch order.
func (s schedule) cohorts() iter.Seq[cohort] {
	return func(yield func(cohort) bool) {
		p := s.partition
		if s.waves {
			for k := range p.Len() {
				units := make([]unit, p.SubLen(k))
				for pos := range units {
					units[pos] = unit{sub: k, from: pos, count: 1}
				}
				if !yield(cohort{index: k, partition: p, units: units}) {
					return
				}
			}
			return
		}

		units := make([]unit, p.Len())
		for k := range units {
			units[k] = unit{sub: k, count: p.SubLen(k)}
		}
		yield(cohort{partition: p, units: units})
	}
}
