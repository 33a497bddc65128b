package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectCohorts(t *testing.T, s Strategy, workers, n int) []cohort {
	t.Helper()

	e, err := New(s, workers)
	require.NoError(t, err)
	sched, err := e.plan(n)
	require.NoError(t, err)

	var out []cohort
	for c := range sched.cohorts() {
		out = append(out, c)
	}
	return out
}

func cohortIndices(c cohort) [][]int {
	out := make([][]int, len(c.units))
	for k, u := range c.units {
		for j := range u.count {
			out[k] = append(out[k], c.partition.Index(u.sub, u.from+j))
		}
	}
	return out
}

func TestSchedule_Waves(t *testing.T) {
	cs := collectCohorts(t, WaveThreads, 2, 5)
	require.Len(t, cs, 3)

	assert.Equal(t, [][]int{{0}, {1}}, cohortIndices(cs[0]))
	assert.Equal(t, [][]int{{2}, {3}}, cohortIndices(cs[1]))
	assert.Equal(t, [][]int{{4}}, cohortIndices(cs[2]))
	assert.Equal(t, 2, cs[2].index)
}

func TestSchedule_Static(t *testing.T) {
	cs := collectCohorts(t, StaticProcesses, 3, 7)
	require.Len(t, cs, 1)

	assert.Equal(t, [][]int{{0, 3, 6}, {1, 4}, {2, 5}}, cohortIndices(cs[0]))
	assert.Equal(t, 1, cs[0].first(cs[0].units[1]))
}

func TestSchedule_StaticEmptyUnits(t *testing.T) {
	cs := collectCohorts(t, StaticThreads, 4, 2)
	require.Len(t, cs, 1)
	require.Len(t, cs[0].units, 4)

	assert.Equal(t, 1, cs[0].units[1].count)
	assert.Zero(t, cs[0].units[2].count)
	assert.Zero(t, cs[0].units[3].count)
}

func TestSchedule_PerItem(t *testing.T) {
	for _, s := range []Strategy{ThreadPool, Async} {
		cs := collectCohorts(t, s, 2, 4)
		require.Len(t, cs, 1)
		assert.Equal(t, [][]int{{0}, {1}, {2}, {3}}, cohortIndices(cs[0]))
	}
}

func TestSchedule_StopsEarly(t *testing.T) {
	e, err := New(WaveThreads, 1)
	require.NoError(t, err)
	sched, err := e.plan(10)
	require.NoError(t, err)

	seen := 0
	for range sched.cohorts() {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}
