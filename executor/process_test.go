//go:build unix

package executor

import (
	"math/big"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/collatzgo/internal/resource"
)

func TestProcess_MemoryLimit(t *testing.T) {
	for _, s := range []Strategy{WaveProcesses, StaticProcesses} {
		t.Run(s.String(), func(t *testing.T) {
			rc := resource.NewController(resource.Config{MemoryLimitBytes: 64})
			obs := &recordingObserver{}
			e, err := New(s, 2, WithResourceController(rc), WithMetricsObserver(obs))
			require.NoError(t, err)

			got, err := e.Run(t.Context(), ints(27, 97, 871), true)
			require.ErrorIs(t, err, ErrResourceExhausted)
			require.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
			assert.Nil(t, got)

			var fe *FatalError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, ResourceExhaustion, fe.Kind)

			assert.Zero(t, rc.MemoryUsage())
			assert.Zero(t, obs.spawns)
			assert.Equal(t, err, obs.lastErr)
		})
	}
}

func TestProcess_PartialCacheOverBudget(t *testing.T) {
	// Input and results fit, the partial cache does not.
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 10})
	e, err := New(StaticProcesses, 2, WithResourceController(rc), WithPartialCacheCapacity(1<<20))
	require.NoError(t, err)

	got, err := e.Run(t.Context(), ints(6, 7), true)
	require.ErrorIs(t, err, ErrResourceExhausted)
	assert.Nil(t, got)
	assert.Zero(t, rc.MemoryUsage())

	got, err = e.Run(t.Context(), ints(6, 7), false)
	require.NoError(t, err)
	assert.Equal(t, []uint64{8, 16}, got)
	assert.Zero(t, rc.MemoryUsage())
}

func TestProcess_WorkerExitFailure(t *testing.T) {
	falsePath, err := exec.LookPath("false")
	if err != nil {
		t.Skip("false not available")
	}

	rc := resource.NewController(resource.Config{})
	e, err := New(WaveProcesses, 2, WithWorkerCommand(falsePath), WithResourceController(rc))
	require.NoError(t, err)

	got, err := e.Run(t.Context(), ints(1, 6, 7), false)
	require.ErrorIs(t, err, ErrChildWait)
	assert.Nil(t, got)

	var exitErr *exec.ExitError
	assert.ErrorAs(t, err, &exitErr)
	assert.Zero(t, rc.LiveWorkers())
	assert.Zero(t, rc.MemoryUsage())
}

func TestProcess_WorkerStartFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-worker")

	rc := resource.NewController(resource.Config{})
	obs := &recordingObserver{}
	e, err := New(StaticProcesses, 3, WithWorkerCommand(missing), WithResourceController(rc), WithMetricsObserver(obs))
	require.NoError(t, err)

	got, err := e.Run(t.Context(), ints(1, 6, 7), false)
	require.ErrorIs(t, err, ErrResourceExhausted)
	assert.Nil(t, got)
	assert.Equal(t, 1, obs.failed)
	assert.Zero(t, rc.LiveWorkers())
	assert.Zero(t, rc.MemoryUsage())
}

func TestProcess_SpawnRateAndWorkerLimit(t *testing.T) {
	rc := resource.NewController(resource.Config{MaxWorkers: 1, SpawnsPerSecond: 1000})
	e, err := New(WaveProcesses, 3, WithResourceController(rc))
	require.NoError(t, err)

	batch := ints(27, 97, 871, 6)
	got, err := e.Run(t.Context(), batch, true)
	require.NoError(t, err)
	assert.Equal(t, expected(batch), got)
	assert.Zero(t, rc.LiveWorkers())
}

func TestProcess_LargeValues(t *testing.T) {
	a, _ := new(big.Int).SetString("987654321987654321987654321987654321", 10)
	b := new(big.Int).Lsh(big.NewInt(1), 200)
	batch := []*big.Int{a, big.NewInt(1), b}

	e, err := New(StaticProcesses, 2)
	require.NoError(t, err)

	got, err := e.Run(t.Context(), batch, true)
	require.NoError(t, err)
	assert.Equal(t, expected(batch), got)
	assert.Equal(t, uint64(200), got[2])
}

func newTestInvocation(e *Executor, batch []*big.Int) *invocation {
	return &invocation{
		batch:   batch,
		results: make([]uint64, len(batch)),
		done:    newTracker(len(batch)),
		log:     e.logger,
	}
}

func TestProcess_WorkersFillSharedPartialCache(t *testing.T) {
	for _, s := range []Strategy{WaveProcesses, StaticProcesses} {
		t.Run(s.String(), func(t *testing.T) {
			e, err := New(s, 2, WithPartialCacheCapacity(1024))
			require.NoError(t, err)

			batch := ints(3, 6, 7, 27, 97)
			inv := newTestInvocation(e, batch)

			r, err := newProcessRunner(e, inv, true)
			require.NoError(t, err)
			defer func() { assert.NoError(t, r.close()) }()
			require.Zero(t, r.cache.Filled())

			sched, err := e.plan(len(batch))
			require.NoError(t, err)
			for c := range sched.cohorts() {
				require.NoError(t, r.runCohort(t.Context(), inv, c))
			}
			require.NoError(t, r.collect(inv))
			require.NoError(t, inv.done.complete())
			assert.Equal(t, expected(batch), inv.results)

			// Every input lies below capacity, so each child recorded it.
			assert.GreaterOrEqual(t, r.cache.Filled(), len(batch))
			for i, v := range batch {
				assert.Equal(t, inv.results[i], r.cache.Get(v.Uint64()), "value %v", v)
			}
		})
	}
}

func TestProcess_LaterWaveReadsEarlierWaveEntries(t *testing.T) {
	e, err := New(WaveProcesses, 1, WithPartialCacheCapacity(64))
	require.NoError(t, err)

	// 6 -> 3 -> ..., so the second wave looks up the slot the first one wrote.
	batch := ints(3, 6)
	inv := newTestInvocation(e, batch)

	r, err := newProcessRunner(e, inv, true)
	require.NoError(t, err)
	defer func() { assert.NoError(t, r.close()) }()

	sched, err := e.plan(len(batch))
	require.NoError(t, err)

	var cohorts []cohort
	for c := range sched.cohorts() {
		cohorts = append(cohorts, c)
	}
	require.Len(t, cohorts, 2)

	require.NoError(t, r.runCohort(t.Context(), inv, cohorts[0]))
	require.Equal(t, uint64(7), r.cache.Get(3))

	// A marker value shows the second worker took its count from the slot.
	r.cache.Set(3, 100)
	require.NoError(t, r.runCohort(t.Context(), inv, cohorts[1]))
	require.NoError(t, r.collect(inv))

	assert.Equal(t, []uint64{7, 101}, inv.results)
	assert.Equal(t, uint64(101), r.cache.Get(6))
}
