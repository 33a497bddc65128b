package integration_test

import (
	"context"
	"fmt"
	"math/big"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/collatzgo"
	"github.com/hupe1980/collatzgo/testutil"
)

func strategies(t *testing.T) []collatzgo.Strategy {
	t.Helper()
	var out []collatzgo.Strategy
	for _, s := range collatzgo.Strategies() {
		if s.UsesProcesses() && runtime.GOOS == "windows" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func solve(t *testing.T, s collatzgo.Strategy, workers int, memoize bool, batch []*big.Int) []uint64 {
	t.Helper()

	cfg := collatzgo.DefaultConfig()
	cfg.Strategy = s
	cfg.Workers = workers
	cfg.Memoize = memoize
	cfg.PartialCacheCapacity = 1 << 12

	solver, err := collatzgo.New(cfg, collatzgo.WithLogger(collatzgo.NoopLogger()))
	require.NoError(t, err)

	got, err := solver.Run(context.Background(), batch)
	require.NoError(t, err)
	return got
}

// Every strategy, with and without memoization, matches the sequential
// reference for the same batch.
func TestEquivalence_Uniform(t *testing.T) {
	rng := testutil.NewRNG(4711)
	batch := rng.UniformBatch(300, 1<<16)
	want := testutil.StoppingTimes(batch)

	for _, s := range strategies(t) {
		for _, workers := range []int{1, 3, 8} {
			for _, memoize := range []bool{false, true} {
				t.Run(fmt.Sprintf("%s/W=%d/memo=%v", s, workers, memoize), func(t *testing.T) {
					assert.Equal(t, want, solve(t, s, workers, memoize, batch))
				})
			}
		}
	}
}

// Repeated values and values straddling the partial cache capacity.
func TestEquivalence_Skewed(t *testing.T) {
	rng := testutil.NewRNG(42)
	batch := rng.ZipfBatch(200, 1<<13, 1.2)
	want := testutil.StoppingTimes(batch)

	for _, s := range strategies(t) {
		t.Run(s.String(), func(t *testing.T) {
			assert.Equal(t, want, solve(t, s, 4, true, batch))
		})
	}
}

func TestEquivalence_Wide(t *testing.T) {
	rng := testutil.NewRNG(7)
	batch := rng.WideBatch(40, 256)
	want := testutil.StoppingTimes(batch)

	for _, s := range strategies(t) {
		t.Run(s.String(), func(t *testing.T) {
			assert.Equal(t, want, solve(t, s, 3, true, batch))
		})
	}
}

func TestEdgeCases(t *testing.T) {
	for _, s := range strategies(t) {
		t.Run(s.String(), func(t *testing.T) {
			assert.Equal(t, []uint64{}, solve(t, s, 2, true, nil))
			assert.Equal(t, []uint64{0}, solve(t, s, 5, false, []*big.Int{big.NewInt(1)}))
			assert.Equal(t, []uint64{1, 1}, solve(t, s, 1, true, []*big.Int{big.NewInt(2), big.NewInt(2)}))
		})
	}
}
