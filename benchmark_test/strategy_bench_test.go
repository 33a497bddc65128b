package benchmark_test

import (
	"context"
	"fmt"
	"math/big"
	"runtime"
	"testing"

	"github.com/hupe1980/collatzgo"
	"github.com/hupe1980/collatzgo/testutil"
)

func newSolver(b *testing.B, s collatzgo.Strategy, memoize bool) *collatzgo.Solver {
	b.Helper()

	cfg := collatzgo.DefaultConfig()
	cfg.Strategy = s
	cfg.Workers = runtime.NumCPU()
	cfg.Memoize = memoize

	solver, err := collatzgo.New(cfg, collatzgo.WithLogger(collatzgo.NoopLogger()))
	if err != nil {
		b.Fatal(err)
	}
	return solver
}

func benchmarkStrategies(b *testing.B, batch []*big.Int) {
	ctx := context.Background()
	for _, s := range collatzgo.Strategies() {
		for _, memoize := range []bool{false, true} {
			b.Run(fmt.Sprintf("%s/memo=%v", s, memoize), func(b *testing.B) {
				solver := newSolver(b, s, memoize)
				b.ReportAllocs()
				for b.Loop() {
					if _, err := solver.Run(ctx, batch); err != nil {
						b.Fatal(err)
					}
				}
				b.ReportMetric(float64(len(batch)*b.N)/b.Elapsed().Seconds(), "items/s")
			})
		}
	}
}

func BenchmarkStrategies_Uniform(b *testing.B) {
	rng := testutil.NewRNG(4711)
	benchmarkStrategies(b, rng.UniformBatch(1000, 1<<20))
}

func BenchmarkStrategies_Skewed(b *testing.B) {
	rng := testutil.NewRNG(4711)
	benchmarkStrategies(b, rng.ZipfBatch(1000, 1<<10, 1.5))
}

func BenchmarkStrategies_Wide(b *testing.B) {
	rng := testutil.NewRNG(4711)
	benchmarkStrategies(b, rng.WideBatch(100, 512))
}
