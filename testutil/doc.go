// Package testutil provides testing utilities for collatzgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating reproducible batches and reference
// results.
//
// # Random Batches
//
//	rng := testutil.NewRNG(seed)
//	batch := rng.UniformBatch(1000, 1<<20)   // values in [1, 1<<20]
//	wide := rng.WideBatch(100, 256)          // values up to 256 bits
//	skewed := rng.ZipfBatch(1000, 50, 1.5)   // few distinct values, repeated
//
// # Reference Results
//
//	want := testutil.StoppingTimes(batch)
package testutil
