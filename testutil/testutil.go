package testutil

import (
	"math"
	"math/big"
	"math/rand"
	"sync"

	"github.com/hupe1980/collatzgo/internal/collatz"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// UniformBatch returns num values drawn uniformly from [1, maxVal].
func (r *RNG) UniformBatch(num int, maxVal int64) []*big.Int {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make([]*big.Int, num)
	for i := range batch {
		batch[i] = big.NewInt(r.rand.Int63n(maxVal) + 1)
	}
	return batch
}

// WideBatch returns num positive values of up to bits bits.
func (r *RNG) WideBatch(num, bits int) []*big.Int {
	r.mu.Lock()
	defer r.mu.Unlock()

	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	batch := make([]*big.Int, num)
	for i := range batch {
		v := new(big.Int).Rand(r.rand, limit)
		batch[i] = v.Add(v, big.NewInt(1))
	}
	return batch
}

// ZipfBatch returns num values drawn from distinct small values with
// Zipfian frequency, so a few values repeat often. Useful for exercising
// memoization.
func (r *RNG) ZipfBatch(num, distinct int, s float64) []*big.Int {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make([]*big.Int, num)
	for i := range batch {
		batch[i] = big.NewInt(int64(r.zipfLocked(distinct, s)) + 1)
	}
	return batch
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	// Normalization constant (harmonic number with exponent s).
	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	// Inverse transform.
	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1 // 0-indexed
		}
	}

	return n - 1
}

// StoppingTimes computes reference results sequentially without memoization.
func StoppingTimes(batch []*big.Int) []uint64 {
	out := make([]uint64, len(batch))
	for i, v := range batch {
		out[i] = collatz.StoppingTime(v)
	}
	return out
}
