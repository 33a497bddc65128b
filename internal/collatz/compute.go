package collatz

import "math/big"

// Memo is a memoization backend for stopping times.
//
// Implementations must be safe for use by every worker sharing them. Values
// outside a backend's domain are neither found nor stored.
type Memo interface {
	// Lookup returns the cached stopping time of n. ok=false if unknown.
	Lookup(n *big.Int) (count uint64, ok bool)
	// Record stores the stopping time of n. Recording a known value is a no-op.
	Record(n *big.Int, count uint64)
}

// Compute returns the stopping time of n, consulting and updating m.
// A nil m computes without memoization.
//
// Every intermediate value (including n itself) is probed; on a hit the
// result is steps-so-far plus the cached count, and the stopping time of the
// original input is recorded before returning.
func Compute(n *big.Int, m Memo) uint64 {
	if m == nil {
		return StoppingTime(n)
	}
	mustBePositive(n)

	cur := new(big.Int).Set(n)
	var steps uint64
	for !IsOne(cur) {
		if cached, ok := m.Lookup(cur); ok {
			total := steps + cached
			m.Record(n, total)
			return total
		}
		Step(cur)
		steps++
	}
	m.Record(n, steps)
	return steps
}
