package collatz

import (
	"math"
	"math/big"
)

var (
	one   = big.NewInt(1)
	three = big.NewInt(3)
)

// wordLimit is the largest value for which 3n+1 still fits a uint64.
const wordLimit = (math.MaxUint64 - 1) / 3

// Step applies one Collatz transformation to n in place and returns n.
// Odd values become 3n+1, even values n/2.
func Step(n *big.Int) *big.Int {
	if n.Bit(0) == 1 {
		n.Mul(n, three)
		return n.Add(n, one)
	}
	return n.Rsh(n, 1)
}

// IsOne reports whether n == 1.
func IsOne(n *big.Int) bool {
	return n.IsUint64() && n.Uint64() == 1
}

// StoppingTime returns the number of steps needed for n to reach 1.
// It panics if n is not positive.
func StoppingTime(n *big.Int) uint64 {
	mustBePositive(n)

	cur := new(big.Int).Set(n)
	var steps uint64
	for {
		if cur.IsUint64() {
			x := cur.Uint64()
			for x != 1 {
				if x&1 == 0 {
					x >>= 1
				} else {
					if x > wordLimit {
						break
					}
					x = 3*x + 1
				}
				steps++
			}
			if x == 1 {
				return steps
			}
			cur.SetUint64(x)
		}
		Step(cur)
		steps++
	}
}

func mustBePositive(n *big.Int) {
	if n == nil || n.Sign() <= 0 {
		panic("collatz: stopping time is only defined for positive integers")
	}
}
