// Package collatz implements the Collatz recurrence over arbitrary-precision
// integers and the stopping-time computation used by every executor strategy.
//
// # Stopping Time
//
// The stopping time of n is the number of applications of Step needed to
// reach 1:
//
//	StoppingTime(big.NewInt(6)) // 8: 6→3→10→5→16→8→4→2→1
//
// # Memoization
//
// Compute accepts an optional Memo backend. At every iteration the current
// value is probed; a hit short-circuits the walk and the input's own stopping
// time is recorded for later callers. Backends define their own domain and
// silently ignore values outside it.
package collatz
