// Package partition splits an ordered batch into sub-batches and maps
// positions inside a sub-batch back to the original batch index.
//
// Two policies exist:
//
//   - FixedBlocks: contiguous blocks of B items, sub k = [kB, kB+B)
//   - RoundRobin: W interleaved blocks, sub w = {w, w+W, w+2W, ...}
//
// In both policies Index(k, pos) == Index(k, 0) + pos*Stride(), so a
// sub-batch (or any contiguous run inside it) is an arithmetic progression of
// original indices.
//
// Split and Reassemble move whole sub-batches. Executors that publish results
// unit by unit call Index directly; both place every item at the same index.
package partition

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned for non-positive block sizes or worker counts,
// or a negative batch length.
var ErrInvalidSize = errors.New("partition: invalid size")

// ErrShapeMismatch is returned by Reassemble when the parts do not match the
// partition.
var ErrShapeMismatch = errors.New("partition: parts do not match partition")

// Policy selects how a batch is split.
type Policy uint8

const (
	// FixedBlocksPolicy splits into contiguous blocks of a fixed size.
	FixedBlocksPolicy Policy = iota
	// RoundRobinPolicy deals items to a fixed number of blocks in turn.
	RoundRobinPolicy
)

func (p Policy) String() string {
	switch p {
	case FixedBlocksPolicy:
		return "fixed-blocks"
	case RoundRobinPolicy:
		return "round-robin"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// Partition describes a split of a batch of n items. It is a value type; it
// never holds the items themselves.
type Partition struct {
	policy Policy
	n      int
	size   int // block size (FixedBlocks) or worker count (RoundRobin)
}

// FixedBlocks splits n items into ceil(n/blockSize) contiguous blocks.
func FixedBlocks(n, blockSize int) (Partition, error) {
	if n < 0 || blockSize <= 0 {
		return Partition{}, fmt.Errorf("%w: n=%d blockSize=%d", ErrInvalidSize, n, blockSize)
	}
	return Partition{policy: FixedBlocksPolicy, n: n, size: blockSize}, nil
}

// RoundRobin splits n items into exactly workers blocks whose sizes differ
// by at most one. Blocks are empty when workers > n.
func RoundRobin(n, workers int) (Partition, error) {
	if n < 0 || workers <= 0 {
		return Partition{}, fmt.Errorf("%w: n=%d workers=%d", ErrInvalidSize, n, workers)
	}
	return Partition{policy: RoundRobinPolicy, n: n, size: workers}, nil
}

// Policy returns the split policy.
func (p Partition) Policy() Policy { return p.policy }

// N returns the number of items covered.
func (p Partition) N() int { return p.n }

// Len returns the number of sub-batches.
func (p Partition) Len() int {
	if p.policy == RoundRobinPolicy {
		return p.size
	}
	return (p.n + p.size - 1) / p.size
}

// SubLen returns the number of items in sub-batch k.
func (p Partition) SubLen(k int) int {
	if k < 0 || k >= p.Len() {
		return 0
	}
	if p.policy == RoundRobinPolicy {
		if k >= p.n {
			return 0
		}
		return (p.n - k + p.size - 1) / p.size
	}
	return min(p.size, p.n-k*p.size)
}

// Stride returns the distance between consecutive original indices inside a
// sub-batch.
func (p Partition) Stride() int {
	if p.policy == RoundRobinPolicy {
		return p.size
	}
	return 1
}

// Index maps position pos of sub-batch k to its index in the original batch.
func (p Partition) Index(k, pos int) int {
	if p.policy == RoundRobinPolicy {
		return pos*p.size + k
	}
	return k*p.size + pos
}

// Split copies batch into the sub-batches described by p.
func Split[T any](p Partition, batch []T) ([][]T, error) {
	if len(batch) != p.n {
		return nil, fmt.Errorf("%w: batch has %d items, partition covers %d", ErrShapeMismatch, len(batch), p.n)
	}
	parts := make([][]T, p.Len())
	for k := range parts {
		sub := make([]T, p.SubLen(k))
		for pos := range sub {
			sub[pos] = batch[p.Index(k, pos)]
		}
		parts[k] = sub
	}
	return parts, nil
}

// Reassemble applies the inverse mapping of p, restoring original order.
func Reassemble[T any](p Partition, parts [][]T) ([]T, error) {
	if len(parts) != p.Len() {
		return nil, fmt.Errorf("%w: got %d parts, want %d", ErrShapeMismatch, len(parts), p.Len())
	}
	out := make([]T, p.n)
	for k, sub := range parts {
		if len(sub) != p.SubLen(k) {
			return nil, fmt.Errorf("%w: part %d has %d items, want %d", ErrShapeMismatch, k, len(sub), p.SubLen(k))
		}
		for pos, v := range sub {
			out[p.Index(k, pos)] = v
		}
	}
	return out, nil
}
