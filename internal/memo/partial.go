package memo

import (
	"fmt"
	"math/big"
	"sync/atomic"

	"github.com/hupe1980/collatzgo/internal/collatz"
	"github.com/hupe1980/collatzgo/internal/shm"
)

// DefaultPartialCapacity is the number of slots of a PartialArray when no
// capacity is configured.
const DefaultPartialCapacity = 1_000_000

var _ collatz.Memo = (*PartialArray)(nil)

// PartialArray caches stopping times of values below its capacity in memory
// shared between processes. It does not own the region.
type PartialArray struct {
	slots []uint64
}

// NewPartialArray views r as a partial array of r.Size()/8 slots.
func NewPartialArray(r *shm.Region) (*PartialArray, error) {
	slots := r.Uint64s()
	if len(slots) == 0 {
		return nil, fmt.Errorf("memo: partial array needs at least one slot: %w", shm.ErrInvalidSize)
	}
	return &PartialArray{slots: slots}, nil
}

// PartialArrayBytes returns the region size needed for capacity slots.
func PartialArrayBytes(capacity int) int {
	return capacity * 8
}

// Cap returns the number of slots.
func (p *PartialArray) Cap() int {
	return len(p.slots)
}

// Get returns slot i, 0 if unknown.
func (p *PartialArray) Get(i uint64) uint64 {
	return atomic.LoadUint64(&p.slots[i])
}

// Set stores count into slot i.
func (p *PartialArray) Set(i uint64, count uint64) {
	atomic.StoreUint64(&p.slots[i], count)
}

func (p *PartialArray) index(n *big.Int) (uint64, bool) {
	if !n.IsUint64() {
		return 0, false
	}
	i := n.Uint64()
	return i, i < uint64(len(p.slots))
}

// Lookup returns the cached stopping time of n. Values outside the array and
// unknown slots report ok=false.
func (p *PartialArray) Lookup(n *big.Int) (uint64, bool) {
	i, ok := p.index(n)
	if !ok {
		return 0, false
	}
	c := p.Get(i)
	return c, c != 0
}

// Record stores the stopping time of n if n lies inside the array.
func (p *PartialArray) Record(n *big.Int, count uint64) {
	if i, ok := p.index(n); ok {
		p.Set(i, count)
	}
}

// Filled returns the number of known slots.
func (p *PartialArray) Filled() int {
	filled := 0
	for i := range p.slots {
		if atomic.LoadUint64(&p.slots[i]) != 0 {
			filled++
		}
	}
	return filled
}
