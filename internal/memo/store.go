package memo

import (
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/collatzgo/internal/collatz"
)

var _ collatz.Memo = (*Store)(nil)

// Store is an in-memory, thread-safe map from value to stopping time.
type Store struct {
	mu   sync.RWMutex
	data map[string]uint64

	hits   atomic.Int64
	misses atomic.Int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]uint64),
	}
}

// key is the big-endian magnitude, canonical for positive values.
func key(n *big.Int) string {
	return string(n.Bytes())
}

// Lookup returns the stopping time recorded for n.
func (s *Store) Lookup(n *big.Int) (uint64, bool) {
	k := key(n)

	s.mu.RLock()
	c, ok := s.data[k]
	s.mu.RUnlock()

	if ok {
		s.hits.Add(1)
	} else {
		s.misses.Add(1)
	}
	return c, ok
}

// Record stores the stopping time of n unless one is already present.
func (s *Store) Record(n *big.Int, count uint64) {
	k := key(n)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[k]; !ok {
		s.data[k] = count
	}
}

// Len returns the number of recorded values.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}

// Stats returns lookup hit/miss counts.
func (s *Store) Stats() (hits, misses int64) {
	return s.hits.Load(), s.misses.Load()
}
