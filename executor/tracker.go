package executor

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// tracker records which result indices have been published. It is not safe
// for concurrent use; only the dispatching goroutine marks. Indices fit
// uint32 because Run rejects longer batches with checkBatchLen.
type tracker struct {
	n    int
	done *roaring.Bitmap
}

func newTracker(n int) *tracker {
	return &tracker{n: n, done: roaring.New()}
}

func (t *tracker) mark(i int) {
	t.done.Add(uint32(i))
}

// markProgression marks start, start+stride, ... (count indices).
func (t *tracker) markProgression(start, stride, count int) {
	if count <= 0 {
		return
	}
	if stride == 1 {
		t.done.AddRange(uint64(start), uint64(start+count))
		return
	}
	for j := range count {
		t.done.Add(uint32(start + j*stride))
	}
}

// complete returns ErrIncomplete unless every index in [0, n) is marked.
func (t *tracker) complete() error {
	got := t.done.GetCardinality()
	if got != uint64(t.n) {
		return fmt.Errorf("%w: %d of %d results", ErrIncomplete, got, t.n)
	}
	return nil
}
