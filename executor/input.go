package executor

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/hupe1980/collatzgo/internal/conv"
)

// Input region layout, all words little-endian:
//
//	word 0             item count n
//	words 1..n+1       payload offsets; item i spans [off[i], off[i+1])
//	payload            big-endian magnitudes
//
// Offsets are relative to the start of the region.

var errCorruptInput = errors.New("corrupt input region")

func headerSize(n int) int {
	return 8 * (n + 2)
}

func byteLen(v *big.Int) int {
	return (v.BitLen() + 7) / 8
}

// encodedSize returns the input region size needed for batch.
func encodedSize(batch []*big.Int) int {
	size := headerSize(len(batch))
	for _, v := range batch {
		size += byteLen(v)
	}
	return size
}

// encodeBatch writes batch into dst, which must hold encodedSize(batch) bytes.
func encodeBatch(dst []byte, batch []*big.Int) {
	binary.LittleEndian.PutUint64(dst, uint64(len(batch)))

	off := headerSize(len(batch))
	for i, v := range batch {
		binary.LittleEndian.PutUint64(dst[8*(i+1):], uint64(off))
		end := off + byteLen(v)
		v.FillBytes(dst[off:end])
		off = end
	}
	binary.LittleEndian.PutUint64(dst[8*(len(batch)+1):], uint64(off))
}

// batchView decodes values from an input region on demand.
type batchView struct {
	data []byte
	n    int
}

func newBatchView(data []byte) (batchView, error) {
	if len(data) < headerSize(0) {
		return batchView{}, fmt.Errorf("%w: %d bytes", errCorruptInput, len(data))
	}
	n, err := conv.Uint64ToIntMax(binary.LittleEndian.Uint64(data), len(data)/8)
	if err != nil {
		return batchView{}, fmt.Errorf("%w: item count: %w", errCorruptInput, err)
	}
	if headerSize(n) > len(data) {
		return batchView{}, fmt.Errorf("%w: %d items in %d bytes", errCorruptInput, n, len(data))
	}
	return batchView{data: data, n: n}, nil
}

func (b batchView) len() int { return b.n }

func (b batchView) offset(i int) (int, error) {
	return conv.Uint64ToIntMax(binary.LittleEndian.Uint64(b.data[8*(i+1):]), len(b.data))
}

// value returns item i as a fresh integer.
func (b batchView) value(i int) (*big.Int, error) {
	if i < 0 || i >= b.n {
		return nil, fmt.Errorf("%w: index %d out of range [0, %d)", errCorruptInput, i, b.n)
	}
	from, err := b.offset(i)
	if err != nil {
		return nil, fmt.Errorf("%w: item %d: %w", errCorruptInput, i, err)
	}
	to, err := b.offset(i + 1)
	if err != nil {
		return nil, fmt.Errorf("%w: item %d: %w", errCorruptInput, i, err)
	}
	if from < headerSize(b.n) || from > to {
		return nil, fmt.Errorf("%w: item %d spans [%d, %d)", errCorruptInput, i, from, to)
	}
	return new(big.Int).SetBytes(b.data[from:to]), nil
}
