package collatzgo

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
)

// maxToken bounds the length of a single decimal in ReadBatch.
const maxToken = 64 << 20

// ReadBatch parses whitespace-separated decimal integers. Values are not
// checked for positivity; Run rejects non-positive values.
func ReadBatch(r io.Reader) ([]*big.Int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxToken)
	sc.Split(bufio.ScanWords)

	var batch []*big.Int
	for sc.Scan() {
		v, ok := new(big.Int).SetString(sc.Text(), 10)
		if !ok {
			return nil, fmt.Errorf("%w: item %d: %q is not a decimal integer", ErrInvalidBatch, len(batch), sc.Text())
		}
		batch = append(batch, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}
	return batch, nil
}

// WriteResults writes one stopping time per line.
func WriteResults(w io.Writer, results []uint64) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		if _, err := fmt.Fprintln(bw, r); err != nil {
			return err
		}
	}
	return bw.Flush()
}
