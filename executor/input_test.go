package executor

import (
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBatch(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(3), 300)
	batch := []*big.Int{big.NewInt(1), big.NewInt(255), big.NewInt(256), huge}

	buf := make([]byte, encodedSize(batch))
	encodeBatch(buf, batch)

	view, err := newBatchView(buf)
	require.NoError(t, err)
	require.Equal(t, len(batch), view.len())

	for i, want := range batch {
		got, err := view.value(i)
		require.NoError(t, err)
		assert.Zero(t, want.Cmp(got), "item %d", i)
	}

	_, err = view.value(len(batch))
	assert.ErrorIs(t, err, errCorruptInput)
}

func TestBatchView_Corrupt(t *testing.T) {
	_, err := newBatchView(make([]byte, 8))
	assert.ErrorIs(t, err, errCorruptInput)

	buf := make([]byte, 32)
	binary.LittleEndian.PutUint64(buf, 100)
	_, err = newBatchView(buf)
	assert.ErrorIs(t, err, errCorruptInput)

	batch := []*big.Int{big.NewInt(7)}
	buf = make([]byte, encodedSize(batch))
	encodeBatch(buf, batch)
	binary.LittleEndian.PutUint64(buf[16:], uint64(len(buf)+1))

	view, err := newBatchView(buf)
	require.NoError(t, err)
	_, err = view.value(0)
	assert.ErrorIs(t, err, errCorruptInput)
}

func TestWorkerSpec(t *testing.T) {
	s := workerSpec{slots: 10, input: 128, capacity: 64, start: 1, stride: 3, count: 3}

	got, err := parseWorkerSpec(s.String())
	require.NoError(t, err)
	assert.Equal(t, s, got)

	first, last := got.indices()
	assert.Equal(t, 1, first)
	assert.Equal(t, 7, last)

	for _, bad := range []string{
		"",
		"slots=10",
		"slots=10,input=128,capacity=0,start=0,stride=1,count=x",
		"slots=10,input=128,capacity=0,start=0,stride=1,count=1,extra=2",
		"slots=10,input=128,capacity=0,start=0,stride=1,count=-1",
		"slots=10,input=128,capacity=0,start=9,stride=1,count=2",
		"slots=10,input=128,capacity=0,start=0,stride=0,count=2",
	} {
		_, err := parseWorkerSpec(bad)
		assert.Error(t, err, bad)
	}
}
