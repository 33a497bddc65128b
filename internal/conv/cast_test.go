package conv

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntToUint32(t *testing.T) {
	got, err := IntToUint32(7)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), got)

	_, err = IntToUint32(-1)
	assert.ErrorIs(t, err, ErrOverflow)

	if strconv.IntSize == 64 {
		limit := uint64(math.MaxUint32)

		got, err = IntToUint32(int(limit))
		require.NoError(t, err)
		assert.Equal(t, uint32(math.MaxUint32), got)

		_, err = IntToUint32(int(limit + 1))
		assert.ErrorIs(t, err, ErrOverflow)
	}
}

func TestUint64ToInt(t *testing.T) {
	got, err := Uint64ToInt(42)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = Uint64ToInt(math.MaxUint64)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestUint64ToIntMax(t *testing.T) {
	got, err := Uint64ToIntMax(10, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, got)

	_, err = Uint64ToIntMax(11, 10)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = Uint64ToIntMax(math.MaxUint64, math.MaxInt)
	assert.ErrorIs(t, err, ErrOverflow)
}
