//go:build unix

package shm

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestCreate_ZeroFilled(t *testing.T) {
	r, err := Create("test", 4096)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 4096, r.Size())
	assert.Len(t, r.Bytes(), 4096)
	words := r.Uint64s()
	require.Len(t, words, 512)
	for _, w := range words {
		require.Zero(t, w)
	}
}

func TestCreate_InvalidSize(t *testing.T) {
	_, err := Create("test", 0)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = Create("test", -8)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestAttach_SharesMemory(t *testing.T) {
	r, err := Create("shared", 64)
	require.NoError(t, err)
	defer r.Close()

	fd, err := unix.Dup(int(r.File().Fd()))
	require.NoError(t, err)

	other, err := Attach(os.NewFile(uintptr(fd), "dup"), 64)
	require.NoError(t, err)
	defer other.Close()

	r.Uint64s()[3] = 42
	assert.Equal(t, uint64(42), other.Uint64s()[3])

	other.Bytes()[0] = 7
	assert.Equal(t, byte(7), r.Bytes()[0])
}

func TestAttach_InvalidArguments(t *testing.T) {
	_, err := Attach(nil, 64)
	assert.Error(t, err)

	r, err := Create("test", 64)
	require.NoError(t, err)
	defer r.Close()
	_, err = Attach(r.File(), 0)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestClose_Idempotent(t *testing.T) {
	r, err := Create("test", 64)
	require.NoError(t, err)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.Nil(t, r.Bytes())
	assert.Nil(t, r.Uint64s())

	var nilRegion *Region
	assert.NoError(t, nilRegion.Close())
}
