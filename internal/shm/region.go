package shm

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"
)

// Region is a shared read-write memory mapping backed by an anonymous file.
// It owns both the mapping and the file.
type Region struct {
	data   []byte
	size   int
	file   *os.File
	closed atomic.Bool
	// unmap is the platform-specific function to unmap the memory.
	unmap func([]byte) error
}

// Create allocates a zero-filled shared region of size bytes.
// name is informational (it shows up in /proc/<pid>/maps on Linux).
func Create(name string, size int) (*Region, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	f, err := osCreate(name)
	if err != nil {
		return nil, fmt.Errorf("shm: create %s: %w", name, err)
	}

	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return nil, fmt.Errorf("shm: truncate %s: %w", name, err)
	}

	r, err := mapFile(f, size)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("shm: map %s: %w", name, err)
	}
	return r, nil
}

// Attach maps an inherited region file. The region takes ownership of f.
func Attach(f *os.File, size int) (*Region, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if f == nil {
		return nil, os.ErrInvalid
	}

	r, err := mapFile(f, size)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("shm: attach %s: %w", f.Name(), err)
	}
	return r, nil
}

func mapFile(f *os.File, size int) (*Region, error) {
	data, unmapFunc, err := osMapShared(f, size)
	if err != nil {
		return nil, err
	}
	return &Region{
		data:  data,
		size:  size,
		file:  f,
		unmap: unmapFunc,
	}, nil
}

// Close unmaps the memory and closes the backing file. It is idempotent.
func (r *Region) Close() error {
	if r == nil || r.closed.Swap(true) {
		return nil
	}
	var err error
	if r.unmap != nil && r.data != nil {
		err = r.unmap(r.data)
	}
	r.data = nil
	if r.file != nil {
		if closeErr := r.file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

// Bytes returns the mapped bytes.
// Warning: The slice is valid only until Close() is called.
func (r *Region) Bytes() []byte {
	if r.closed.Load() {
		return nil
	}
	return r.data
}

// Uint64s returns the region as a slice of 64-bit words (size/8 of them).
// Mappings are page aligned, so every word is naturally aligned.
func (r *Region) Uint64s() []uint64 {
	if r.closed.Load() || r.size < 8 {
		return nil
	}
	return unsafe.Slice((*uint64)(unsafe.Pointer(&r.data[0])), r.size/8)
}

// File returns the backing file, for handing the region to a child process.
func (r *Region) File() *os.File {
	return r.file
}

// Size returns the size of the region in bytes.
func (r *Region) Size() int {
	return r.size
}
