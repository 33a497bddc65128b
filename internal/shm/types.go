package shm

import "errors"

var (
	// ErrInvalidSize is returned when the requested size is not positive.
	ErrInvalidSize = errors.New("shm: invalid region size")
	// ErrUnsupported is returned on platforms without shared mappings.
	ErrUnsupported = errors.New("shm: shared memory is not supported on this platform")
)
