//go:build !unix

package shm

import "os"

func osCreate(string) (*os.File, error) {
	return nil, ErrUnsupported
}

func osMapShared(*os.File, int) ([]byte, func([]byte) error, error) {
	return nil, nil, ErrUnsupported
}
