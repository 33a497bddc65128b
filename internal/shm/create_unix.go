//go:build unix && !linux

package shm

import "os"

// osCreate falls back to an unlinked temporary file where memfd is missing.
func osCreate(name string) (*os.File, error) {
	f, err := os.CreateTemp("", "collatzgo-"+name+"-*")
	if err != nil {
		return nil, err
	}
	if err := os.Remove(f.Name()); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
