package executor

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/hupe1980/collatzgo/internal/collatz"
	"github.com/hupe1980/collatzgo/internal/memo"
	"github.com/hupe1980/collatzgo/internal/shm"
)

// workerEnv carries the workerSpec of a worker process.
const workerEnv = "COLLATZGO_WORKER"

// File descriptors of the shared regions in a worker process.
const (
	inputFD   = 3
	resultsFD = 4
	partialFD = 5
)

// workerSpec tells a worker process which results to compute.
type workerSpec struct {
	slots    int // batch length, also the result region length in words
	input    int // input region size in bytes
	capacity int // partial cache slots, 0 without memoization
	start    int
	stride   int
	count    int
}

func (s workerSpec) String() string {
	return fmt.Sprintf("slots=%d,input=%d,capacity=%d,start=%d,stride=%d,count=%d",
		s.slots, s.input, s.capacity, s.start, s.stride, s.count)
}

// indices returns the result slots covered by s.
func (s workerSpec) indices() (first, last int) {
	return s.start, s.start + (s.count-1)*s.stride
}

func parseWorkerSpec(v string) (workerSpec, error) {
	var s workerSpec
	fields := map[string]*int{
		"slots":    &s.slots,
		"input":    &s.input,
		"capacity": &s.capacity,
		"start":    &s.start,
		"stride":   &s.stride,
		"count":    &s.count,
	}

	seen := 0
	for kv := range strings.SplitSeq(v, ",") {
		key, val, ok := strings.Cut(kv, "=")
		dst, known := fields[key]
		if !ok || !known {
			return workerSpec{}, fmt.Errorf("worker spec: bad field %q", kv)
		}
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			return workerSpec{}, fmt.Errorf("worker spec: bad value for %s: %q", key, val)
		}
		*dst = n
		seen++
	}
	if seen != len(fields) {
		return workerSpec{}, fmt.Errorf("worker spec: want %d fields, got %d", len(fields), seen)
	}

	if s.slots == 0 || s.input == 0 || s.stride == 0 || s.count == 0 {
		return workerSpec{}, fmt.Errorf("worker spec: empty unit: %s", s)
	}
	if _, last := s.indices(); last >= s.slots {
		return workerSpec{}, fmt.Errorf("worker spec: unit exceeds %d slots: %s", s.slots, s)
	}
	return s, nil
}

// IsWorker reports whether the process was started as a worker by a process
// strategy.
func IsWorker() bool {
	_, ok := os.LookupEnv(workerEnv)
	return ok
}

// ServeWorker computes the unit assigned to this worker process and returns
// the exit code. Programs using process strategies call it first:
//
//	if executor.IsWorker() {
//		os.Exit(executor.ServeWorker())
//	}
func ServeWorker() int {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	spec, err := parseWorkerSpec(os.Getenv(workerEnv))
	if err != nil {
		log.Error("worker failed", "error", err)
		return 2
	}
	if err := serveWorker(spec); err != nil {
		log.Error("worker failed", "spec", spec.String(), "error", err)
		return 1
	}
	return 0
}

func serveWorker(spec workerSpec) (err error) {
	input, err := shm.Attach(os.NewFile(inputFD, "collatzgo-input"), spec.input)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, input.Close()) }()

	results, err := shm.Attach(os.NewFile(resultsFD, "collatzgo-results"), spec.slots*8)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, results.Close()) }()

	var m collatz.Memo
	if spec.capacity > 0 {
		region, attachErr := shm.Attach(os.NewFile(partialFD, "collatzgo-partial"), memo.PartialArrayBytes(spec.capacity))
		if attachErr != nil {
			return attachErr
		}
		defer func() { err = errors.Join(err, region.Close()) }()

		cache, cacheErr := memo.NewPartialArray(region)
		if cacheErr != nil {
			return cacheErr
		}
		m = cache
	}

	view, err := newBatchView(input.Bytes())
	if err != nil {
		return err
	}
	if view.len() != spec.slots {
		return fmt.Errorf("%w: region holds %d items, want %d", errCorruptInput, view.len(), spec.slots)
	}

	out := results.Uint64s()
	for j := range spec.count {
		i := spec.start + j*spec.stride
		v, err := view.value(i)
		if err != nil {
			return err
		}
		if v.Sign() <= 0 {
			return &InvalidValueError{Index: i}
		}
		atomic.StoreUint64(&out[i], collatz.Compute(v, m))
	}
	return nil
}
