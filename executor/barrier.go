package executor

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// maxStderr bounds the worker output kept for error reports.
const maxStderr = 4 << 10

// workerHandle is a started worker process. Its live-worker slot is
// released as soon as the process exits.
type workerHandle struct {
	cmd    *exec.Cmd
	stderr *tailBuffer
	spec   workerSpec
	done   chan struct{}
	err    error
}

func startWorker(cmd *exec.Cmd, spec workerSpec, release func()) (*workerHandle, error) {
	h := &workerHandle{
		cmd:    cmd,
		stderr: &tailBuffer{},
		spec:   spec,
		done:   make(chan struct{}),
	}
	cmd.Stderr = h.stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	go func() {
		defer close(h.done)
		defer release()
		h.err = cmd.Wait()
	}()
	return h, nil
}

// wait blocks until the process has exited and been reaped.
func (h *workerHandle) wait() error {
	<-h.done
	if h.err == nil {
		return nil
	}

	op := fmt.Sprintf("wait worker pid %d (%s)", h.cmd.Process.Pid, h.spec)
	if msg := strings.TrimSpace(h.stderr.String()); msg != "" {
		op += ": " + msg
	}
	return &FatalError{Kind: ChildWaitFailure, Op: op, Err: h.err}
}

// awaitAll waits for every worker, including after a failure, and returns
// the joined failures.
func awaitAll(handles []*workerHandle) error {
	var errs []error
	for _, h := range handles {
		if err := h.wait(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// tailBuffer keeps the last maxStderr bytes written to it.
type tailBuffer struct {
	buf bytes.Buffer
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if len(p) > maxStderr {
		p = p[len(p)-maxStderr:]
	}
	if over := b.buf.Len() + len(p) - maxStderr; over > 0 {
		b.buf.Next(over)
	}
	b.buf.Write(p)
	return n, nil
}

func (b *tailBuffer) String() string { return b.buf.String() }
