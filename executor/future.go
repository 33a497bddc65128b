package executor

// future is a single-assignment result slot. A deferred future is evaluated
// by the first get instead of by a worker.
type future[T any] struct {
	done     chan struct{}
	val      T
	deferred func() T
}

func newFuture[T any]() *future[T] {
	return &future[T]{done: make(chan struct{})}
}

func deferredFuture[T any](fn func() T) *future[T] {
	return &future[T]{done: make(chan struct{}), deferred: fn}
}

// resolve publishes v. It must be called at most once.
func (f *future[T]) resolve(v T) {
	f.val = v
	close(f.done)
}

// get blocks until the value is available. Only one goroutine may call get
// on a deferred future.
func (f *future[T]) get() T {
	if fn := f.deferred; fn != nil {
		f.deferred = nil
		f.resolve(fn())
	}
	<-f.done
	return f.val
}
