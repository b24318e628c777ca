package seqqueue

import (
	"context"
	"sync"
)

// Future is the handle returned for a submission. It settles exactly once,
// with the value and error the task produced.
type Future[T any] struct {
	id   string
	done chan struct{}
	once sync.Once
	val  T
	err  error
}

func newFuture[T any](id string) *Future[T] {
	return &Future[T]{id: id, done: make(chan struct{})}
}

// ID returns the job ID: Task.ID() for Enqueue, a random UUID for Submit.
func (f *Future[T]) ID() string {
	return f.id
}

// Done is closed once the future has settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the job settles or ctx is done. A settled future
// returns its result even when ctx is already done. Giving up on ctx does
// not cancel the job.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	default:
	}

	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Err returns the job's error, or nil if it succeeded or has not settled.
func (f *Future[T]) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

func (f *Future[T]) store(v T, err error) {
	f.val, f.err = v, err
}

func (f *Future[T]) complete() {
	f.once.Do(func() { close(f.done) })
}
