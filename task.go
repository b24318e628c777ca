package seqqueue

import (
	"context"
	"runtime/debug"
)

type Task interface {
	ID() string // Unique identifier for the task
	Execute(ctx context.Context) error
}

// job is one submission waiting in the buffer. exec runs the body and
// stores the outcome in the future without publishing it; publish makes
// the outcome visible to the submitter. reject settles without running.
type job struct {
	id      string
	ctx     context.Context
	exec    func(ctx context.Context) error
	publish func()
	reject  func(err error)
}

func newJob[T any](ctx context.Context, id string, fn func(context.Context) (T, error), f *Future[T]) *job {
	return &job{
		id:  id,
		ctx: ctx,
		exec: func(ctx context.Context) error {
			v, err := protect(ctx, fn)
			f.store(v, err)
			return err
		},
		publish: f.complete,
		reject: func(err error) {
			var zero T
			f.store(zero, err)
			f.complete()
		},
	}
}

// protect runs fn on its own goroutine and waits for it, so neither a panic
// nor runtime.Goexit inside fn can take the driver down with it.
func protect[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	var (
		v    T
		err  error
		done = make(chan struct{})
	)
	go func() {
		normalReturn := false
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Value: r, Stack: debug.Stack()}
			} else if !normalReturn {
				err = ErrTaskExited
			}
			close(done)
		}()
		v, err = fn(ctx)
		normalReturn = true
	}()
	<-done
	return v, err
}
