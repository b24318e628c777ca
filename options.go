package seqqueue

import (
	"log/slog"
	"time"
)

type Option func(*Queue)

func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// WithCapacity bounds the number of jobs admitted but not yet settled.
// Zero or less leaves the queue unbounded.
func WithCapacity(n int) Option {
	return func(q *Queue) {
		q.capacity = int64(n)
	}
}

// WithBlockingSubmit makes a bounded queue wait for room instead of
// failing with ErrQueueFull.
func WithBlockingSubmit() Option {
	return func(q *Queue) {
		q.blocking = true
	}
}

// WithTaskTimeout puts a deadline on the context each task runs with. A task
// that ignores its context still holds the queue until it returns.
func WithTaskTimeout(d time.Duration) Option {
	return func(q *Queue) {
		q.taskTimeout = d
	}
}
