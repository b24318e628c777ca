// Package seqqueue runs submitted tasks one at a time, in submission order.
//
// Any number of goroutines may submit concurrently. Each submission gets a
// Future that settles with exactly the value or error its task returned; a
// failing or panicking task only affects its own Future.
package seqqueue

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

type Queue struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group
	logger *slog.Logger

	pending *buffer[*job]
	slots   *semaphore.Weighted

	mu      sync.Mutex
	closed  bool
	closing chan struct{}
	exited  chan struct{}

	capacity    int64
	blocking    bool
	taskTimeout time.Duration

	running   atomic.Bool
	submitted atomic.Uint64
	succeeded atomic.Uint64
	failed    atomic.Uint64
}

// Stats is a point-in-time snapshot of a queue.
type Stats struct {
	Submitted uint64
	Succeeded uint64
	Failed    uint64
	Pending   int
	Running   bool
}

// New starts a queue. Cancelling ctx has the same effect as Stop.
func New(ctx context.Context, opts ...Option) *Queue {
	ctx, cancel := context.WithCancel(ctx)

	q := &Queue{
		ctx:     ctx,
		cancel:  cancel,
		logger:  discardLogger(),
		pending: newBuffer[*job](),
		closing: make(chan struct{}),
		exited:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	if q.capacity > 0 {
		q.slots = semaphore.NewWeighted(q.capacity)
	}

	q.group.Go(func() error {
		defer close(q.exited)
		return q.drive()
	})
	return q
}

// Submit queues fn. The returned error is non-nil only when the job was not
// admitted: ErrNilTask, ErrNilContext, ErrClosed, ErrQueueFull, or ctx's
// error while waiting for room.
// fn runs with a context derived from ctx; if ctx is done before fn's turn
// comes, fn is skipped and the Future rejects with ctx's error.
func Submit[T any](ctx context.Context, q *Queue, fn func(context.Context) (T, error)) (*Future[T], error) {
	if fn == nil {
		return nil, ErrNilTask
	}
	return submit(ctx, q, uuid.NewString(), fn)
}

// Do submits fn and waits for its result.
func Do[T any](ctx context.Context, q *Queue, fn func(context.Context) (T, error)) (T, error) {
	f, err := Submit(ctx, q, fn)
	if err != nil {
		var zero T
		return zero, err
	}
	return f.Await(ctx)
}

// Enqueue queues a Task under its own ID.
func (q *Queue) Enqueue(ctx context.Context, task Task) (*Future[struct{}], error) {
	if task == nil {
		return nil, ErrNilTask
	}
	return submit(ctx, q, task.ID(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, task.Execute(ctx)
	})
}

func submit[T any](ctx context.Context, q *Queue, id string, fn func(context.Context) (T, error)) (*Future[T], error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	f := newFuture[T](id)
	if err := q.push(ctx, newJob(ctx, id, fn, f)); err != nil {
		return nil, err
	}
	return f, nil
}

func (q *Queue) push(ctx context.Context, j *job) error {
	if q.isClosed() {
		return ErrClosed
	}
	if err := q.admit(ctx); err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.release()
		return ErrClosed
	}
	q.pending.Enqueue(j)
	q.submitted.Add(1)
	q.logger.Debug("job queued", "job_id", j.id)
	return nil
}

func (q *Queue) admit(ctx context.Context) error {
	if q.slots == nil {
		return nil
	}
	if q.blocking {
		return q.slots.Acquire(ctx, 1)
	}
	if !q.slots.TryAcquire(1) {
		return ErrQueueFull
	}
	return nil
}

func (q *Queue) release() {
	if q.slots != nil {
		q.slots.Release(1)
	}
}

func (q *Queue) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Close stops accepting submissions. Jobs already queued still run.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.closing)
	q.logger.Debug("queue closed", "pending", q.pending.Len())
}

// Shutdown closes the queue and waits until every queued job has settled,
// or until ctx is done.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.Close()

	select {
	case <-q.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop closes the queue, cancels the running task's context and rejects
// every job that has not started with ErrStopped. It returns once the
// running task has returned.
func (q *Queue) Stop() {
	q.cancel()
	_ = q.group.Wait()
}

// Len reports the number of jobs waiting to start.
func (q *Queue) Len() int {
	return q.pending.Len()
}

func (q *Queue) Stats() Stats {
	return Stats{
		Submitted: q.submitted.Load(),
		Succeeded: q.succeeded.Load(),
		Failed:    q.failed.Load(),
		Pending:   q.pending.Len(),
		Running:   q.running.Load(),
	}
}
