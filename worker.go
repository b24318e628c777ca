package seqqueue

import (
	"context"
	"errors"
	"time"
)

// drive is the queue's only consumer. It returns once the queue is closed
// and empty, or stopped.
func (q *Queue) drive() error {
	for {
		select {
		case <-q.ctx.Done():
			q.halt()
			return nil
		default:
		}

		if j, ok := q.pending.Dequeue(); ok {
			q.execute(j)
			continue
		}

		select {
		case <-q.pending.Ready():
		case <-q.ctx.Done():
		case <-q.closing:
			// closed is set under mu, so nothing can be queued after this
			if q.pending.Len() == 0 {
				q.logger.Debug("queue drained")
				return nil
			}
		}
	}
}

func (q *Queue) halt() {
	q.Close()
	jobs := q.pending.Drain()
	for _, j := range jobs {
		q.discard(j, ErrStopped)
	}
	q.logger.Debug("queue stopped", "discarded", len(jobs))
}

func (q *Queue) discard(j *job, err error) {
	q.failed.Add(1)
	q.release()
	j.reject(err)
}

func (q *Queue) execute(j *job) {
	if q.ctx.Err() != nil {
		q.discard(j, ErrStopped)
		return
	}
	if err := j.ctx.Err(); err != nil {
		q.logger.Debug("job skipped", "job_id", j.id, "error", err)
		q.discard(j, err)
		return
	}

	ctx, cancel := q.taskContext(j.ctx)
	q.running.Store(true)
	start := time.Now()

	err := j.exec(ctx)

	cancel()
	q.running.Store(false)
	q.record(j, err, time.Since(start))
	q.release()
	j.publish()
}

func (q *Queue) record(j *job, err error, took time.Duration) {
	if err == nil {
		q.succeeded.Add(1)
		q.logger.Debug("job done", "job_id", j.id, "duration", took)
		return
	}
	q.failed.Add(1)

	var pe *PanicError
	if errors.As(err, &pe) {
		q.logger.Error("job panicked", "job_id", j.id, "panic", pe.Value, "stack", string(pe.Stack))
		return
	}
	q.logger.Debug("job failed", "job_id", j.id, "duration", took, "error", err)
}

// taskContext derives the context a task runs with: the submitter's
// context, cancelled by Stop, bounded by the task timeout if one is set.
func (q *Queue) taskContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(q.ctx, cancel)
	release := func() {
		stop()
		cancel()
	}
	if q.taskTimeout <= 0 {
		return ctx, release
	}

	tctx, tcancel := context.WithTimeout(ctx, q.taskTimeout)
	return tctx, func() {
		tcancel()
		release()
	}
}
