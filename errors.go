package seqqueue

import (
	"errors"
	"fmt"
)

var ErrClosed = errors.New("queue closed")
var ErrQueueFull = errors.New("queue full")
var ErrStopped = errors.New("queue stopped before job ran")
var ErrNilTask = errors.New("nil task")
var ErrNilContext = errors.New("nil context")

// ErrTaskExited rejects a job whose body stopped its goroutine without
// returning, e.g. via runtime.Goexit or t.FailNow.
var ErrTaskExited = errors.New("task exited without returning")

// PanicError is the rejection of a job whose body panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}
