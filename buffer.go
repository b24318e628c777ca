package seqqueue

import "sync"

// buffer is an unbounded FIFO. Enqueue leaves a token on ready so a
// single consumer parked on Ready wakes up.
type buffer[T any] struct {
	items []T
	mux   sync.Mutex
	ready chan struct{}
}

func newBuffer[T any]() *buffer[T] {
	return &buffer[T]{
		items: make([]T, 0),
		ready: make(chan struct{}, 1),
	}
}

func (b *buffer[T]) Enqueue(item T) {
	b.mux.Lock()
	b.items = append(b.items, item)
	b.mux.Unlock()

	select {
	case b.ready <- struct{}{}:
	default:
	}
}

func (b *buffer[T]) Dequeue() (T, bool) {
	b.mux.Lock()
	defer b.mux.Unlock()

	var zero T
	if len(b.items) == 0 {
		return zero, false
	}
	item := b.items[0]
	b.items[0] = zero
	b.items = b.items[1:]
	return item, true
}

// Drain removes and returns everything still buffered, oldest first.
func (b *buffer[T]) Drain() []T {
	b.mux.Lock()
	defer b.mux.Unlock()

	items := b.items
	b.items = make([]T, 0)
	return items
}

func (b *buffer[T]) Len() int {
	b.mux.Lock()
	defer b.mux.Unlock()
	return len(b.items)
}

func (b *buffer[T]) Ready() <-chan struct{} {
	return b.ready
}
