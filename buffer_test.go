package seqqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferFIFO(t *testing.T) {
	b := newBuffer[int]()

	_, ok := b.Dequeue()
	assert.False(t, ok)

	for i := 1; i <= 3; i++ {
		b.Enqueue(i)
	}
	assert.Equal(t, 3, b.Len())

	for want := 1; want <= 3; want++ {
		got, ok := b.Dequeue()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.Zero(t, b.Len())
}

func TestBufferReadySignal(t *testing.T) {
	b := newBuffer[string]()

	select {
	case <-b.Ready():
		t.Fatal("ready before any enqueue")
	default:
	}

	b.Enqueue("x")
	b.Enqueue("y")

	select {
	case <-b.Ready():
	default:
		t.Fatal("no ready signal after enqueue")
	}

	// two enqueues leave one token
	select {
	case <-b.Ready():
		t.Fatal("ready signal should coalesce")
	default:
	}
}

func TestBufferDrain(t *testing.T) {
	b := newBuffer[int]()
	b.Enqueue(1)
	b.Enqueue(2)

	assert.Equal(t, []int{1, 2}, b.Drain())
	assert.Zero(t, b.Len())
	assert.Empty(t, b.Drain())

	b.Enqueue(3)
	got, ok := b.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, 3, got)
}
