package task

import (
	"context"
	"sync"
)

// MemoryQueue is a bounded in-memory queue backing the default single-binary
// setup.
type MemoryQueue struct {
	ch      chan Task
	closeMu sync.Mutex
	closed  bool
}

func NewMemoryQueue(capacity int) *MemoryQueue {
	if capacity <= 0 {
		capacity = 1024
	}
	return &MemoryQueue{ch: make(chan Task, capacity)}
}

// Enqueue pushes a task without blocking; a full buffer reports ErrFull so
// the scheduler loop can drop and move on.
func (q *MemoryQueue) Enqueue(ctx context.Context, t Task) error {
	q.closeMu.Lock()
	if q.closed {
		q.closeMu.Unlock()
		return ErrClosed
	}
	defer q.closeMu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case q.ch <- t:
		return nil
	default:
		return ErrFull
	}
}

// Dequeue pops the next task, respecting context cancellation.
func (q *MemoryQueue) Dequeue(ctx context.Context) (Task, error) {
	select {
	case <-ctx.Done():
		return Task{}, ctx.Err()
	case t, ok := <-q.ch:
		if !ok {
			return Task{}, ErrClosed
		}
		return t, nil
	}
}

// Close closes the underlying channel for shutdown.
func (q *MemoryQueue) Close() {
	q.closeMu.Lock()
	defer q.closeMu.Unlock()
	if q.closed {
		return
	}
	close(q.ch)
	q.closed = true
}

// Len reports the number of buffered tasks, for tests.
func (q *MemoryQueue) Len() int { return len(q.ch) }
