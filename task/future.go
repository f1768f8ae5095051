package task

import "sync"

// Future is an asynchronous computation owned by a foreign runtime.
// ThenAccept registers the consumer that receives its result.
type Future[T any] interface {
	ThenAccept(c *Consumer[T])
}

// Consumer is the callback object handed to a foreign runtime.
// It delivers at most one value.
type Consumer[T any] struct {
	callback func(T)
	mu       sync.Mutex
}

// NewConsumer creates a consumer that forwards the first accepted value to fn.
func NewConsumer[T any](fn func(T)) *Consumer[T] {
	return &Consumer[T]{callback: fn}
}

// Accept delivers v. It reports false when the consumer was already used
// or detached, in which case v is dropped.
func (c *Consumer[T]) Accept(v T) bool {
	c.mu.Lock()
	cb := c.callback
	c.callback = nil
	c.mu.Unlock()

	if cb == nil {
		return false
	}
	cb(v)
	return true
}

// Attached reports whether the consumer can still deliver a value.
func (c *Consumer[T]) Attached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.callback != nil
}

func (c *Consumer[T]) detach() {
	c.mu.Lock()
	c.callback = nil
	c.mu.Unlock()
}

// FromFuture creates a task completed by f's result.
// Completing the task directly detaches the consumer given to f.
func FromFuture[T any](f Future[T], opts ...Option) *Task[T] {
	t := New[T](opts...)
	c := NewConsumer(func(v T) {
		// A direct Complete may win the race; the foreign value is then dropped.
		_ = t.Complete(v)
	})

	t.mu.Lock()
	t.consumer = c
	t.mu.Unlock()

	f.ThenAccept(c)
	return t
}
