package task

import (
	"context"
	"sync"
	"time"

	"github.com/wippyai/async-bridge/errors"
)

// Task is a pending or completed outcome of an asynchronous call.
// Safe for concurrent use.
type Task[T any] struct {
	value     T
	done      chan struct{}
	consumer  *Consumer[T]
	id        string
	callbacks []func(T)
	mu        sync.Mutex
	completed bool
}

// New creates a Pending task.
func New[T any](opts ...Option) *Task[T] {
	cfg := buildConfig(opts)
	return &Task[T]{
		id:   cfg.id,
		done: make(chan struct{}),
	}
}

// Completed creates a task that already holds v.
func Completed[T any](v T, opts ...Option) *Task[T] {
	t := New[T](opts...)
	t.value = v
	t.completed = true
	close(t.done)
	return t
}

// ID returns the task's correlation ID.
func (t *Task[T]) ID() string {
	return t.id
}

// Done returns a channel that is closed once the task completes.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// IsCompleted reports whether Complete has succeeded.
func (t *Task[T]) IsCompleted() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Result returns the stored value without blocking.
// ok is false while the task is pending.
func (t *Task[T]) Result() (value T, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value, t.completed
}

// Await blocks until the task completes and returns its value.
// There is no deadline; a task that is never completed blocks forever.
func (t *Task[T]) Await() T {
	// value is written before done is closed and never again.
	<-t.done
	return t.value
}

// AwaitContext blocks until the task completes or ctx is done.
// When both happen, the completed value wins.
func (t *Task[T]) AwaitContext(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, nil
	case <-ctx.Done():
	}

	select {
	case <-t.done:
		return t.value, nil
	default:
		var zero T
		return zero, errors.Canceled(t.id, ctx.Err())
	}
}

// AwaitTimeout is AwaitContext with a deadline d from now.
// A non-positive d waits without a deadline.
func (t *Task[T]) AwaitTimeout(d time.Duration) (T, error) {
	if d <= 0 {
		return t.Await(), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return t.AwaitContext(ctx)
}

// Complete stores v and releases all waiters.
// Returns an already-completed error if the task was completed before;
// the stored value is left unchanged in that case.
//
// Registered callbacks run on the calling goroutine after the state change
// is published and before Complete returns.
func (t *Task[T]) Complete(v T) error {
	t.mu.Lock()
	if t.completed {
		t.mu.Unlock()
		return errors.AlreadyCompleted(t.id, v)
	}

	if t.consumer != nil {
		t.consumer.detach()
		t.consumer = nil
	}
	t.value = v
	t.completed = true
	close(t.done)

	callbacks := t.callbacks
	t.callbacks = nil
	t.mu.Unlock()

	for _, cb := range callbacks {
		cb(v)
	}
	return nil
}

// OnComplete registers cb to run once with the completed value.
// If the task is already completed, cb runs immediately.
func (t *Task[T]) OnComplete(cb func(T)) {
	if cb == nil {
		return
	}

	t.mu.Lock()
	if !t.completed {
		t.callbacks = append(t.callbacks, cb)
		t.mu.Unlock()
		return
	}
	v := t.value
	t.mu.Unlock()

	cb(v)
}

// Then returns a task completed with fn applied to t's value.
func Then[T, U any](t *Task[T], fn func(T) U) *Task[U] {
	next := New[U]()
	t.OnComplete(func(v T) {
		// next is only reachable from this callback, which runs once.
		_ = next.Complete(fn(v))
	})
	return next
}
