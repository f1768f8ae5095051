// Package task provides a single-assignment result handle for asynchronous
// calls that complete in a foreign runtime.
//
// A Task starts Pending and moves to Completed exactly once, either through a
// direct Complete call or through a foreign delivery routed by a Consumer.
// Any number of goroutines may wait on it before or after completion; all of
// them observe the same value.
//
// # Waiting
//
//	t := task.New[int]()
//	go produce(t)            // eventually calls t.Complete(42)
//	v := t.Await()           // blocks without a deadline
//
// Await has no timeout. Callers that may give up use AwaitContext or
// AwaitTimeout, which return a canceled error and leave no goroutine behind:
//
//	v, err := t.AwaitContext(ctx)
//	if errors.IsCanceled(err) { ... }
//
// # Completion
//
// Complete stores the value, releases every waiter and then runs the
// registered callbacks once, in registration order. A second Complete
// fails with an already-completed error and leaves the stored value as is.
//
// Callbacks registered after completion run immediately on the registering
// goroutine with the stored value.
//
// # Foreign futures
//
// A foreign runtime hands results back through a callback object. FromFuture
// wires a Consumer to a new Task:
//
//	t := task.FromFuture[bool](nativeFuture) // nativeFuture.ThenAccept(consumer)
//
// Completing the task detaches the consumer, so late or repeated foreign
// deliveries are dropped.
package task
