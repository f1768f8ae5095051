// Package errors provides structured error types for the async bridge.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the task ID or foreign handle involved and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseHost, errors.KindNotFound).
//		Handle(7).
//		Detail("guest completed an unknown handle").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.AlreadyCompleted(taskID, value)
//	err := errors.Canceled(taskID, ctx.Err())
//
// Kind-only sentinels match errors of that kind from any phase:
//
//	if errors.Is(err, errors.ErrAlreadyCompleted) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
