package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseComplete Phase = "complete" // handle completion
	PhaseAwait    Phase = "await"    // waiting on a handle
	PhaseHost     Phase = "host"     // host function registration and dispatch
	PhaseLoad     Phase = "load"     // guest module compile/instantiate
	PhaseInvoke   Phase = "invoke"   // guest export calls
	PhaseConfig   Phase = "config"   // settings load and validation
)

// Kind categorizes the error
type Kind string

const (
	KindAlreadyCompleted Kind = "already_completed"
	KindCanceled         Kind = "canceled"
	KindNotFound         Kind = "not_found"
	KindClosed           Kind = "closed"
	KindInvalidInput     Kind = "invalid_input"
	KindRegistration     Kind = "registration"
	KindInstantiation    Kind = "instantiation"
	KindInvocation       Kind = "invocation"
)

// Kind-only sentinels. Is matches them against any phase.
var (
	ErrAlreadyCompleted = &Error{Kind: KindAlreadyCompleted}
	ErrCanceled         = &Error{Kind: KindCanceled}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrClosed           = &Error{Kind: KindClosed}
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	TaskID string
	Detail string
	Handle uint32
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.TaskID != "" {
		b.WriteString(" task ")
		b.WriteString(e.TaskID)
	}
	if e.Handle != 0 {
		b.WriteString(" handle ")
		b.WriteString(strconv.FormatUint(uint64(e.Handle), 10))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without a phase matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// TaskID sets the task correlation ID
func (b *Builder) TaskID(id string) *Builder {
	b.err.TaskID = id
	return b
}

// Handle sets the foreign handle
func (b *Builder) Handle(h uint32) *Builder {
	b.err.Handle = h
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// AlreadyCompleted creates the error returned by a second completion.
// value is the rejected value; the stored one is left untouched.
func AlreadyCompleted(taskID string, value any) *Error {
	return &Error{
		Phase:  PhaseComplete,
		Kind:   KindAlreadyCompleted,
		TaskID: taskID,
		Value:  value,
		Detail: "result already set",
	}
}

// Canceled creates an error for a bounded wait that ended before completion
func Canceled(taskID string, cause error) *Error {
	return &Error{
		Phase:  PhaseAwait,
		Kind:   KindCanceled,
		TaskID: taskID,
		Detail: "wait abandoned before completion",
		Cause:  cause,
	}
}

// NotFound creates an unknown handle error
func NotFound(phase Phase, handle uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Handle: handle,
		Detail: "no pending task for handle",
	}
}

// Closed creates an error for operations on a closed bridge
func Closed(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: "bridge is closed",
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Registration creates a host function registration error
func Registration(phase Phase, module, function string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s#%s", module, function),
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// IsAlreadyCompleted reports whether err is, or wraps, a double completion
func IsAlreadyCompleted(err error) bool {
	return stderrors.Is(err, ErrAlreadyCompleted)
}

// IsCanceled reports whether err is, or wraps, an abandoned wait
func IsCanceled(err error) bool {
	return stderrors.Is(err, ErrCanceled)
}
