package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseHost,
				Kind:   KindNotFound,
				TaskID: "abc",
				Handle: 7,
				Detail: "unknown handle",
			},
			contains: []string{"[host]", "not_found", "task abc", "handle 7", "unknown handle"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseComplete,
				Kind:  KindAlreadyCompleted,
			},
			contains: []string{"[complete]", "already_completed"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseAwait,
				Kind:   KindCanceled,
				Detail: "gave up",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[await]", "canceled", "gave up", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_SentinelHasNoPhasePrefix(t *testing.T) {
	if got := ErrAlreadyCompleted.Error(); got != "already_completed" {
		t.Errorf("sentinel message = %q, want %q", got, "already_completed")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PhaseLoad, KindInstantiation, cause, "instantiate guest")

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause in chain")
	}
}

func TestError_Is(t *testing.T) {
	err := AlreadyCompleted("t1", 2)

	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Error("expected match against kind-only sentinel")
	}
	if !errors.Is(err, &Error{Phase: PhaseComplete, Kind: KindAlreadyCompleted}) {
		t.Error("expected match against same phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseHost, Kind: KindAlreadyCompleted}) {
		t.Error("expected no match against different phase")
	}
	if errors.Is(err, ErrCanceled) {
		t.Error("expected no match against different kind")
	}
	if errors.Is(err, errors.New("already_completed")) {
		t.Error("expected no match against plain error")
	}
}

func TestError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("set result: %w", AlreadyCompleted("t1", 2))
	if !IsAlreadyCompleted(err) {
		t.Error("IsAlreadyCompleted should see through fmt wrapping")
	}
}

func TestError_As(t *testing.T) {
	var err error = NotFound(PhaseHost, 9)

	var target *Error
	if !errors.As(err, &target) {
		t.Fatal("errors.As failed")
	}
	if target.Handle != 9 {
		t.Errorf("expected handle 9, got %d", target.Handle)
	}
}

func TestCanceled_WrapsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Canceled("t1", ctx.Err())
	if !IsCanceled(err) {
		t.Error("expected canceled kind")
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("expected context.Canceled in chain")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseHost, KindNotFound).
		TaskID("t9").
		Handle(3).
		Value(int64(5)).
		Cause(errors.New("x")).
		Detail("handle %d gone", 3).
		Build()

	if err.Phase != PhaseHost || err.Kind != KindNotFound {
		t.Errorf("unexpected phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if err.TaskID != "t9" || err.Handle != 3 {
		t.Errorf("unexpected task/handle: %s/%d", err.TaskID, err.Handle)
	}
	if err.Value != int64(5) {
		t.Errorf("unexpected value: %v", err.Value)
	}
	if err.Detail != "handle 3 gone" {
		t.Errorf("unexpected detail: %q", err.Detail)
	}
	if err.Cause == nil {
		t.Error("cause not set")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		err   *Error
		name  string
		phase Phase
		kind  Kind
	}{
		{AlreadyCompleted("t", 1), "AlreadyCompleted", PhaseComplete, KindAlreadyCompleted},
		{Canceled("t", nil), "Canceled", PhaseAwait, KindCanceled},
		{NotFound(PhaseHost, 1), "NotFound", PhaseHost, KindNotFound},
		{Closed(PhaseInvoke), "Closed", PhaseInvoke, KindClosed},
		{InvalidInput(PhaseConfig, "bad"), "InvalidInput", PhaseConfig, KindInvalidInput},
		{Registration(PhaseHost, "m", "f", nil), "Registration", PhaseHost, KindRegistration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("phase = %s, want %s", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", tt.err.Kind, tt.kind)
			}
		})
	}
}
