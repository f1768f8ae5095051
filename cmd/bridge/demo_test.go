package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunDemo(t *testing.T) {
	var out bytes.Buffer
	if err := runDemo(&out, 3, 42); err != nil {
		t.Fatalf("runDemo failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"waiter 0: 42",
		"waiter 1: 42",
		"waiter 2: 42",
		"second completion rejected: [complete] already_completed task demo",
		"late callback: 42",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunDemo_InvalidWaiters(t *testing.T) {
	var out bytes.Buffer
	if err := runDemo(&out, 0, 1); err == nil {
		t.Error("expected error for zero waiters")
	}
}

func TestConfigShow(t *testing.T) {
	out, err := execute(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, "module_name: async-bridge") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
