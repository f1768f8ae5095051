package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/wippyai/async-bridge/engine"
	"github.com/wippyai/async-bridge/errors"
)

func TestDefault(t *testing.T) {
	s := Default()

	if s.Bridge.ModuleName != engine.DefaultModuleName {
		t.Errorf("ModuleName = %q, want %q", s.Bridge.ModuleName, engine.DefaultModuleName)
	}
	if s.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", s.Log.Level)
	}
	if d, err := s.AwaitTimeout(); err != nil || d != 0 {
		t.Errorf("AwaitTimeout() = (%v, %v), want unbounded", d, err)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
attachments:
  text: "crash context"
  binary: true
bridge:
  await_timeout: 5s
  memory_limit_pages: 256
log:
  level: debug
  development: true
`)

	s, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if s.Attachments.Text != "crash context" || !s.Attachments.Binary {
		t.Errorf("unexpected attachments: %+v", s.Attachments)
	}
	if s.Bridge.ModuleName != engine.DefaultModuleName {
		t.Errorf("ModuleName should keep default, got %q", s.Bridge.ModuleName)
	}
	if s.Bridge.MemoryLimitPages != 256 {
		t.Errorf("MemoryLimitPages = %d, want 256", s.Bridge.MemoryLimitPages)
	}
	if d, err := s.AwaitTimeout(); err != nil || d != 5*time.Second {
		t.Errorf("AwaitTimeout() = (%v, %v), want 5s", d, err)
	}
	if lvl, err := s.Level(); err != nil || lvl != zapcore.DebugLevel {
		t.Errorf("Level() = (%v, %v), want debug", lvl, err)
	}
	if !s.Log.Development {
		t.Error("Development should be true")
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("bridge: [unterminated"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindInvalidInput}) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		mutate  func(*Settings)
		name    string
		wantErr bool
	}{
		{func(*Settings) {}, "defaults", false},
		{func(s *Settings) { s.Bridge.AwaitTimeout = "250ms" }, "valid timeout", false},
		{func(s *Settings) { s.Bridge.AwaitTimeout = "0" }, "zero timeout", false},
		{func(s *Settings) { s.Bridge.AwaitTimeout = "soon" }, "bad timeout", true},
		{func(s *Settings) { s.Bridge.AwaitTimeout = "-1s" }, "negative timeout", true},
		{func(s *Settings) { s.Log.Level = "warn" }, "valid level", false},
		{func(s *Settings) { s.Log.Level = "loud" }, "bad level", true},
		{func(s *Settings) { s.Log.Level = "" }, "empty level", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		s, err := Load(filepath.Join(dir, "absent.yaml"))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if s.Bridge.ModuleName != engine.DefaultModuleName {
			t.Error("expected defaults for missing file")
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, err := Load(""); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	})

	t.Run("file overrides", func(t *testing.T) {
		path := filepath.Join(dir, "bridge.yaml")
		if err := os.WriteFile(path, []byte("bridge:\n  module_name: puppet\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		s, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if s.Bridge.ModuleName != "puppet" {
			t.Errorf("ModuleName = %q, want puppet", s.Bridge.ModuleName)
		}
	})

	t.Run("unreadable path", func(t *testing.T) {
		if _, err := Load(dir); err == nil {
			t.Error("expected error reading a directory")
		}
	})
}

func TestNewLogger(t *testing.T) {
	s := Default()
	s.Log.Level = "warn"

	l, err := s.NewLogger()
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("error should be enabled at warn level")
	}

	s.Log.Level = "nope"
	if _, err := s.NewLogger(); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestEngineOptions(t *testing.T) {
	s := Default()
	s.Bridge.ModuleName = "puppet"
	if n := len(s.EngineOptions()); n != 2 {
		t.Errorf("EngineOptions() returned %d options, want 2", n)
	}
}

func TestMarshal(t *testing.T) {
	s := Default()
	s.Attachments.Text = "hello"

	out, err := s.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	for _, want := range []string{"attachments:", "text: hello", "module_name: async-bridge"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	back, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse of marshaled settings failed: %v", err)
	}
	if back.Attachments.Text != "hello" {
		t.Errorf("Attachments.Text = %q after reparse", back.Attachments.Text)
	}
}
