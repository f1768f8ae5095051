// Package config holds the explicit settings object passed to bridge
// components.
//
// Settings are resolved in a fixed order: Default, then the YAML file given to
// Load, then command-line overrides applied by the caller, then Validate.
// Nothing reads settings from package state.
//
// File layout:
//
//	attachments:
//	  text: "crash context"
//	  binary: true
//	bridge:
//	  await_timeout: 5s
//	  module_name: async-bridge
//	  memory_limit_pages: 256
//	log:
//	  level: debug
//	  development: true
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/async-bridge/engine"
	"github.com/wippyai/async-bridge/errors"
)

// Settings is the full configuration.
type Settings struct {
	Attachments Attachments `yaml:"attachments"`
	Log         Log         `yaml:"log"`
	Bridge      Bridge      `yaml:"bridge"`
}

// Attachments are the values attached to reports produced while the bridge runs.
type Attachments struct {
	Text   string `yaml:"text"`
	Binary bool   `yaml:"binary"`
}

// Bridge configures the wazero bridge and waiting behavior.
type Bridge struct {
	// AwaitTimeout bounds waits in Go duration syntax ("5s").
	// Empty or "0" waits without a deadline.
	AwaitTimeout     string `yaml:"await_timeout"`
	ModuleName       string `yaml:"module_name"`
	MemoryLimitPages uint32 `yaml:"memory_limit_pages"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Bridge: Bridge{
			ModuleName: engine.DefaultModuleName,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read "+path)
	}

	if err := s.merge(data); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse "+path)
	}
	return s, nil
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (*Settings, error) {
	s := Default()
	if err := s.merge(data); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse settings")
	}
	return s, nil
}

func (s *Settings) merge(data []byte) error {
	if err := yaml.Unmarshal(data, s); err != nil {
		return err
	}
	if s.Bridge.ModuleName == "" {
		s.Bridge.ModuleName = engine.DefaultModuleName
	}
	return nil
}

// Validate checks values that decoding cannot.
func (s *Settings) Validate() error {
	if _, err := s.AwaitTimeout(); err != nil {
		return err
	}
	if _, err := s.Level(); err != nil {
		return err
	}
	return nil
}

// AwaitTimeout parses Bridge.AwaitTimeout. Zero means no deadline.
func (s *Settings) AwaitTimeout() (time.Duration, error) {
	if s.Bridge.AwaitTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Bridge.AwaitTimeout)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "bridge.await_timeout")
	}
	if d < 0 {
		return 0, errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("bridge.await_timeout must not be negative, got %s", d))
	}
	return d, nil
}

// Level parses Log.Level.
func (s *Settings) Level() (zapcore.Level, error) {
	if s.Log.Level == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(s.Log.Level)
	if err != nil {
		return zapcore.InfoLevel, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log.level")
	}
	return lvl, nil
}

// NewLogger builds a zap logger from the Log section.
func (s *Settings) NewLogger() (*zap.Logger, error) {
	lvl, err := s.Level()
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	if s.Log.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// EngineOptions maps the Bridge section onto engine options.
func (s *Settings) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithModuleName(s.Bridge.ModuleName),
		engine.WithMemoryLimitPages(s.Bridge.MemoryLimitPages),
	}
}

// Marshal renders the settings as YAML.
func (s *Settings) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
