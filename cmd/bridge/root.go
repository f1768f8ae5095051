package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/async-bridge/config"
	"github.com/wippyai/async-bridge/engine"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Resolved in PersistentPreRunE, in order: defaults, file, flags.
	settings *config.Settings
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Await results completed by a WebAssembly guest",
	Long: `bridge - run WebAssembly guests that complete host-issued handles.

The host issues a handle, passes it to a guest export and waits. The guest
completes it by calling the imported function async-bridge.complete(handle, value).

Examples:
  # Run a guest export with a fresh handle and wait up to 5s
  bridge run --wasm guest.wasm --func run --value 42 --timeout 5s

  # Show three waiters released by one completion
  bridge demo --waiters 3

  # Print the effective settings
  bridge config show --config bridge.yaml`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initSettings,
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func initSettings(*cobra.Command, []string) error {
	s, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		s.Log.Level = "debug"
	}
	if err := s.Validate(); err != nil {
		return err
	}

	l, err := s.NewLogger()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	settings = s
	logger = l
	engine.SetLogger(l)
	return nil
}
