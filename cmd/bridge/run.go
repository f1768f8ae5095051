package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/async-bridge/engine"
	"github.com/wippyai/async-bridge/task"
)

var errGuestReturned = stderrors.New("guest returned without completing the handle")

var (
	runWasm        string
	runFunc        string
	runTimeout     string
	runValue       int64
	runInteractive bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Invoke a guest export with a fresh handle and wait for its completion",
	Long: `Invoke a guest export as func(handle i32, value i64) and wait until the
guest completes the handle through async-bridge.complete.

The wait is unbounded unless --timeout or bridge.await_timeout is set. It also
ends if the export returns without completing the handle.`,
	Args: cobra.NoArgs,
	RunE: runGuest,
}

func init() {
	runCmd.Flags().StringVar(&runWasm, "wasm", "", "path to guest module")
	runCmd.Flags().StringVar(&runFunc, "func", "run", "guest export to invoke")
	runCmd.Flags().Int64Var(&runValue, "value", 0, "value passed to the export")
	runCmd.Flags().StringVar(&runTimeout, "timeout", "", "bound the wait (overrides bridge.await_timeout)")
	runCmd.Flags().BoolVarP(&runInteractive, "interactive", "i", false, "show progress while waiting (terminal only)")
	_ = runCmd.MarkFlagRequired("wasm")

	rootCmd.AddCommand(runCmd)
}

type guestResult struct {
	err error
	out []uint64
}

func runGuest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if runTimeout != "" {
		settings.Bridge.AwaitTimeout = runTimeout
	}
	timeout, err := settings.AwaitTimeout()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(runWasm)
	if err != nil {
		return fmt.Errorf("read guest: %w", err)
	}

	b, err := engine.New(ctx, append(settings.EngineOptions(), engine.WithLogger(logger))...)
	if err != nil {
		return err
	}
	defer b.Close(ctx)

	mod, err := b.Load(ctx, filepath.Base(runWasm), data)
	if err != nil {
		return err
	}

	handle, t, err := b.Issue(task.WithID(runFunc))
	if err != nil {
		return err
	}
	logger.Debug("handle issued", zap.Uint32("handle", handle), zap.String("func", runFunc))

	waitCtx, stop := context.WithCancelCause(ctx)
	defer stop(nil)
	if timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(waitCtx, timeout)
		defer cancel()
	}

	// The guest runs under waitCtx so an expired wait also stops it.
	results := make(chan guestResult, 1)
	go func() {
		out, err := b.Invoke(waitCtx, mod, runFunc, uint64(handle), uint64(runValue))
		results <- guestResult{out: out, err: err}
		if !t.IsCompleted() {
			if err == nil {
				err = errGuestReturned
			}
			stop(err)
		}
	}()

	var v int64
	if runInteractive && term.IsTerminal(int(os.Stdout.Fd())) {
		v, err = awaitInteractive(waitCtx, t, fmt.Sprintf("%s(%d, %d)", runFunc, handle, runValue))
	} else {
		v, err = t.AwaitContext(waitCtx)
	}
	if err != nil {
		if cause := context.Cause(waitCtx); cause != nil && !stderrors.Is(err, cause) {
			return fmt.Errorf("await handle %d: %w: %v", handle, err, cause)
		}
		return fmt.Errorf("await handle %d: %w", handle, err)
	}
	b.Release(handle)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "handle %d completed with %d\n", handle, v)

	res := <-results
	if res.err != nil {
		return res.err
	}
	if len(res.out) > 0 {
		fmt.Fprintf(out, "%s returned %d\n", runFunc, res.out[0])
	}
	return nil
}
