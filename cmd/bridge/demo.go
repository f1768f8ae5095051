package main

import (
	"fmt"
	"io"

	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/async-bridge/task"
)

var (
	demoWaiters int
	demoValue   int64
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Release several waiters with one completion",
	Long: `Start N goroutines waiting on one task, complete it once, then show that a
second completion is rejected and that a late callback still sees the value.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDemo(cmd.OutOrStdout(), demoWaiters, demoValue)
	},
}

func init() {
	demoCmd.Flags().IntVar(&demoWaiters, "waiters", 3, "number of waiting goroutines")
	demoCmd.Flags().Int64Var(&demoValue, "value", 42, "value to complete with")

	rootCmd.AddCommand(demoCmd)
}

func runDemo(out io.Writer, waiters int, value int64) error {
	if waiters < 1 {
		return fmt.Errorf("--waiters must be at least 1, got %d", waiters)
	}

	t := task.New[int64](task.WithID("demo"))
	t.OnComplete(func(v int64) {
		logger.Info("completion callback", zap.String("task", t.ID()), zap.Int64("value", v))
	})

	results := make([]int64, waiters)
	var wg conc.WaitGroup
	for i := range results {
		wg.Go(func() {
			results[i] = t.Await()
		})
	}

	if err := t.Complete(value); err != nil {
		return err
	}
	wg.Wait()

	for i, v := range results {
		fmt.Fprintf(out, "waiter %d: %d\n", i, v)
	}

	if err := t.Complete(value + 1); err != nil {
		fmt.Fprintf(out, "second completion rejected: %v\n", err)
	} else {
		return fmt.Errorf("second completion of task %s was accepted", t.ID())
	}

	t.OnComplete(func(v int64) {
		fmt.Fprintf(out, "late callback: %d\n", v)
	})
	return nil
}
