package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/codecravings/playbian-auto-typer/internal/action"
	"github.com/codecravings/playbian-auto-typer/internal/config"
	"github.com/codecravings/playbian-auto-typer/internal/logger"
	"github.com/codecravings/playbian-auto-typer/internal/sequence"
	"github.com/codecravings/playbian-auto-typer/internal/store"
)

var (
	runLoops       int
	runContinue    bool
	runCountdown   int
	runShowActions bool
)

var runCmd = &cobra.Command{
	Use:   "run <sequence.json>",
	Short: "Play back a sequence",
	Long: `Loads a sequence file and plays it back against the OS input layer.
Press Ctrl+C to stop between actions; with fail-safe enabled, parking the
pointer in a screen corner aborts the current action.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings(getConfigPath())
		if err != nil {
			return err
		}
		if err := logger.Init(*settings, nil); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		seq, err := store.Load(args[0])
		if err != nil {
			return err
		}

		// Flag overrides for the sequence's own loop configuration.
		if cmd.Flags().Changed("loops") {
			seq.LoopEnabled = true
			seq.LoopCount = runLoops
		}
		if runContinue {
			seq.StopOnError = false
		}

		if runCountdown > 0 {
			fmt.Printf("Starting in %d seconds, switch to the target window...\n", runCountdown)
			countdown(runCountdown)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sim := action.NewRobotSimulator(*settings)
		runner := sequence.NewRunner(action.NewExecutor(sim), *settings)

		opts := sequence.Options{}
		if runShowActions {
			opts.Progress = printProgress
		}

		result, runErr := runner.Run(ctx, seq, opts)
		if result != nil {
			fmt.Printf("Completed %d pass(es), %d action result(s), %d failure(s)\n",
				result.Passes, len(result.Results), len(result.Failed()))
			for _, f := range result.Failed() {
				fmt.Fprintf(os.Stderr, "  pass %d action %d (%s): %v\n", f.Pass, f.Index+1, f.Variant, f.Err)
			}
		}
		if runErr != nil {
			return fmt.Errorf("run failed: %w", runErr)
		}
		return nil
	},
}

// printProgress is the progress hook for --show-actions.
func printProgress(p sequence.Progress) {
	if p.Action == nil {
		fmt.Printf("[pass %d/%s] waiting before next pass\n", p.Pass, passCountLabel(p.PassCount))
		return
	}
	fmt.Printf("[pass %d/%s] action %d/%d: %s\n",
		p.Pass, passCountLabel(p.PassCount), p.ActionIndex+1, p.ActionCount, p.Action.Describe())
}

func passCountLabel(count int) string {
	if count == 0 {
		return "∞"
	}
	return fmt.Sprintf("%d", count)
}

func countdown(seconds int) {
	for i := seconds; i > 0; i-- {
		fmt.Printf("%d... ", i)
		time.Sleep(time.Second)
	}
	fmt.Println()
}

func init() {
	runCmd.Flags().IntVar(&runLoops, "loops", 1, "Override the loop count (0 repeats forever)")
	runCmd.Flags().BoolVar(&runContinue, "continue-on-error", false, "Keep going when an action fails")
	runCmd.Flags().IntVar(&runCountdown, "countdown", 3, "Seconds to wait before starting (0 disables)")
	runCmd.Flags().BoolVar(&runShowActions, "show-actions", true, "Print each action as it plays")
	rootCmd.AddCommand(runCmd)
}
