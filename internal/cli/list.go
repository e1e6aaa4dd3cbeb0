package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codecravings/playbian-auto-typer/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list <sequence.json>",
	Short: "List the actions in a sequence file",
	Long:  `Displays a summary of the sequence and each action it contains.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seq, err := store.Load(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Sequence: %s\n", seq.Name)
		if seq.Description != "" {
			fmt.Printf("Description: %s\n", seq.Description)
		}
		if seq.LoopEnabled {
			if seq.LoopCount <= 0 {
				fmt.Println("Loop: forever")
			} else {
				fmt.Printf("Loop: %d passes, %gs between passes\n", seq.LoopCount, seq.RepeatInterval)
			}
		}
		fmt.Printf("Stop on error: %v\n", seq.StopOnError)

		if len(seq.Actions) == 0 {
			fmt.Println("No actions.")
			return nil
		}
		fmt.Printf("Actions (%d):\n", len(seq.Actions))
		for i := range seq.Actions {
			a := &seq.Actions[i]
			state := ""
			if !a.Enabled {
				state = " (disabled)"
			}
			delay := ""
			if a.Delay > 0 {
				delay = fmt.Sprintf(" [pre-delay %gs]", a.Delay)
			}
			fmt.Printf("  [%d] %s%s%s\n", i+1, a.Describe(), delay, state)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
