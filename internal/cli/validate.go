package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codecravings/playbian-auto-typer/internal/store"
)

var validateCmd = &cobra.Command{
	Use:   "validate <sequence.json>",
	Short: "Check a sequence file without running it",
	Long:  `Loads a sequence file and reports every validation problem found.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seq, err := store.Load(args[0])
		if err != nil {
			return err
		}

		problems := seq.Validate()
		if len(problems) == 0 {
			fmt.Printf("%s: OK (%d actions)\n", args[0], len(seq.Actions))
			return nil
		}

		fmt.Fprintf(os.Stderr, "%s: %d problem(s) found:\n", args[0], len(problems))
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", p)
		}
		os.Exit(1)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
