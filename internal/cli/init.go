package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codecravings/playbian-auto-typer/internal/store"
	"github.com/codecravings/playbian-auto-typer/pkg/models"
)

var initCmd = &cobra.Command{
	Use:   "init <sequence.json>",
	Short: "Create a starter sequence file",
	Long:  `Writes an example sequence demonstrating the available action types.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("refusing to overwrite existing file '%s'", path)
		}

		seq := models.NewSequence("Example Sequence")
		seq.Description = "Edit this file or use it as a reference for the action format."
		seq.AddAction(models.NewDelayAction(0.5))
		seq.AddAction(models.NewClickAction(100, 200, "left"))
		seq.AddAction(models.NewTypeAction("Hello from Playbian!<enter>"))
		seq.AddAction(models.NewHotkeyAction("control", "s"))

		if err := store.Save(path, seq); err != nil {
			return err
		}
		fmt.Printf("Wrote starter sequence to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
