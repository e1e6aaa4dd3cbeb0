package cli

import (
	"github.com/spf13/cobra"
)

var (
	// cfgFile holds the path to the settings file, bound to the persistent flag
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "playbian",
	Short: "Playbian is a desktop automation tool",
	Long: `Playbian plays back sequences of input-simulation actions
(typing, clicking, delays, hotkeys, scrolling, dragging) against the
operating system, optionally looping.

Sequences are JSON files; run 'playbian init my-sequence.json' to create
a starter file.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Settings are optional; missing file means built-in defaults.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "playbian.yaml", "Path to the settings file")
}

// getConfigPath returns the settings file path parsed by cobra.
func getConfigPath() string {
	return cfgFile
}
