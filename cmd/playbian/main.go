package main

import (
	"fmt"
	"os"

	"github.com/codecravings/playbian-auto-typer/internal/cli"
)

func main() {
	// Cobra handles parsing flags and executing the appropriate command.
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
