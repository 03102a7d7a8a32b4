package main

import (
	"fmt"
	"os"

	"github.com/benvon/taskplanet-seed/internal/commands"
	"github.com/benvon/taskplanet-seed/internal/fixtures"
)

func main() {
	rootCmd := commands.NewSeedCmd(
		"seed-flat",
		"Bulk-insert the demo tasks with their mood labels",
		fixtures.Flat,
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
