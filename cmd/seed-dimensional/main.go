package main

import (
	"fmt"
	"os"

	"github.com/benvon/taskplanet-seed/internal/commands"
	"github.com/benvon/taskplanet-seed/internal/fixtures"
)

func main() {
	rootCmd := commands.NewSeedCmd(
		"seed-dimensional",
		"Upsert the demo tag dimensions, then create tasks with weighted tags",
		fixtures.Dimensional,
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
