// ABOUTME: Main entry point for the searchqa CLI
// ABOUTME: Sets up Cobra root command and executes CLI
package main

import (
	"fmt"
	"os"

	"github.com/harper/searchqa/cmd/searchqa/commands"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
