// ABOUTME: CLI command to preview the retrieved context for a query
// ABOUTME: Runs only the semantic search step, no model call
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewSearchCmd creates search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Show the context retrieved for a query",
		Long: `Show the context block a question would be grounded on.

Runs the semantic search step only and prints the content of the first
three results joined with the document separator.

Examples:
  searchqa search "game crashes on startup"
  searchqa search --format json "low frame rate"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	answerer, err := newAnswerer(cfg, false, traceWriter(cmd))
	if err != nil {
		return err
	}

	retrieved, err := answerer.Retriever().Retrieve(cmd.Context(), query)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(retrieved, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", jsonData)
		return nil
	}

	if !retrieved.Found {
		fmt.Fprintf(out, "No content found for query: %s\n", query)
		return nil
	}

	heading := color.New(color.FgCyan, color.Bold).SprintFunc()
	if !quiet {
		fmt.Fprintln(out, heading("Context:"))
	}
	fmt.Fprintln(out, retrieved.Text)
	return nil
}
