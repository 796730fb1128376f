// ABOUTME: CLI commands to browse saved question transcripts
// ABOUTME: Lists recent transcripts and shows one in full
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/searchqa/internal/models"
)

var (
	historyLimit int
)

// NewHistoryCmd creates the history command group
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved transcripts",
		Long: `Browse transcripts saved with 'searchqa ask --save'.

Transcripts are stored in Charm KV and sync across linked devices.`,
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryShowCmd())

	return cmd
}

func newHistoryListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved transcripts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validatePositiveInt(historyLimit, "limit"); err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, client, err := openHistory(cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			transcripts, err := store.List(historyLimit)
			if err != nil {
				return err
			}

			return renderTranscriptList(cmd, transcripts)
		},
	}

	cmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum transcripts to list")

	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one transcript in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, client, err := openHistory(cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			transcript, err := store.Get(args[0])
			if err != nil {
				return err
			}

			return renderTranscript(cmd, transcript)
		},
	}
}

func renderTranscriptList(cmd *cobra.Command, transcripts []models.Transcript) error {
	out := cmd.OutOrStdout()

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(transcripts, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", jsonData)
		return nil
	}

	if len(transcripts) == 0 {
		if !quiet {
			fmt.Fprintln(out, "No saved transcripts")
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tWHEN\tMODEL\tQUESTION\n")
	fmt.Fprintf(w, "--\t----\t-----\t--------\n")
	for _, t := range transcripts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			t.ID,
			formatTime(t.CreatedAt),
			truncate(t.Model, 16),
			truncate(t.Query, 50))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(out, "\nTotal: %d transcript(s)\n", len(transcripts))
	}
	return nil
}

func renderTranscript(cmd *cobra.Command, t *models.Transcript) error {
	out := cmd.OutOrStdout()

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", jsonData)
		return nil
	}

	heading := color.New(color.FgGreen, color.Bold).SprintFunc()
	contextText := t.Context
	if !t.ContextFound {
		contextText = "(no context found)"
	}

	fmt.Fprintf(out, "%s %s\n", heading("ID:"), t.ID)
	fmt.Fprintf(out, "%s %s\n", heading("Asked:"), t.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "%s %s\n\n", heading("Model:"), t.Model)
	fmt.Fprintf(out, "%s\n%s\n\n", heading("Question:"), t.Query)
	fmt.Fprintf(out, "%s\n%s\n\n", heading("Context:"), contextText)
	fmt.Fprintf(out, "%s\n%s\n", heading("Answer:"), t.Answer)
	return nil
}
