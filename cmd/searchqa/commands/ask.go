// ABOUTME: CLI command to answer a question grounded on the search index
// ABOUTME: Prints the raw completion response, or only the reply with --format text
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harper/searchqa/internal/core"
	"github.com/harper/searchqa/internal/models"
)

var (
	askGrok bool
	askSave bool
)

// NewAskCmd creates ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a question using retrieved context",
		Long: `Answer a question using semantic search results as context.

Runs one semantic query against the configured index, joins the content
of the first three results, and sends it with the question to the chat
model (DeepSeek by default) with a 1000 token ceiling.

Without an argument the default Contoso Gaming question is asked.

Examples:
  searchqa ask
  searchqa ask "Why does my game stutter?"
  searchqa ask --grok "How do I verify game files?"
  searchqa ask --save --format text "What should I do if the game crashes?"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().BoolVar(&askGrok, "grok", false, "Use the Grok model instead of DeepSeek")
	cmd.Flags().BoolVar(&askSave, "save", false, "Save the transcript to history")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := core.DefaultQuestion
	if len(args) == 1 {
		question = args[0]
	}
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("question cannot be empty")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	answerer, err := newAnswerer(cfg, askGrok, traceWriter(cmd))
	if err != nil {
		return err
	}

	answer, err := answerer.Ask(cmd.Context(), question)
	if err != nil {
		return err
	}

	if err := renderAnswer(cmd.OutOrStdout(), answer, outputFormat); err != nil {
		return err
	}

	if askSave {
		store, client, err := openHistory(cfg)
		if err != nil {
			return err
		}
		defer client.Close()

		transcript, err := models.NewTranscript(answer.Query, answer.Context, answer.Model, answer.Text())
		if err != nil {
			return err
		}
		if err := store.Save(transcript); err != nil {
			return err
		}
		log.Info("transcript saved", "id", transcript.ID)
	}

	return nil
}

// traceWriter picks where retrieval progress goes so it never mixes into JSON output
func traceWriter(cmd *cobra.Command) io.Writer {
	switch {
	case quiet:
		return nil
	case outputFormat == "json":
		return cmd.ErrOrStderr()
	default:
		return cmd.OutOrStdout()
	}
}

// renderAnswer writes the raw response as JSON, or just the reply text for "text"
func renderAnswer(w io.Writer, answer *core.Answer, format string) error {
	if format == "text" {
		fmt.Fprintln(w, answer.Text())
		return nil
	}

	jsonData, err := json.MarshalIndent(answer.Response, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintf(w, "%s\n", jsonData)
	return nil
}
