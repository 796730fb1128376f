// ABOUTME: Root CLI command and global flags
// ABOUTME: Wires subcommands and configures logging from --verbose/--quiet
package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
 ░█▀▀░█▀▀░█▀█░█▀▄░█▀▀░█░█░█▀█░█▀█
 ░▀▀█░█▀▀░█▀█░█▀▄░█░░░█▀█░█░█░█▀█
 ░▀▀▀░▀▀▀░▀░▀░▀░▀░▀▀▀░▀░▀░▀▀█░▀░▀
`

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "searchqa",
		Short: "Answer questions grounded on an Azure AI Search index",
		Long: banner + `
searchqa runs a semantic search against an Azure AI Search index, joins
the top three results into a context block, and asks a hosted chat model
to answer the question using only that context.

Configuration is read from the environment (and a local .env file):
endpoint, api_key, grok_model, deep_seek_model, ai_search_url,
ai_index_name, ai_semantic_config, ai_search_key, auth_mode.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(outputFormat); err != nil {
				return err
			}
			configureLogging(cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print results and errors")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, json, or text")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func configureLogging(w io.Writer) {
	log.SetOutput(w)
	switch {
	case verbose:
		log.SetLevel(log.DebugLevel)
	case quiet:
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

func validateFormat(format string) error {
	switch format {
	case "auto", "json", "text":
		return nil
	}
	return fmt.Errorf("format must be auto, json, or text, got %q", format)
}
