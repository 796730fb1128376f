// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Lets LLM agents ask grounded questions via stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/harper/searchqa/internal/charm"
	"github.com/harper/searchqa/internal/history"
	"github.com/harper/searchqa/internal/mcp"
)

var (
	mcpGrok    bool
	mcpHistory bool
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs searchqa as an MCP (Model Context Protocol) server, letting LLM
agents ask questions grounded on the search index via stdio.

Tools: ask_question, search_context, and list_history (with --history).`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by an MCP client)
  searchqa mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "searchqa": {
  #       "command": "searchqa",
  #       "args": ["mcp", "--history"]
  #     }
  #   }
  # }`,
	}

	cmd.Flags().BoolVar(&mcpGrok, "grok", false, "Use the Grok model instead of DeepSeek")
	cmd.Flags().BoolVar(&mcpHistory, "history", false, "Enable transcript history tools (requires Charm)")

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// stdout carries the protocol, so all diagnostics go to stderr
	log.SetOutput(os.Stderr)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	answerer, err := newAnswerer(cfg, mcpGrok, nil)
	if err != nil {
		return err
	}

	var store *history.Store
	var charmClient *charm.Client
	if mcpHistory {
		store, charmClient, err = openHistory(cfg)
		if err != nil {
			return err
		}
		defer charmClient.Close()
	}

	server := mcpserver.NewMCPServer(
		"searchqa",
		versionInfo.Version,
	)

	mcp.RegisterTools(server, answerer, store)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("MCP server starting on stdio", "model", answerer.Model())

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
