// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Config loading, client wiring, history access, and display formatting
package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/harper/searchqa/internal/azauth"
	"github.com/harper/searchqa/internal/charm"
	"github.com/harper/searchqa/internal/config"
	"github.com/harper/searchqa/internal/core"
	"github.com/harper/searchqa/internal/history"
	"github.com/harper/searchqa/internal/llm"
	"github.com/harper/searchqa/internal/search"
)

// loadConfig reads .env (if present) then the process environment
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded", "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newAnswerer builds the search and chat clients for one run.
// Retrieval progress is written to trace; nil discards it.
func newAnswerer(cfg *config.Config, useGrok bool, trace io.Writer) (*core.Answerer, error) {
	searchOpts := search.Options{
		Endpoint:       cfg.SearchURL,
		IndexName:      cfg.IndexName,
		SemanticConfig: cfg.SemanticConfig,
		APIVersion:     cfg.SearchAPIVersion,
	}
	chatCfg := llm.ClientConfig{
		Endpoint:   cfg.Endpoint,
		APIVersion: cfg.InferenceAPIVersion,
	}

	if cfg.UseKeys() {
		searchOpts.APIKey = cfg.SearchKey
		chatCfg.APIKey = cfg.APIKey
	} else {
		cred, err := azauth.NewDefaultCredential()
		if err != nil {
			return nil, err
		}
		searchOpts.Credential = cred
		chatCfg.Credential = cred
	}

	searchClient, err := search.NewClient(searchOpts)
	if err != nil {
		return nil, fmt.Errorf("initializing search client: %w", err)
	}

	chatClient, err := llm.NewChatClient(chatCfg)
	if err != nil {
		return nil, fmt.Errorf("initializing chat client: %w", err)
	}

	model := cfg.ChatModel(useGrok)
	log.Debug("pipeline ready", "model", model, "index", cfg.IndexName, "auth", cfg.AuthMode)

	return core.NewAnswerer(core.NewRetriever(searchClient, trace), chatClient, model), nil
}

// openCharm opens the charm KV named in cfg
func openCharm(cfg *config.Config) (*charm.Client, error) {
	client, err := charm.NewClient(&charm.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.AutoSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Charm: %w", err)
	}
	return client, nil
}

// openHistory returns a transcript store; callers must Close the returned client
func openHistory(cfg *config.Config) (*history.Store, *charm.Client, error) {
	client, err := openCharm(cfg)
	if err != nil {
		return nil, nil, err
	}
	return history.NewStore(client), client, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
