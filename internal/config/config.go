// ABOUTME: Centralized configuration for the search-grounded QnA CLI
// ABOUTME: Loads from environment variables with defaults and light validation
package config

import (
	"fmt"
	"os"
)

// Auth modes accepted by AUTH_MODE
const (
	AuthModeEntra = "entra"
	AuthModeKey   = "key"
)

// Config holds all configuration for a single run
type Config struct {
	// Chat completion settings
	Endpoint            string
	APIKey              string
	GrokModel           string
	DeepSeekModel       string
	InferenceAPIVersion string

	// Azure AI Search settings
	SearchURL        string
	IndexName        string
	SemanticConfig   string
	SearchKey        string
	SearchAPIVersion string

	// AuthMode selects Entra ID tokens or static keys for both services
	AuthMode string

	// Charm settings
	CharmHost   string
	CharmDBName string
	AutoSync    bool
}

// Load reads configuration from environment variables.
// Endpoint and key values are not required here; a missing value fails at the remote call.
func Load() (*Config, error) {
	cfg := &Config{
		Endpoint:            os.Getenv("endpoint"),
		APIKey:              os.Getenv("api_key"),
		GrokModel:           getEnv("grok_model", "grok-3-mini"),
		DeepSeekModel:       getEnv("deep_seek_model", "DeepSeek-R1"),
		InferenceAPIVersion: getEnv("inference_api_version", "2024-05-01-preview"),
		SearchURL:           os.Getenv("ai_search_url"),
		IndexName:           os.Getenv("ai_index_name"),
		SemanticConfig:      getEnv("ai_semantic_config", "default"),
		SearchKey:           os.Getenv("ai_search_key"),
		SearchAPIVersion:    getEnv("ai_search_api_version", "2024-07-01"),
		AuthMode:            getEnv("auth_mode", AuthModeEntra),
		CharmHost:           getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:         getEnv("CHARM_DB", "searchqa"),
		AutoSync:            getEnvBool("CHARM_AUTO_SYNC", true),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.AuthMode != AuthModeEntra && c.AuthMode != AuthModeKey {
		return fmt.Errorf("auth_mode must be %q or %q, got %q", AuthModeEntra, AuthModeKey, c.AuthMode)
	}
	return nil
}

// ChatModel returns the model to send completions to. DeepSeek is the default.
func (c *Config) ChatModel(useGrok bool) string {
	if useGrok {
		return c.GrokModel
	}
	return c.DeepSeekModel
}

// UseKeys reports whether static API keys authenticate both services
func (c *Config) UseKeys() bool {
	return c.AuthMode == AuthModeKey
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}
