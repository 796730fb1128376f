// ABOUTME: Chat-completion client for Azure-hosted models via the OpenAI wire format
// ABOUTME: Sends role-tagged messages with a token ceiling and returns the raw response
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	openai "github.com/sashabaranov/go-openai"

	"github.com/harper/searchqa/internal/azauth"
	"github.com/harper/searchqa/internal/models"
)

// ClientConfig holds configuration for the chat client
type ClientConfig struct {
	Endpoint   string
	APIVersion string

	// Credential is used when set; otherwise APIKey is sent in the api-key header
	Credential azcore.TokenCredential
	APIKey     string

	// Base overrides the underlying transport (tests)
	Base http.RoundTripper
}

// ChatClient wraps the go-openai client pointed at an inference endpoint
type ChatClient struct {
	client *openai.Client
}

// NewChatClient creates a chat client for the given endpoint
func NewChatClient(cfg ClientConfig) (*ChatClient, error) {
	if cfg.Credential == nil && cfg.APIKey == "" {
		return nil, errors.New("chat client: a credential or API key is required")
	}

	oaiConfig := openai.DefaultConfig("")
	oaiConfig.BaseURL = strings.TrimRight(cfg.Endpoint, "/")
	oaiConfig.HTTPClient = &http.Client{
		Transport: &azauth.Transport{
			Base:       cfg.Base,
			APIVersion: cfg.APIVersion,
			Credential: cfg.Credential,
			Scopes:     []string{azauth.CognitiveScope},
			APIKey:     cfg.APIKey,
		},
	}

	return &ChatClient{client: openai.NewClientWithConfig(oaiConfig)}, nil
}

// GetClient returns the underlying OpenAI client for direct use
func (c *ChatClient) GetClient() *openai.Client {
	return c.client
}

// Complete sends one chat completion request. No local retries are attempted.
func (c *ChatClient) Complete(ctx context.Context, model string, messages []models.ChatMessage, maxTokens int) (openai.ChatCompletionResponse, error) {
	req := openai.ChatCompletionRequest{
		Model:     model,
		Messages:  toOpenAIMessages(messages),
		MaxTokens: maxTokens,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return openai.ChatCompletionResponse{}, fmt.Errorf("chat completion with %s: %w", model, err)
	}
	return resp, nil
}

func toOpenAIMessages(messages []models.ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == models.RoleSystem {
			role = openai.ChatMessageRoleSystem
		}
		out[i] = openai.ChatCompletionMessage{Role: role, Content: m.Content}
	}
	return out
}
