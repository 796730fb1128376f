// ABOUTME: Answerer runs retrieval then one chat completion for a question
// ABOUTME: Returns the raw completion response alongside the context it was grounded on
package core

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/harper/searchqa/internal/models"
)

// Completer sends a chat completion request
type Completer interface {
	Complete(ctx context.Context, model string, messages []models.ChatMessage, maxTokens int) (openai.ChatCompletionResponse, error)
}

// Answer is the outcome of one question
type Answer struct {
	Query    string                       `json:"query"`
	Model    string                       `json:"model"`
	Context  models.RetrievedContext      `json:"context"`
	Response openai.ChatCompletionResponse `json:"response"`
}

// Text returns the first choice's reply, or "" when the service returned no choices
func (a *Answer) Text() string {
	if len(a.Response.Choices) == 0 {
		return ""
	}
	return a.Response.Choices[0].Message.Content
}

// Answerer wires a retriever to a chat model
type Answerer struct {
	retriever *Retriever
	completer Completer
	model     string
}

// NewAnswerer creates an Answerer that sends completions to model
func NewAnswerer(retriever *Retriever, completer Completer, model string) *Answerer {
	return &Answerer{
		retriever: retriever,
		completer: completer,
		model:     model,
	}
}

// Model returns the chat model questions are sent to
func (a *Answerer) Model() string {
	return a.model
}

// Retriever returns the retriever used for grounding
func (a *Answerer) Retriever() *Retriever {
	return a.retriever
}

// Ask retrieves context for query and sends exactly one completion request
func (a *Answerer) Ask(ctx context.Context, query string) (*Answer, error) {
	retrieved, err := a.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}

	resp, err := a.completer.Complete(ctx, a.model, BuildMessages(query, retrieved), MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	return &Answer{
		Query:    query,
		Model:    a.model,
		Context:  retrieved,
		Response: resp,
	}, nil
}
