// ABOUTME: MCP tool handler implementations for the grounded QnA server
// ABOUTME: Tool failures are reported as tool errors, never as protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harper/searchqa/internal/core"
	"github.com/harper/searchqa/internal/history"
	"github.com/harper/searchqa/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	answerer *core.Answerer
	store    *history.Store
}

// NewHandlers creates handlers; store may be nil
func NewHandlers(answerer *core.Answerer, store *history.Store) *Handlers {
	return &Handlers{answerer: answerer, store: store}
}

// AskQuestion handles the ask_question tool
func (h *Handlers) AskQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	answer, err := h.answerer.Ask(ctx, question)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("answering failed: %v", err)), nil
	}

	if request.GetBool("save", false) {
		if err := h.saveTranscript(answer); err != nil {
			log.Warn("transcript not saved", "err", err)
		}
	}

	return mcp.NewToolResultText(answer.Text()), nil
}

// SearchContext handles the search_context tool
func (h *Handlers) SearchContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	retrieved, err := h.answerer.Retriever().Retrieve(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if !retrieved.Found {
		return mcp.NewToolResultText(fmt.Sprintf("No content found for query: %s", query)), nil
	}
	return mcp.NewToolResultText(retrieved.Text), nil
}

// ListHistory handles the list_history tool
func (h *Handlers) ListHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.store == nil {
		return mcp.NewToolResultError("history is not available"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be positive, got %d", limit)), nil
	}

	transcripts, err := h.store.List(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing history failed: %v", err)), nil
	}

	data, err := json.MarshalIndent(transcripts, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding history failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (h *Handlers) saveTranscript(answer *core.Answer) error {
	if h.store == nil {
		return fmt.Errorf("history is not available")
	}
	t, err := models.NewTranscript(answer.Query, answer.Context, answer.Model, answer.Text())
	if err != nil {
		return err
	}
	return h.store.Save(t)
}
