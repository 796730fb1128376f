// ABOUTME: MCP tool definitions and registration for the grounded QnA server
// ABOUTME: Exposes ask_question, search_context, and list_history over stdio
package mcp

import (
	"github.com/harper/searchqa/internal/core"
	"github.com/harper/searchqa/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server.
// list_history is only registered when store is non-nil.
func RegisterTools(server *mcpserver.MCPServer, answerer *core.Answerer, store *history.Store) *Handlers {
	handlers := NewHandlers(answerer, store)

	// 1. ask_question - Answer a question grounded on the search index
	server.AddTool(mcp.Tool{
		Name:        "ask_question",
		Description: "Answer a question using the top semantic search results from the configured index as grounding context.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer",
				},
				"save": map[string]interface{}{
					"type":        "boolean",
					"description": "Save the transcript to history (default: false)",
					"default":     false,
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskQuestion)

	// 2. search_context - Retrieval only, no model call
	server.AddTool(mcp.Tool{
		Name:        "search_context",
		Description: "Run the semantic search for a query and return the composed context from the first three results.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchContext)

	// 3. list_history - Saved transcripts
	if store != nil {
		server.AddTool(mcp.Tool{
			Name:        "list_history",
			Description: "List saved question transcripts, newest first.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"limit": map[string]interface{}{
						"type":        "number",
						"description": "Maximum number of transcripts to return (default: 10)",
						"default":     10,
					},
				},
			},
		}, handlers.ListHistory)
	}

	return handlers
}
