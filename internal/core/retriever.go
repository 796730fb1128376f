// ABOUTME: Context retriever that turns one semantic search into a grounding blob
// ABOUTME: Joins the content of at most the first three results with a fixed separator
package core

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/harper/searchqa/internal/models"
)

const (
	// MaxContextDocuments caps how many results are examined, with or without content
	MaxContextDocuments = 3
	// DocumentSeparator sits between successive documents in the context blob
	DocumentSeparator = " \n --- next document ---- \n"
)

// Searcher runs a single semantic query
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// Retriever fetches search results and composes them into a RetrievedContext
type Retriever struct {
	searcher Searcher
	trace    io.Writer
}

// NewRetriever creates a Retriever. Progress lines go to trace; nil discards them.
func NewRetriever(searcher Searcher, trace io.Writer) *Retriever {
	if trace == nil {
		trace = io.Discard
	}
	return &Retriever{searcher: searcher, trace: trace}
}

// Retrieve searches for query and composes the context from the leading results
func (r *Retriever) Retrieve(ctx context.Context, query string) (models.RetrievedContext, error) {
	fmt.Fprintf(r.trace, "Calling Azure Search for query: %s\n", query)

	results, err := r.searcher.Search(ctx, query)
	if err != nil {
		return models.RetrievedContext{}, fmt.Errorf("searching for context: %w", err)
	}

	retrieved := ComposeContext(results)
	for i, res := range retrieved.Results {
		fmt.Fprintf(r.trace, "Index: %d, Result: %s\n", i, res)
	}

	return retrieved, nil
}

// ComposeContext joins the content of results[0..2] with DocumentSeparator.
// Results without content are skipped but still count toward the cap.
// Found is false when none of the examined results had content.
func ComposeContext(results []models.SearchResult) models.RetrievedContext {
	examined := results
	if len(examined) > MaxContextDocuments {
		examined = examined[:MaxContextDocuments]
	}

	var parts []string
	for _, res := range examined {
		if content, ok := res.Content(); ok {
			parts = append(parts, content)
		}
	}

	if len(parts) == 0 {
		return models.RetrievedContext{Results: examined}
	}

	return models.RetrievedContext{
		Text:    strings.Join(parts, DocumentSeparator),
		Found:   true,
		Results: examined,
	}
}
