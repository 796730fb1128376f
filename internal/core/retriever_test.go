// ABOUTME: Tests for context composition and the retriever
// ABOUTME: Verifies separator placement, the three-result cap, skipped content, and absence

package core

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/harper/searchqa/internal/models"
)

// mockSearcher implements Searcher for testing
type mockSearcher struct {
	results []models.SearchResult
	err     error
	queries []string
}

func (m *mockSearcher) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func docs(contents ...any) []models.SearchResult {
	out := make([]models.SearchResult, len(contents))
	for i, c := range contents {
		fields := map[string]any{"id": i}
		if c != nil {
			fields["content"] = c
		}
		out[i] = models.SearchResult{Fields: fields}
	}
	return out
}

func TestComposeContext(t *testing.T) {
	sep := DocumentSeparator

	tests := []struct {
		name      string
		results   []models.SearchResult
		want      string
		wantFound bool
		wantSeen  int
	}{
		{
			name:      "three results joined in order",
			results:   docs("A", "B", "C"),
			want:      "A" + sep + "B" + sep + "C",
			wantFound: true,
			wantSeen:  3,
		},
		{
			name:      "single result has no separator",
			results:   docs("A"),
			want:      "A",
			wantFound: true,
			wantSeen:  1,
		},
		{
			name:      "two results",
			results:   docs("A", "B"),
			want:      "A" + sep + "B",
			wantFound: true,
			wantSeen:  2,
		},
		{
			name:      "only first three contribute",
			results:   docs("A", "B", "C", "D", "E"),
			want:      "A" + sep + "B" + sep + "C",
			wantFound: true,
			wantSeen:  3,
		},
		{
			name:      "missing content skipped but counted",
			results:   docs("A", nil, "C", "D"),
			want:      "A" + sep + "C",
			wantFound: true,
			wantSeen:  3,
		},
		{
			name:      "empty content skipped",
			results:   docs("", "B", "C"),
			want:      "B" + sep + "C",
			wantFound: true,
			wantSeen:  3,
		},
		{
			name:      "first three lack content",
			results:   docs(nil, nil, nil, "D"),
			want:      "",
			wantFound: false,
			wantSeen:  3,
		},
		{
			name:      "empty result sequence",
			results:   nil,
			want:      "",
			wantFound: false,
			wantSeen:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeContext(tt.results)

			if got.Text != tt.want {
				t.Errorf("Text = %q, want %q", got.Text, tt.want)
			}
			if got.Found != tt.wantFound {
				t.Errorf("Found = %v, want %v", got.Found, tt.wantFound)
			}
			if len(got.Results) != tt.wantSeen {
				t.Errorf("len(Results) = %d, want %d", len(got.Results), tt.wantSeen)
			}
		})
	}
}

func TestComposeContext_ExactSeparator(t *testing.T) {
	got := ComposeContext(docs("A", "B", "C"))
	want := "A \n --- next document ---- \nB \n --- next document ---- \nC"

	if got.Text != want {
		t.Errorf("Text = %q, want %q", got.Text, want)
	}
}

func TestRetriever_Retrieve(t *testing.T) {
	searcher := &mockSearcher{results: docs("A", "B", "C", "D")}
	var trace bytes.Buffer
	r := NewRetriever(searcher, &trace)

	got, err := r.Retrieve(context.Background(), "test")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	if len(searcher.queries) != 1 || searcher.queries[0] != "test" {
		t.Errorf("queries = %v, want [test]", searcher.queries)
	}
	if got.Text != "A"+DocumentSeparator+"B"+DocumentSeparator+"C" {
		t.Errorf("Text = %q", got.Text)
	}

	out := trace.String()
	if !strings.Contains(out, "Calling Azure Search for query: test") {
		t.Errorf("trace missing query line: %s", out)
	}
	for _, line := range []string{"Index: 0, Result:", "Index: 1, Result:", "Index: 2, Result:"} {
		if !strings.Contains(out, line) {
			t.Errorf("trace missing %q", line)
		}
	}
	if strings.Contains(out, "Index: 3") {
		t.Error("trace should stop after index 2")
	}
}

func TestRetriever_NilTraceDiscards(t *testing.T) {
	r := NewRetriever(&mockSearcher{results: docs("A")}, nil)

	got, err := r.Retrieve(context.Background(), "q")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if got.Text != "A" {
		t.Errorf("Text = %q, want A", got.Text)
	}
}

func TestRetriever_PropagatesError(t *testing.T) {
	searchErr := errors.New("403 forbidden")
	r := NewRetriever(&mockSearcher{err: searchErr}, nil)

	_, err := r.Retrieve(context.Background(), "q")
	if !errors.Is(err, searchErr) {
		t.Errorf("error = %v, want wrapped %v", err, searchErr)
	}
}
