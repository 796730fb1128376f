// ABOUTME: Search hit and retrieved-context structures for the retriever
// ABOUTME: SearchResult wraps one Azure AI Search document, RetrievedContext is the composed blob
package models

import "encoding/json"

// ContentField is the index field whose text grounds the answer
const ContentField = "content"

// SearchResult is a single document returned by a semantic search
type SearchResult struct {
	Fields        map[string]any `json:"fields"`
	Score         float64        `json:"score"`
	RerankerScore float64        `json:"reranker_score,omitempty"`
}

// Content returns the content field and whether it held a non-empty string
func (r SearchResult) Content() (string, bool) {
	v, ok := r.Fields[ContentField]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// String renders the raw document fields as JSON
func (r SearchResult) String() string {
	data, err := json.Marshal(r.Fields)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// RetrievedContext is the context blob handed to the model.
// Found is false when no examined result contributed content.
type RetrievedContext struct {
	Text    string         `json:"text"`
	Found   bool           `json:"found"`
	Results []SearchResult `json:"results,omitempty"`
}
