// ABOUTME: Transcript records one answered question for later review
// ABOUTME: Persisted by the history store when a run asks to save it
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transcript is a saved question, its grounding context, and the model's reply
type Transcript struct {
	ID           string    `json:"id"`
	Query        string    `json:"query"`
	Context      string    `json:"context"`
	ContextFound bool      `json:"context_found"`
	Model        string    `json:"model"`
	Answer       string    `json:"answer"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewTranscript creates a Transcript with a fresh ID and timestamp
func NewTranscript(query string, retrieved RetrievedContext, model, answer string) (*Transcript, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query cannot be empty")
	}
	return &Transcript{
		ID:           generateTranscriptID(),
		Query:        query,
		Context:      retrieved.Text,
		ContextFound: retrieved.Found,
		Model:        model,
		Answer:       answer,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func generateTranscriptID() string {
	return fmt.Sprintf("qa_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}
