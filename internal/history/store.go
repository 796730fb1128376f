// ABOUTME: Transcript store persisting answered questions as JSON in a KV backend
// ABOUTME: The charm client satisfies KV; tests use an in-memory map
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/harper/searchqa/internal/charm"
	"github.com/harper/searchqa/internal/models"
)

// ErrNotFound is returned when a transcript ID has no stored value
var ErrNotFound = errors.New("transcript not found")

// KV is the subset of the charm client the store needs
type KV interface {
	Set(key string, value []byte) error
	Get(key string) ([]byte, error)
	ListKeys(prefix string) ([]string, error)
}

// Store reads and writes transcripts
type Store struct {
	kv KV
}

// NewStore creates a Store over kv
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Save writes t under its ID, replacing any previous value
func (s *Store) Save(t *models.Transcript) error {
	if t == nil || t.ID == "" {
		return errors.New("transcript ID is required")
	}

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshaling transcript: %w", err)
	}

	if err := s.kv.Set(charm.TranscriptKey(t.ID), data); err != nil {
		return fmt.Errorf("saving transcript %s: %w", t.ID, err)
	}
	return nil
}

// Get loads one transcript by ID
func (s *Store) Get(id string) (*models.Transcript, error) {
	data, err := s.kv.Get(charm.TranscriptKey(id))
	if err != nil {
		return nil, fmt.Errorf("loading transcript %s: %w", id, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var t models.Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decoding transcript %s: %w", id, err)
	}
	return &t, nil
}

// List returns up to limit transcripts, newest first. limit <= 0 returns all.
// Entries that fail to decode are skipped.
func (s *Store) List(limit int) ([]models.Transcript, error) {
	keys, err := s.kv.ListKeys(charm.TranscriptPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing transcripts: %w", err)
	}

	transcripts := make([]models.Transcript, 0, len(keys))
	for _, key := range keys {
		data, err := s.kv.Get(key)
		if err != nil || data == nil {
			continue
		}
		var t models.Transcript
		if err := json.Unmarshal(data, &t); err != nil {
			continue
		}
		if t.ID == "" {
			t.ID = strings.TrimPrefix(key, charm.TranscriptPrefix)
		}
		transcripts = append(transcripts, t)
	}

	sort.Slice(transcripts, func(i, j int) bool {
		return transcripts[i].CreatedAt.After(transcripts[j].CreatedAt)
	})

	if limit > 0 && len(transcripts) > limit {
		transcripts = transcripts[:limit]
	}
	return transcripts, nil
}
