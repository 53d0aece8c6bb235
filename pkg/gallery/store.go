package gallery

import (
	"context"
	"fmt"
	"sync"

	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// Source fetches one collection from the backend
type Source interface {
	Collection(ctx context.Context, kind models.CollectionKind) ([]models.ImageRecord, error)
}

// Store holds the most recently fetched copy of one collection. A load
// replaces the whole sequence at once; records are never merged.
type Store struct {
	kind   models.CollectionKind
	source Source

	mu      sync.RWMutex
	records []models.ImageRecord
	loaded  bool
}

// NewStore creates an empty store for kind
func NewStore(kind models.CollectionKind, source Source) *Store {
	return &Store{
		kind:   kind,
		source: source,
	}
}

// Kind returns the collection this store holds
func (s *Store) Kind() models.CollectionKind {
	return s.kind
}

// Load fetches the collection and swaps it in. On failure the previous
// contents stay visible and the error is returned as-is.
func (s *Store) Load(ctx context.Context) error {
	if s.source == nil {
		return fmt.Errorf("no source configured for %s", s.kind)
	}

	records, err := s.source.Collection(ctx, s.kind)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", s.kind, err)
	}

	s.Replace(records)
	return nil
}

// Replace swaps in records as the new contents
func (s *Store) Replace(records []models.ImageRecord) {
	if records == nil {
		records = []models.ImageRecord{}
	}

	s.mu.Lock()
	s.records = records
	s.loaded = true
	s.mu.Unlock()
}

// Records returns the current sequence. Callers must not modify it.
func (s *Store) Records() []models.ImageRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Len returns the number of cached records
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Loaded reports whether a load has ever succeeded
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
