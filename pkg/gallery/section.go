package gallery

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// Section wires one collection's store to a render target, the shared
// binder and its active filter
type Section struct {
	store  *Store
	target Target
	binder Binder

	mu     sync.Mutex
	active string
}

// NewSection creates a section with the "all" filter active
func NewSection(store *Store, target Target, binder Binder) *Section {
	return &Section{
		store:  store,
		target: target,
		binder: binder,
		active: CategoryAll,
	}
}

// Kind returns the section's collection
func (s *Section) Kind() models.CollectionKind {
	return s.store.Kind()
}

// Store returns the section's cache
func (s *Section) Store() *Store {
	return s.store
}

// Load fetches the collection and renders it unfiltered
func (s *Section) Load(ctx context.Context) error {
	s.BeginLoad()
	err := s.store.Load(ctx)
	s.FinishLoad(err)
	return err
}

// BeginLoad puts the loading placeholder up
func (s *Section) BeginLoad() {
	if s.target != nil {
		s.target.ShowMessage(MessageLoading)
	}
}

// FinishLoad renders the freshly loaded cache, or the failure placeholder
// when err is set. A successful load resets the filter to "all".
func (s *Section) FinishLoad(err error) {
	if err != nil {
		slog.Warn("collection load failed", "collection", s.Kind(), "error", err)
		if s.target != nil {
			s.target.ShowMessage(FailureMessage(s.Kind()))
		}
		return
	}

	s.mu.Lock()
	s.active = CategoryAll
	s.mu.Unlock()

	Render(s.target, s.binder, s.Kind(), s.store.Records())
}

// SetFilter makes category active and re-renders from the cache without a
// network call. Nothing is rendered while the cache is empty; the return
// value reports whether a render happened.
func (s *Section) SetFilter(category string) bool {
	s.mu.Lock()
	s.active = category
	s.mu.Unlock()

	records := s.store.Records()
	if len(records) == 0 {
		return false
	}

	Render(s.target, s.binder, s.Kind(), Filter(s.Kind(), records, category))
	return true
}

// Active returns the active category
func (s *Section) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Visible returns the cached records that pass the active filter
func (s *Section) Visible() []models.ImageRecord {
	return Filter(s.Kind(), s.store.Records(), s.Active())
}
