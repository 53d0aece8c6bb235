package gallery

import (
	"sync"

	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// LightboxState is the visibility of the shared modal
type LightboxState int

const (
	LightboxHidden LightboxState = iota
	LightboxShown
)

func (s LightboxState) String() string {
	if s == LightboxShown {
		return "shown"
	}
	return "hidden"
}

// Lightbox is the full-size viewer shared by every rendered collection.
// Each group keeps exactly one binding per currently rendered item.
type Lightbox struct {
	mu       sync.Mutex
	bindings map[models.CollectionKind][]Item
	state    LightboxState
	current  Item
	group    models.CollectionKind
	index    int
}

// NewLightbox returns a hidden lightbox with no bindings
func NewLightbox() *Lightbox {
	return &Lightbox{
		bindings: make(map[models.CollectionKind][]Item),
	}
}

// Bind replaces the bindings of group with items
func (l *Lightbox) Bind(group models.CollectionKind, items []Item) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bindings[group] = append([]Item(nil), items...)
}

// Bound returns the number of items with an open handler, across groups
func (l *Lightbox) Bound() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, items := range l.bindings {
		n += len(items)
	}
	return n
}

// BoundIn returns the number of bound items in group
func (l *Lightbox) BoundIn(group models.CollectionKind) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.bindings[group])
}

// Click opens the lightbox on the index-th item of group. It reports false
// when nothing is bound there.
func (l *Lightbox) Click(group models.CollectionKind, index int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := l.bindings[group]
	if index < 0 || index >= len(items) {
		return false
	}

	l.current = items[index]
	l.group = group
	l.index = index
	l.state = LightboxShown
	return true
}

// Step moves a shown lightbox by delta within its group
func (l *Lightbox) Step(delta int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != LightboxShown {
		return false
	}
	items := l.bindings[l.group]
	next := l.index + delta
	if next < 0 || next >= len(items) {
		return false
	}
	l.index = next
	l.current = items[next]
	return true
}

// Close hides the lightbox. Closing a hidden lightbox does nothing.
func (l *Lightbox) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = LightboxHidden
}

// ClickBackdrop handles a click outside the image
func (l *Lightbox) ClickBackdrop() {
	l.Close()
}

// HandleKey closes the lightbox on escape and reports whether the key was used
func (l *Lightbox) HandleKey(key string) bool {
	if key != "esc" && key != "escape" {
		return false
	}
	l.mu.Lock()
	wasShown := l.state == LightboxShown
	l.mu.Unlock()

	l.Close()
	return wasShown
}

// State returns the current visibility
func (l *Lightbox) State() LightboxState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Visible reports whether the lightbox is shown
func (l *Lightbox) Visible() bool {
	return l.State() == LightboxShown
}

// Current returns the item on display and its position. The item is stale
// once the lightbox is hidden.
func (l *Lightbox) Current() (Item, models.CollectionKind, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current, l.group, l.index
}
