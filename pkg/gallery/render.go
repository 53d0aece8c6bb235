package gallery

import (
	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// Placeholder texts shown in place of a collection
const (
	MessageLoading       = "Loading..."
	MessageGalleryFailed = "Could not load gallery."
	MessageImagesFailed  = "Could not load images."
)

// Item is one rendered image
type Item struct {
	Source string
	Alt    string
	// Lazy asks the target to defer fetching the image until it is visible
	Lazy bool
	// Label is the identifier text shown under the image
	Label string
}

// Target is anything that can show an ordered run of items
type Target interface {
	// Replace discards the current content and shows items in order
	Replace(items []Item)
	// ShowMessage discards the current content and shows a single line
	ShowMessage(text string)
}

// Binder is notified after each render so it can attach handlers to the
// freshly created items
type Binder interface {
	Bind(group models.CollectionKind, items []Item)
}

// DefaultAlt is the alt text used when a record carries none
func DefaultAlt(kind models.CollectionKind) string {
	if kind == models.CollectionJenna {
		return "jenna image"
	}
	return "fan upload"
}

// FailureMessage is the placeholder shown when kind cannot be loaded
func FailureMessage(kind models.CollectionKind) string {
	if kind == models.CollectionJenna {
		return MessageImagesFailed
	}
	return MessageGalleryFailed
}

// Items converts records to display items
func Items(kind models.CollectionKind, records []models.ImageRecord) []Item {
	items := make([]Item, 0, len(records))
	for _, rec := range records {
		alt := rec.Uploader
		if kind == models.CollectionJenna {
			alt = rec.Alt
		}
		if alt == "" {
			alt = DefaultAlt(kind)
		}

		items = append(items, Item{
			Source: rec.URL,
			Alt:    alt,
			Lazy:   true,
			Label:  IdentifierText(kind, rec),
		})
	}
	return items
}

// Render replaces target's content with one item per record and then lets
// binder rebind, since the previous items and their bindings are gone.
func Render(target Target, binder Binder, kind models.CollectionKind, records []models.ImageRecord) []Item {
	items := Items(kind, records)
	if target != nil {
		target.Replace(items)
	}
	if binder != nil {
		binder.Bind(kind, items)
	}
	return items
}
