package gallery

import (
	"regexp"
	"strings"

	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// CategoryAll is the pass-through category every collection accepts
const CategoryAll = "all"

// Rule classifies records of one collection into a category
type Rule struct {
	Category string
	Keywords []string
	// MatchAll marks a category that accepts every record
	MatchAll bool

	pattern *regexp.Regexp
}

// Matches reports whether identifier text belongs to the rule's category
func (r Rule) Matches(text string) bool {
	if r.MatchAll {
		return true
	}
	if r.pattern == nil {
		return false
	}
	return r.pattern.MatchString(text)
}

func keywordRule(category string, keywords ...string) Rule {
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return Rule{
		Category: category,
		Keywords: keywords,
		pattern:  regexp.MustCompile(`(?i)` + strings.Join(quoted, "|")),
	}
}

// rules is the category table per collection, in display order.
// "recent" accepts everything: uploaded_at is not consulted yet.
var rules = map[models.CollectionKind][]Rule{
	models.CollectionGallery: {
		keywordRule("fan-art", "art", "draw", "paint"),
		keywordRule("edits", "edit", "crop", "filter"),
		keywordRule("memes", "meme", "fun", "lol"),
		{Category: "recent", MatchAll: true},
	},
	models.CollectionJenna: {
		keywordRule("red-carpet", "redcarpet", "event", "award"),
		keywordRule("casual", "casual", "street", "daily"),
		keywordRule("events", "event", "press", "interview"),
		keywordRule("behind-scenes", "behind", "bts", "set"),
	},
}

// Categories lists the categories of kind, starting with "all"
func Categories(kind models.CollectionKind) []string {
	out := []string{CategoryAll}
	for _, r := range rules[kind] {
		out = append(out, r.Category)
	}
	return out
}

// Rules returns the rule table of kind
func Rules(kind models.CollectionKind) []Rule {
	return append([]Rule(nil), rules[kind]...)
}

// LookupRule finds the rule for category in kind's table
func LookupRule(kind models.CollectionKind, category string) (Rule, bool) {
	for _, r := range rules[kind] {
		if r.Category == category {
			return r, true
		}
	}
	return Rule{}, false
}

// IdentifierText returns the free text a record is classified by: the
// uploader (or filename) for the gallery and the URL for jenna images.
func IdentifierText(kind models.CollectionKind, rec models.ImageRecord) string {
	switch kind {
	case models.CollectionJenna:
		return rec.URL
	default:
		if rec.Uploader != "" {
			return rec.Uploader
		}
		return rec.Filename
	}
}

// Filter returns the records of kind that fall into category, keeping their
// order. "all" and unknown categories return records unchanged. The input
// slice is never modified.
func Filter(kind models.CollectionKind, records []models.ImageRecord, category string) []models.ImageRecord {
	if category == CategoryAll {
		return records
	}

	rule, ok := LookupRule(kind, category)
	if !ok {
		return records
	}

	filtered := make([]models.ImageRecord, 0, len(records))
	for _, rec := range records {
		if rule.Matches(IdentifierText(kind, rec)) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
