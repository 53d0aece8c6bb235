package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fanhub/fanhub-terminal/pkg/models"
	"github.com/fanhub/fanhub-terminal/pkg/testhelpers"
)

func uploaders(records []models.ImageRecord) []string {
	out := []string{}
	for _, r := range records {
		out = append(out, r.Uploader)
	}
	return out
}

func urls(records []models.ImageRecord) []string {
	out := []string{}
	for _, r := range records {
		out = append(out, r.URL)
	}
	return out
}

func TestFilterScenario(t *testing.T) {
	c := []models.ImageRecord{
		{Uploader: "artlover99"},
		{Uploader: "memeKing"},
		{Uploader: "plainuser"},
	}

	assert.Equal(t, []string{"artlover99"}, uploaders(Filter(models.CollectionGallery, c, "fan-art")))
	assert.Equal(t, []string{"memeKing"}, uploaders(Filter(models.CollectionGallery, c, "memes")))
	assert.Equal(t, []string{"artlover99", "memeKing", "plainuser"}, uploaders(Filter(models.CollectionGallery, c, "all")))
}

func TestFilterAllAndUnknownReturnInput(t *testing.T) {
	for _, kind := range []models.CollectionKind{models.CollectionGallery, models.CollectionJenna} {
		records := testhelpers.GalleryFixture()
		if kind == models.CollectionJenna {
			records = testhelpers.JennaFixture()
		}

		for _, category := range []string{"all", "no-such-category", ""} {
			got := Filter(kind, records, category)
			assert.Equal(t, records, got, "kind=%s category=%q", kind, category)
		}
	}
}

func TestFilterGalleryRules(t *testing.T) {
	records := []models.ImageRecord{
		{URL: "1", Uploader: "ARTistic_soul"},
		{URL: "2", Uploader: "quickdraw"},
		{URL: "3", Uploader: "painter"},
		{URL: "4", Uploader: "editor_jo"},
		{URL: "5", Uploader: "cropper"},
		{URL: "6", Uploader: "FilterFan"},
		{URL: "7", Uploader: "lolcat"},
		{URL: "8", Filename: "meme-template.png"},
		{URL: "9"},
	}

	tests := []struct {
		category string
		want     []string
	}{
		{"fan-art", []string{"1", "2", "3"}},
		{"edits", []string{"4", "5", "6"}},
		// filename is used when the uploader is missing
		{"memes", []string{"7", "8"}},
		{"recent", []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, urls(Filter(models.CollectionGallery, records, tt.category)))
		})
	}
}

func TestFilterUploaderWinsOverFilename(t *testing.T) {
	records := []models.ImageRecord{
		{URL: "a", Uploader: "plainuser", Filename: "painting.png"},
	}
	assert.Empty(t, Filter(models.CollectionGallery, records, "fan-art"))
}

func TestFilterJennaRulesUseURL(t *testing.T) {
	records := testhelpers.JennaFixture()

	tests := []struct {
		category string
		want     []string
	}{
		{"red-carpet", []string{records[0].URL}},
		{"casual", []string{records[1].URL}},
		{"events", []string{records[2].URL}},
		{"behind-scenes", []string{records[3].URL}},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, urls(Filter(models.CollectionJenna, records, tt.category)))
		})
	}

	// alt text is not consulted
	altOnly := []models.ImageRecord{{URL: "https://x/1.jpg", Alt: "Red Carpet event"}}
	assert.Empty(t, Filter(models.CollectionJenna, altOnly, "red-carpet"))
}

func TestFilterMissingIdentifierFallsOut(t *testing.T) {
	records := []models.ImageRecord{{}}

	for _, category := range []string{"fan-art", "edits", "memes"} {
		assert.Empty(t, Filter(models.CollectionGallery, records, category), category)
	}
	for _, category := range []string{"red-carpet", "casual", "events", "behind-scenes"} {
		assert.Empty(t, Filter(models.CollectionJenna, records, category), category)
	}
	assert.Len(t, Filter(models.CollectionGallery, records, "recent"), 1)
	assert.Len(t, Filter(models.CollectionGallery, records, "all"), 1)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	records := testhelpers.GalleryFixture()
	before := append([]models.ImageRecord(nil), records...)

	for _, category := range Categories(models.CollectionGallery) {
		_ = Filter(models.CollectionGallery, records, category)
		_ = Filter(models.CollectionGallery, records, category)
	}

	assert.Equal(t, before, records)
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"all", "fan-art", "edits", "memes", "recent"}, Categories(models.CollectionGallery))
	assert.Equal(t, []string{"all", "red-carpet", "casual", "events", "behind-scenes"}, Categories(models.CollectionJenna))

	rule, ok := LookupRule(models.CollectionGallery, "edits")
	assert.True(t, ok)
	assert.Equal(t, []string{"edit", "crop", "filter"}, rule.Keywords)

	_, ok = LookupRule(models.CollectionJenna, "fan-art")
	assert.False(t, ok)
}
