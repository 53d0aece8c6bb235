package channels

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fanhub/fanhub-terminal/pkg/models"
	"github.com/fanhub/fanhub-terminal/pkg/testhelpers"
)

func TestPickColor(t *testing.T) {
	tests := []struct {
		key  string
		want Gradient
	}{
		// "a" = 97, 97 % 5 = 2
		{"a", Palette[2]},
		// "#chat" = 35+99+104+97+116 = 451, 451 % 5 = 1
		{"#chat", Palette[1]},
		{"", Palette[0]},
		// "0" = 48, 48 % 5 = 3
		{"0", Palette[3]},
		// U+1F600 encodes as 0xD83D 0xDE00 = 55357+56832 = 112189, % 5 = 4
		{"😀", Palette[4]},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, PickColor(tt.key))
		})
	}
}

func TestPickColorIsStable(t *testing.T) {
	for _, ch := range testhelpers.ChannelFixture() {
		assert.Equal(t, PickColor(ch.Name), PickColor(ch.Name))
	}
}

func TestColorKey(t *testing.T) {
	assert.Equal(t, "#chat", ColorKey(models.Channel{Name: "#chat"}, 3))
	assert.Equal(t, "3", ColorKey(models.Channel{}, 3))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "💬 #chat", Label(models.Channel{Emoji: "💬", Name: "#chat"}))
	assert.Equal(t, "#chat", Label(models.Channel{Name: "#chat"}))
}

func TestPreview(t *testing.T) {
	chs := testhelpers.ChannelFixture()
	assert.Len(t, chs, 9)

	preview := Preview(chs)
	assert.Len(t, preview, 8)
	assert.Equal(t, chs[:8], preview)

	assert.Len(t, Preview(chs[:3]), 3)
	assert.Empty(t, Preview(nil))
}

func TestRenderList(t *testing.T) {
	out := RenderList(testhelpers.ChannelFixture()[:2], 40)

	assert.Contains(t, out, "#chat")
	assert.Contains(t, out, "#media")
	assert.Contains(t, out, "https://discord.com/channels/1/media")
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "  General") {
			assert.LessOrEqual(t, len(line), 40)
		}
	}
}

func TestRenderBadges(t *testing.T) {
	out := RenderBadges(testhelpers.ChannelFixture())
	assert.Contains(t, out, "#chat")
	assert.NotContains(t, out, "#selfie")
}
