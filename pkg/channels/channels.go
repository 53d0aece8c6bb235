package channels

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// PreviewSize is how many channels the front page preview shows
const PreviewSize = 8

// Gradient is a two-stop badge colour
type Gradient struct {
	From string
	To   string
}

// Palette is the fixed set of channel colours
var Palette = []Gradient{
	{From: "#ff6b6b", To: "#ff9aa2"},
	{From: "#7c5cff", To: "#9b8cff"},
	{From: "#00d4ff", To: "#63f5b5"},
	{From: "#ffd166", To: "#ffb86b"},
	{From: "#ff9ad6", To: "#7c5cff"},
}

// PickColor maps key to a palette entry by the sum of its UTF-16 code units.
// The same key always gets the same colour.
func PickColor(key string) Gradient {
	sum := 0
	for _, unit := range utf16.Encode([]rune(key)) {
		sum += int(unit)
	}
	return Palette[sum%len(Palette)]
}

// ColorKey is the key a channel is coloured by: its name, or its position
// when unnamed
func ColorKey(ch models.Channel, index int) string {
	if ch.Name != "" {
		return ch.Name
	}
	return strconv.Itoa(index)
}

// Label is the badge text, the emoji followed by the name
func Label(ch models.Channel) string {
	if ch.Emoji == "" {
		return ch.Name
	}
	return ch.Emoji + " " + ch.Name
}

// Preview returns the channels shown on the front page
func Preview(chs []models.Channel) []models.Channel {
	if len(chs) <= PreviewSize {
		return chs
	}
	return chs[:PreviewSize]
}

// BadgeStyle is the lipgloss style for a channel badge
func BadgeStyle(g Gradient) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(g.From)).
		Foreground(lipgloss.Color("#ffffff")).
		PaddingLeft(1).
		PaddingRight(1)
}

// RenderBadges lays out the preview badges on one line
func RenderBadges(chs []models.Channel) string {
	badges := make([]string, 0, len(chs))
	for i, ch := range Preview(chs) {
		badges = append(badges, BadgeStyle(PickColor(ColorKey(ch, i))).Render(Label(ch)))
	}
	return strings.Join(badges, " ")
}

// RenderList renders every channel as a coloured row with its description
// wrapped to width
func RenderList(chs []models.Channel, width int) string {
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	for i, ch := range chs {
		g := PickColor(ColorKey(ch, i))
		name := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(g.From)).Render(Label(ch))
		b.WriteString(name)
		b.WriteString("\n")
		if ch.Desc != "" {
			desc := wordwrap.String(ch.Desc, width-2)
			for _, line := range strings.Split(desc, "\n") {
				b.WriteString("  " + line + "\n")
			}
		}
		if ch.URL != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(g.To)).Render("  "+ch.URL) + "\n")
		}
		if i < len(chs)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
