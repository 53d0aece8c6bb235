package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/fanhub/fanhub-terminal/pkg/gallery"
	"github.com/fanhub/fanhub-terminal/pkg/models"
)

const maxModalWidth = 72

// modal is a rendered lightbox and where it sits on screen
type modal struct {
	box    string
	x, y   int
	width  int
	height int
}

// contains reports whether the screen position falls on the modal box
func (m modal) contains(x, y int) bool {
	return x >= m.x && x < m.x+m.width && y >= m.y && y < m.y+m.height
}

// renderLightbox builds the modal for item, centered in a screen of the
// given size
func renderLightbox(styles Styles, item gallery.Item, group models.CollectionKind, index, total int, ready bool, screenWidth, screenHeight int) modal {
	width := screenWidth - 8
	if width > maxModalWidth {
		width = maxModalWidth
	}
	if width < 20 {
		width = 20
	}
	inner := width - 6

	var b strings.Builder
	b.WriteString(styles.Title.Render(fmt.Sprintf("%s · %d of %d", group, index+1, total)))
	b.WriteString("\n\n")
	b.WriteString(styles.Normal.Render(wordwrap.String(item.Alt, inner)))
	b.WriteString("\n")
	b.WriteString(styles.Dim.Render(wrap.String(item.Source, inner)))
	b.WriteString("\n\n")
	if ready {
		b.WriteString(styles.Ready.Render("● image reachable"))
	} else {
		b.WriteString(styles.Pending.Render("○ loading"))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.Dim.Render("←/→ browse · o open in browser · esc/x close"))

	box := styles.Modal.Width(width - 2).Render(b.String())

	w, h := lipgloss.Width(box), lipgloss.Height(box)
	return modal{
		box:    box,
		x:      max(0, (screenWidth-w)/2),
		y:      max(0, (screenHeight-h)/2),
		width:  w,
		height: h,
	}
}

// view places the modal over an otherwise blank screen
func (m modal) view(screenWidth, screenHeight int) string {
	return lipgloss.Place(screenWidth, screenHeight, lipgloss.Center, lipgloss.Center, m.box)
}
