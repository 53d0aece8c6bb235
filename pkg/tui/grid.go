package tui

import (
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/fanhub/fanhub-terminal/pkg/gallery"
	"github.com/fanhub/fanhub-terminal/pkg/models"
)

const (
	cellContentWidth = 24
	// outer size of a cell: rounded border plus one column of padding each side
	cellWidth  = cellContentWidth + 4
	cellHeight = 4
)

// Grid is the terminal render target of one collection. It is only touched
// from the update loop.
type Grid struct {
	kind    models.CollectionKind
	items   []gallery.Item
	message string
	ready   map[string]bool
	cursor  int
	width   int
}

// NewGrid creates an empty grid for kind
func NewGrid(kind models.CollectionKind) *Grid {
	return &Grid{
		kind:  kind,
		ready: make(map[string]bool),
		width: cellWidth,
	}
}

// Replace implements gallery.Target
func (g *Grid) Replace(items []gallery.Item) {
	g.items = append([]gallery.Item(nil), items...)
	g.message = ""
	g.cursor = 0
}

// ShowMessage implements gallery.Target
func (g *Grid) ShowMessage(text string) {
	g.items = nil
	g.message = text
	g.cursor = 0
}

// Items returns the items on display
func (g *Grid) Items() []gallery.Item {
	return g.items
}

// Message returns the placeholder text, empty while items are shown
func (g *Grid) Message() string {
	return g.message
}

// MarkReady flags sources whose image answered
func (g *Grid) MarkReady(sources []string) {
	for _, src := range sources {
		g.ready[src] = true
	}
}

// Ready reports whether src has been flagged ready
func (g *Grid) Ready(src string) bool {
	return g.ready[src]
}

// Sources lists the sources of the items on display
func (g *Grid) Sources() []string {
	out := make([]string, 0, len(g.items))
	for _, item := range g.items {
		out = append(out, item.Source)
	}
	return out
}

// SetWidth sets the width available to the grid
func (g *Grid) SetWidth(width int) {
	g.width = width
}

// Columns is the number of cells per row
func (g *Grid) Columns() int {
	cols := g.width / cellWidth
	if cols < 1 {
		return 1
	}
	return cols
}

// Cursor returns the selected index
func (g *Grid) Cursor() int {
	return g.cursor
}

// CursorRow returns the row of the selected cell
func (g *Grid) CursorRow() int {
	return g.cursor / g.Columns()
}

// Move shifts the selection by dx cells and dy rows, staying in bounds
func (g *Grid) Move(dx, dy int) {
	if len(g.items) == 0 {
		return
	}
	next := g.cursor + dx + dy*g.Columns()
	if next < 0 || next >= len(g.items) {
		return
	}
	g.cursor = next
}

// Select moves the selection to index
func (g *Grid) Select(index int) bool {
	if index < 0 || index >= len(g.items) {
		return false
	}
	g.cursor = index
	return true
}

// CellAt maps a position relative to the grid's top-left corner to an item
// index
func (g *Grid) CellAt(x, y int) (int, bool) {
	if x < 0 || y < 0 {
		return 0, false
	}
	col, row := x/cellWidth, y/cellHeight
	if col >= g.Columns() {
		return 0, false
	}
	idx := row*g.Columns() + col
	if idx >= len(g.items) {
		return 0, false
	}
	return idx, true
}

// View renders the grid
func (g *Grid) View(styles Styles) string {
	if g.message != "" {
		return styles.Placeholder.Render(g.message)
	}
	if len(g.items) == 0 {
		return styles.Dim.Render("No images to show.")
	}

	cols := g.Columns()
	var rows []string
	for start := 0; start < len(g.items); start += cols {
		end := start + cols
		if end > len(g.items) {
			end = len(g.items)
		}

		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, g.renderCell(styles, i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (g *Grid) renderCell(styles Styles, i int) string {
	item := g.items[i]

	marker := styles.Pending.Render("○")
	if g.ready[item.Source] {
		marker = styles.Ready.Render("●")
	}
	title := marker + " " + fit(item.Alt, cellContentWidth-2)
	file := styles.Dim.Render(fit(path.Base(item.Source), cellContentWidth))

	style := styles.Cell
	if i == g.cursor {
		style = styles.SelectedCell
	}
	return style.Width(cellContentWidth + 2).Render(title + "\n" + file)
}

// fit truncates s to width cells, ending in an ellipsis when cut
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
