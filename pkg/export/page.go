package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/fanhub/fanhub-terminal/pkg/gallery"
)

// Page is a render target that collects a collection as markdown and writes
// it out as a standalone HTML page. Each image links to its full-size source.
type Page struct {
	Title    string
	Subtitle string

	mu      sync.Mutex
	items   []gallery.Item
	message string
}

// NewPage creates an empty page
func NewPage(title string) *Page {
	return &Page{Title: title}
}

// Replace implements gallery.Target
func (p *Page) Replace(items []gallery.Item) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = append([]gallery.Item(nil), items...)
	p.message = ""
}

// ShowMessage implements gallery.Target
func (p *Page) ShowMessage(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = nil
	p.message = text
}

// Items returns the items currently on the page
func (p *Page) Items() []gallery.Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]gallery.Item(nil), p.items...)
}

// Markdown returns the page body as markdown
func (p *Page) Markdown() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	if p.Subtitle != "" {
		fmt.Fprintf(&b, "%s\n\n", escapeText(p.Subtitle))
	}

	if p.message != "" {
		fmt.Fprintf(&b, "%s\n", escapeText(p.message))
		return b.String()
	}
	if len(p.items) == 0 {
		return b.String()
	}

	for i, item := range p.items {
		dest := escapeDestination(item.Source)
		fmt.Fprintf(&b, "%d. [![%s](%s)](%s)", i+1, escapeText(item.Alt), dest, dest)
		if item.Label != "" {
			fmt.Fprintf(&b, " %s", escapeText(item.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// WriteHTML renders the page to w
func (p *Page) WriteHTML(w io.Writer) error {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(&lazyImages{sources: p.lazySources()}, 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	var body bytes.Buffer
	if err := md.Convert([]byte(p.Markdown()), &body); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}

	return pageTemplate.Execute(w, struct {
		Title string
		Body  template.HTML
	}{
		Title: p.Title,
		Body:  template.HTML(body.String()),
	})
}

// WriteFile renders the page into path, creating parent directories
func (p *Page) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := p.WriteHTML(&buf); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (p *Page) lazySources() map[string]bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	lazy := make(map[string]bool)
	for _, item := range p.items {
		if item.Lazy {
			lazy[item.Source] = true
		}
	}
	return lazy
}

// lazyImages adds loading="lazy" to images whose source asked for it
type lazyImages struct {
	sources map[string]bool
}

func (l *lazyImages) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if img, ok := n.(*ast.Image); ok && l.sources[string(img.Destination)] {
			img.SetAttributeString("loading", []byte("lazy"))
		}
		return ast.WalkContinue, nil
	})
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	`&`, `\&`,
	`[`, `\[`,
	`]`, `\]`,
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
	`!`, `\!`,
	`|`, `\|`,
)

func escapeText(s string) string {
	return markdownEscaper.Replace(s)
}

var destinationEscaper = strings.NewReplacer(`<`, `\<`, `>`, `\>`, `\`, `\\`)

func escapeDestination(s string) string {
	return "<" + destinationEscaper.Replace(s) + ">"
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; background: #121212; color: #eee; }
ol { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 1rem; list-style: none; padding: 0; }
img { width: 100%; border-radius: 8px; }
a { color: #c586c0; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{.Body}}
</body>
</html>
`))
