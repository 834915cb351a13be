package content

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/x/cellbuf"
	"github.com/mattn/go-runewidth"
	"github.com/wilbur182/scrollbox/internal/markdown"
)

// DefaultTabWidth is the tab stop used for plain and source documents.
const DefaultTabWidth = 4

// Renderer turns documents into display lines.
type Renderer struct {
	md          *markdown.Renderer
	syntaxTheme string
	tabWidth    int

	// last source render, keyed by document hash
	srcHash  uint64
	srcPath  string
	srcLines []string
}

// NewRenderer creates a renderer using the given glamour and chroma theme
// names.
func NewRenderer(markdownTheme, syntaxTheme string, tabWidth int, logger *slog.Logger) *Renderer {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return &Renderer{
		md:          markdown.NewRenderer(markdownTheme, logger),
		syntaxTheme: syntaxTheme,
		tabWidth:    tabWidth,
	}
}

// Render returns the display lines of doc. With wrap set, lines are soft
// wrapped at width; otherwise they keep their natural length and the
// viewport scrolls horizontally.
func (r *Renderer) Render(doc *Document, width int, wrap bool) []string {
	if doc == nil {
		return nil
	}
	wrapAt := 0
	if wrap && width > 0 {
		wrapAt = width
	}

	var lines []string
	switch doc.Kind {
	case Markdown:
		return r.md.Render(doc.Text, wrapAt)
	case Source:
		lines = r.source(doc)
	default:
		lines = strings.Split(strings.TrimRight(doc.Text, "\n"), "\n")
		for i, line := range lines {
			lines[i] = ExpandTabs(line, r.tabWidth)
		}
	}

	if wrapAt == 0 {
		return lines
	}
	wrapped := make([]string, 0, len(lines))
	for _, line := range lines {
		wrapped = append(wrapped, strings.Split(cellbuf.Wrap(line, wrapAt, ""), "\n")...)
	}
	return wrapped
}

func (r *Renderer) source(doc *Document) []string {
	if r.srcLines != nil && r.srcHash == doc.Hash && r.srcPath == doc.Path {
		return append([]string(nil), r.srcLines...)
	}

	text := strings.TrimRight(doc.Text, "\n")
	raw := strings.Split(text, "\n")
	for i, line := range raw {
		raw[i] = ExpandTabs(line, r.tabWidth)
	}
	lines := newHighlighter(doc.Path, r.syntaxTheme).Lines(strings.Join(raw, "\n"))

	r.srcHash, r.srcPath, r.srcLines = doc.Hash, doc.Path, lines
	return append([]string(nil), lines...)
}

// ExpandTabs replaces tabs with spaces up to the next tab stop, counting
// wide runes as two columns.
func ExpandTabs(line string, tabWidth int) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	var sb strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}
