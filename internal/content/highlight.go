package content

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// highlighter colors source files with chroma.
type highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
}

// newHighlighter returns nil if no lexer is available for the file type.
func newHighlighter(filename, theme string) *highlighter {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return nil
	}
	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}
	return &highlighter{
		lexer: chroma.Coalesce(lexer),
		style: style,
	}
}

// Lines tokenizes the whole text, so multi-line constructs such as block
// comments keep their colors, and returns one styled string per line.
func (h *highlighter) Lines(text string) []string {
	raw := strings.Split(text, "\n")
	if h == nil {
		return raw
	}

	iterator, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return raw
	}

	lines := make([]string, 0, len(raw))
	var cur strings.Builder
	for _, token := range iterator.Tokens() {
		style := h.tokenStyle(token.Type)
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
			}
			if part != "" {
				cur.WriteString(style.Render(part))
			}
		}
	}
	if cur.Len() > 0 || len(lines) < len(raw) {
		lines = append(lines, cur.String())
	}
	return lines
}

func (h *highlighter) tokenStyle(tokenType chroma.TokenType) lipgloss.Style {
	entry := h.style.Get(tokenType)
	style := lipgloss.NewStyle()

	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	// Italic is left out: some terminals draw it wider than one cell.
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}
	return style
}
