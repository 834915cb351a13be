package scrollbox

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/wilbur182/scrollbox/internal/geom"
)

// layer is the translated content. It receives committed offsets and cuts
// the visible window out of the content lines.
type layer struct {
	cellW, cellH float64
	top, left    int // first visible row and column
}

// Translate converts the unit offset into whole cells.
func (l *layer) Translate(offset geom.Offset) {
	l.top = int(math.Round(-offset.Top / l.cellH))
	l.left = int(math.Round(-offset.Left / l.cellW))
}

// window returns rows lines of exactly cols cells.
func (l *layer) window(lines []string, cols, rows int) []string {
	out := make([]string, rows)
	for r := range rows {
		i := l.top + r
		line := ""
		if i >= 0 && i < len(lines) {
			line = ansi.Cut(lines[i], l.left, l.left+cols)
		}
		if pad := cols - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		out[r] = line
	}
	return out
}

// visibleText returns the window without styling, trailing blanks trimmed.
func (l *layer) visibleText(lines []string, cols, rows int) string {
	win := l.window(lines, cols, rows)
	for i, line := range win {
		win[i] = strings.TrimRight(ansi.Strip(line), " ")
	}
	return strings.TrimRight(strings.Join(win, "\n"), "\n")
}
