// Package observer tracks the measured sizes of a scroll container and its
// content and reports when either changes.
package observer

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/wilbur182/scrollbox/internal/geom"
)

// Geometry is a container/content size pair, in cells.
type Geometry struct {
	Container geom.Size
	Content   geom.Size
}

// Observer remembers the last geometry it saw.
type Observer struct {
	last Geometry
	seen bool
}

// Observe records a new measurement and reports whether it differs from
// the previous one. The first measurement always counts as a change.
func (o *Observer) Observe(container, content geom.Size) bool {
	g := Geometry{Container: container, Content: content}
	if o.seen && g == o.last {
		return false
	}
	o.last = g
	o.seen = true
	return true
}

// Reset forgets the last measurement so the next Observe reports a change.
func (o *Observer) Reset() {
	o.last = Geometry{}
	o.seen = false
}

// Measure returns the extent of content lines: the widest line, ANSI
// sequences and wide runes accounted for, by the number of lines.
func Measure(lines []string) geom.Size {
	width := 0
	for _, line := range lines {
		width = max(width, lipgloss.Width(line))
	}
	return geom.Size{Width: float64(width), Height: float64(len(lines))}
}
