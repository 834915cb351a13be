package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wilbur182/scrollbox/internal/geom"
	"github.com/wilbur182/scrollbox/internal/styles"
)

// ScrollbarParams configures one scrollbar rendering.
type ScrollbarParams struct {
	Axis          geom.Axis
	OffsetPercent float64 // scrolled distance / content extent
	ThumbPercent  float64 // container extent / content extent
	Length        int     // track length in cells
	Visible       bool    // scrolling, dragging or hovered
	Active        bool    // thumb is being dragged
}

// ThumbSpan returns the first cell and the size of the thumb on a track of
// length cells. The thumb is at least one cell and never leaves the track.
func ThumbSpan(offsetPercent, thumbPercent float64, length int) (start, size int) {
	if length < 1 {
		return 0, 0
	}
	size = int(math.Round(clampPercent(thumbPercent) * float64(length)))
	size = min(max(size, 1), length)
	start = int(math.Round(clampPercent(offsetPercent) * float64(length)))
	start = min(max(start, 0), length-size)
	return start, size
}

func clampPercent(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return math.Min(math.Max(p, 0), 1)
}

// RenderScrollbar returns a track of Length cells: a column of lines for the
// vertical axis, a single line for the horizontal one. A hidden or
// unnecessary bar renders as blanks so the layout never jitters.
func RenderScrollbar(params ScrollbarParams) string {
	if params.Length < 1 {
		return ""
	}

	sep := ""
	trackGlyph, thumbGlyph := "─", "━"
	if params.Axis == geom.Vertical {
		sep = "\n"
		trackGlyph, thumbGlyph = "│", "┃"
	}

	cells := make([]string, params.Length)
	if !params.Visible || params.ThumbPercent >= 1 || params.ThumbPercent <= 0 {
		for i := range cells {
			cells[i] = " "
		}
		return strings.Join(cells, sep)
	}

	thumbColor := styles.ScrollbarThumbColor
	if params.Active {
		thumbColor = styles.ScrollbarThumbActiveColor
	}
	track := lipgloss.NewStyle().Foreground(styles.ScrollbarTrackColor).Render(trackGlyph)
	thumb := lipgloss.NewStyle().Foreground(thumbColor).Render(thumbGlyph)

	start, size := ThumbSpan(params.OffsetPercent, params.ThumbPercent, params.Length)
	for i := range cells {
		if i >= start && i < start+size {
			cells[i] = thumb
		} else {
			cells[i] = track
		}
	}
	return strings.Join(cells, sep)
}
