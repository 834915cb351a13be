package scroll

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/scrollbox/internal/geom"
)

// Bar is what a scrollbar widget needs to draw one axis.
type Bar struct {
	Axis geom.Axis
	// OffsetPercent is the scrolled distance over the content extent.
	OffsetPercent float64
	// ThumbPercent is the container extent over the content extent.
	ThumbPercent float64
	// Visible follows the scrolling flag.
	Visible bool
	// Scrollable is false when the content fits the container.
	Scrollable bool
}

// Bar returns the thumb geometry for axis.
func (e *Engine) Bar(axis geom.Axis) Bar {
	content := e.content.Along(axis)
	container := e.container.Along(axis)
	return Bar{
		Axis:          axis,
		OffsetPercent: geom.Ratio(-e.offset.Along(axis), content),
		ThumbPercent:  geom.Ratio(container, content),
		Visible:       e.IsScrolling(),
		Scrollable:    content > container,
	}
}

// ThumbDelta converts a thumb movement into a content displacement: the
// thumb travels over the container while the content travels over its own
// extent. A zero container maps to zero.
func ThumbDelta(movement, container, content float64) float64 {
	return geom.Ratio(movement, container) * content
}

// DragThumb scrolls axis by a thumb movement.
func (e *Engine) DragThumb(axis geom.Axis, movement float64) tea.Cmd {
	d := ThumbDelta(movement, e.container.Along(axis), e.content.Along(axis))
	v := geom.OnAxis(axis, d)
	return e.AddScroll(v.X, v.Y)
}

// Direction is the way a press on the blank track scrolls.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "right"
	}
}

// PressDirection picks the direction of a track press from the pointer
// position within a track of length trackLen: the far half scrolls forward.
func PressDirection(axis geom.Axis, pos, trackLen float64) Direction {
	forward := pos > trackLen/2
	if axis == geom.Horizontal {
		if forward {
			return Right
		}
		return Left
	}
	if forward {
		return Down
	}
	return Up
}

// Delta returns the displacement of one press step of the given speed.
func (d Direction) Delta(speed float64) geom.Vec {
	switch d {
	case Up:
		return geom.Vec{Y: -speed}
	case Down:
		return geom.Vec{Y: speed}
	case Left:
		return geom.Vec{X: -speed}
	default:
		return geom.Vec{X: speed}
	}
}

// PressStep scrolls one press step.
func (e *Engine) PressStep(d Direction, speed float64) tea.Cmd {
	v := d.Delta(speed)
	return e.AddScroll(v.X, v.Y)
}
