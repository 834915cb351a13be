package scroll

import (
	"errors"
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/scrollbox/internal/geom"
)

// ErrGestureNotStarted is returned for a gesture move or end that was not
// preceded by GestureStart.
var ErrGestureNotStarted = errors.New("gesture not started")

// Sample is one recorded pointer position.
type Sample struct {
	Time time.Time
	X, Y float64
}

type touchLog struct {
	pointer  int
	started  bool
	start    Sample
	previous Sample
}

// GestureStart begins a touch gesture. A running inertia sequence stops
// immediately, so touching the content catches it.
func (e *Engine) GestureStart(pointerID int, x, y float64) {
	if e.closed {
		return
	}
	e.inertia.Cancel()
	s := Sample{Time: e.clock.Now(), X: x, Y: y}
	e.touch = touchLog{pointer: pointerID, started: true, start: s, previous: s}
}

// GestureActive reports whether a gesture is in progress.
func (e *Engine) GestureActive() bool {
	return e.touch.started
}

// GestureMove scrolls by the pointer movement since the previous sample.
// Content follows the finger, so the delta is previous minus current.
func (e *Engine) GestureMove(x, y float64) (tea.Cmd, error) {
	if e.closed {
		return nil, nil
	}
	if !e.touch.started {
		return nil, fmt.Errorf("gesture move to (%g, %g): %w", x, y, ErrGestureNotStarted)
	}
	prev := e.touch.previous
	cmd := e.AddScroll(prev.X-x, prev.Y-y)
	e.touch.previous = Sample{Time: e.clock.Now(), X: x, Y: y}
	return cmd, nil
}

// GestureEnd finishes the gesture. A slow gesture is a tap and ends without
// momentum; a fast one hands its average velocity to the inertia simulator.
func (e *Engine) GestureEnd(x, y float64) (tea.Cmd, error) {
	if e.closed {
		return nil, nil
	}
	if !e.touch.started {
		return nil, fmt.Errorf("gesture end at (%g, %g): %w", x, y, ErrGestureNotStarted)
	}
	start, pointer := e.touch.start, e.touch.pointer
	e.touch = touchLog{}

	elapsed := float64(e.clock.Now().Sub(start.Time)) / float64(time.Millisecond)
	dx := x - start.X
	dy := y - start.Y
	speed := geom.Ratio(math.Hypot(dx, dy), elapsed)
	if speed < e.opts.TapVelocity {
		return nil, nil
	}

	gain := e.opts.InertiaScale * e.opts.InertiaGain
	vx := -geom.Ratio(dx, elapsed) * gain
	vy := -geom.Ratio(dy, elapsed) * gain
	e.logger.Debug("scroll: inertia start", "pointer", pointer, "vx", vx, "vy", vy, "elapsed_ms", elapsed)
	return e.inertia.Start(vx, vy, e.AddScroll), nil
}

// GestureCancel drops the gesture without starting inertia.
func (e *Engine) GestureCancel() {
	e.touch = touchLog{}
}
