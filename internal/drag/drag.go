// Package drag tracks a pointer held on a scrollbar thumb and the movement
// reported between consecutive move events.
package drag

import "github.com/wilbur182/scrollbox/internal/geom"

// Controller is Idle until PressStart and Active until Release or Click.
// Movement is rate based: Delta is the step since the previous move, not
// the distance from the press point, so dragging past the edge of the bar
// keeps producing increments.
type Controller struct {
	active  bool
	last    geom.Vec
	hasLast bool
	delta   geom.Vec
	moves   uint64
}

// PressStart activates the controller at (x, y). It always returns true:
// a press on the thumb is consumed and must not reach the track below.
func (c *Controller) PressStart(x, y float64) bool {
	c.active = true
	c.last = geom.Vec{X: x, Y: y}
	c.hasLast = true
	c.delta = geom.Vec{}
	return true
}

// Move records the movement since the previous move. Ignored while Idle.
func (c *Controller) Move(x, y float64) {
	if !c.active {
		return
	}
	pos := geom.Vec{X: x, Y: y}
	if c.hasLast {
		c.delta = geom.Vec{X: pos.X - c.last.X, Y: pos.Y - c.last.Y}
	} else {
		c.delta = geom.Vec{}
	}
	c.last = pos
	c.hasLast = true
	c.moves++
}

// Release deactivates the controller. Bound to the global pointer-up, since
// the pointer may have left the thumb.
func (c *Controller) Release() {
	c.active = false
	c.hasLast = false
	c.delta = geom.Vec{}
}

// Click also ends a drag.
func (c *Controller) Click() {
	c.Release()
}

// Active reports whether a drag is in progress.
func (c *Controller) Active() bool {
	return c.active
}

// Delta returns the most recent movement. Zero while Idle.
func (c *Controller) Delta() geom.Vec {
	if !c.active {
		return geom.Vec{}
	}
	return c.delta
}

// Moves counts move events seen while Active, so consumers can tell a new
// sample from a repeated read.
func (c *Controller) Moves() uint64 {
	return c.moves
}
