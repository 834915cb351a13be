package drag

import (
	"testing"

	"github.com/wilbur182/scrollbox/internal/geom"
)

func TestController_IncrementalMovement(t *testing.T) {
	var c Controller
	if !c.PressStart(10, 10) {
		t.Fatal("PressStart should consume the event")
	}

	steps := []struct {
		x, y     float64
		expected geom.Vec
	}{
		{10, 14, geom.Vec{X: 0, Y: 4}},
		{12, 15, geom.Vec{X: 2, Y: 1}},
		{12, 15, geom.Vec{}},
		{9, 10, geom.Vec{X: -3, Y: -5}},
	}

	for i, s := range steps {
		c.Move(s.x, s.y)
		if got := c.Delta(); got != s.expected {
			t.Errorf("step %d: Delta() = %+v, want %+v", i, got, s.expected)
		}
	}
	if c.Moves() != uint64(len(steps)) {
		t.Errorf("Moves() = %d, want %d", c.Moves(), len(steps))
	}
}

func TestController_IdleIgnoresMoves(t *testing.T) {
	var c Controller
	c.Move(5, 5)
	if c.Active() || c.Delta() != (geom.Vec{}) || c.Moves() != 0 {
		t.Errorf("idle controller recorded movement: %+v", c.Delta())
	}
}

func TestController_ReleaseAndClick(t *testing.T) {
	tests := []struct {
		name string
		end  func(*Controller)
	}{
		{"release", (*Controller).Release},
		{"click", (*Controller).Click},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Controller
			c.PressStart(0, 0)
			c.Move(0, 3)
			tt.end(&c)
			if c.Active() {
				t.Error("still active")
			}
			if c.Delta() != (geom.Vec{}) {
				t.Errorf("Delta() = %+v after end", c.Delta())
			}
			c.Move(0, 10)
			if c.Delta() != (geom.Vec{}) {
				t.Error("moves after end should be ignored")
			}
		})
	}
}

func TestController_NewPressResetsOrigin(t *testing.T) {
	var c Controller
	c.PressStart(0, 0)
	c.Move(0, 50)
	c.Release()

	c.PressStart(100, 100)
	c.Move(100, 101)
	if got := c.Delta(); got != (geom.Vec{Y: 1}) {
		t.Errorf("Delta() = %+v, want {0 1}", got)
	}
}
