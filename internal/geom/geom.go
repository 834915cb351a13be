// Package geom holds the value types shared by the scroll engine and its
// input sources. All lengths are in abstract units; hosts decide how units
// map onto terminal cells.
package geom

import "math"

// Axis selects one scroll direction.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Size is a non-negative extent.
type Size struct {
	Width  float64
	Height float64
}

// Along returns the extent on the given axis.
func (s Size) Along(a Axis) float64 {
	if a == Horizontal {
		return s.Width
	}
	return s.Height
}

// Empty reports whether either dimension is unmeasured.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Offset is the translation applied to the content layer.
// Both components are <= 0 once clamped.
type Offset struct {
	Top  float64
	Left float64
}

// Along returns the component on the given axis.
func (o Offset) Along(a Axis) float64 {
	if a == Horizontal {
		return o.Left
	}
	return o.Top
}

// Negate flips both components. Used to turn the engine's translation into a
// conventional "how far scrolled" position.
func (o Offset) Negate() Offset {
	return Offset{Top: -o.Top, Left: -o.Left}
}

// Vec is a 2-D displacement or velocity.
type Vec struct {
	X float64
	Y float64
}

// Along returns the component on the given axis.
func (v Vec) Along(a Axis) float64 {
	if a == Horizontal {
		return v.X
	}
	return v.Y
}

// Len returns the euclidean length.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Scale multiplies both components by f.
func (v Vec) Scale(f float64) Vec {
	return Vec{X: v.X * f, Y: v.Y * f}
}

// OnAxis builds a vector with d on the given axis and zero on the other.
func OnAxis(a Axis, d float64) Vec {
	if a == Horizontal {
		return Vec{X: d}
	}
	return Vec{Y: d}
}

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// Ratio divides num by den, returning 0 instead of a non-finite value when
// den is zero or either input is not finite.
func Ratio(num, den float64) float64 {
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return 0
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// MinScroll returns the most negative offset allowed on one axis, or 0 when
// the content fits inside the container.
func MinScroll(container, content float64) float64 {
	if content <= container {
		return 0
	}
	return -(content - container)
}
