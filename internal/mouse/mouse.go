// Package mouse routes terminal mouse events to rectangular regions and to
// pointer captures that follow the pointer wherever it goes.
package mouse

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Rect represents a rectangular region.
type Rect struct {
	X, Y, W, H int
}

// Contains returns true if the point (x, y) is within the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Handler receives an event that hit its region. Returning handled stops
// the event from reaching regions underneath.
type Handler func(ev Event) (cmd tea.Cmd, handled bool)

// Region is a named rectangular hit region.
type Region struct {
	ID      string
	Rect    Rect
	Handler Handler
}

// HitMap tracks hit regions. Later regions are on top.
type HitMap struct {
	regions []Region
}

// NewHitMap creates a new empty HitMap.
func NewHitMap() *HitMap {
	return &HitMap{
		regions: make([]Region, 0, 8),
	}
}

// Clear removes all regions from the hit map.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Add adds a new region on top of the existing ones.
func (h *HitMap) Add(id string, rect Rect, handler Handler) {
	h.regions = append(h.regions, Region{
		ID:      id,
		Rect:    rect,
		Handler: handler,
	})
}

// Test returns the topmost region containing the point, or nil if none.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			return &h.regions[i]
		}
	}
	return nil
}

// TestAll returns every region containing the point, topmost first.
func (h *HitMap) TestAll(x, y int) []Region {
	var hits []Region
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			hits = append(hits, h.regions[i])
		}
	}
	return hits
}

// Find returns the region registered under id.
func (h *HitMap) Find(id string) (Region, bool) {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].ID == id {
			return h.regions[i], true
		}
	}
	return Region{}, false
}

// Regions returns a copy of all registered regions (for testing).
func (h *HitMap) Regions() []Region {
	return append([]Region(nil), h.regions...)
}
