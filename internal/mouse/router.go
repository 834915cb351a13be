package mouse

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Listener receives every motion and release event while it holds a
// capture, regardless of where the pointer is.
type Listener func(ev Event) tea.Cmd

// Router dispatches mouse messages: first to the regions under the pointer,
// topmost first, until one handles the event; then to every capture.
type Router struct {
	hits     *HitMap
	captures []capture
	nextCap  uint64
	hovered  map[string]bool
}

type capture struct {
	id uint64
	fn Listener
}

// NewRouter creates a router with an empty hit map.
func NewRouter() *Router {
	return &Router{
		hits:    NewHitMap(),
		hovered: make(map[string]bool),
	}
}

// HitMap returns the router's hit map. Views rebuild it on every render.
func (r *Router) HitMap() *HitMap {
	return r.hits
}

// Capture subscribes fn to pointer motion and release until the returned
// release func is called. Release is idempotent.
func (r *Router) Capture(fn Listener) (release func()) {
	r.nextCap++
	id := r.nextCap
	r.captures = append(r.captures, capture{id: id, fn: fn})
	return func() {
		for i, c := range r.captures {
			if c.id == id {
				r.captures = append(r.captures[:i], r.captures[i+1:]...)
				return
			}
		}
	}
}

// Captures returns the number of live captures.
func (r *Router) Captures() int {
	return len(r.captures)
}

// ReleaseAll drops every capture.
func (r *Router) ReleaseAll() {
	r.captures = nil
}

// Dispatch routes msg and returns the batched commands of every receiver.
func (r *Router) Dispatch(msg tea.MouseMsg) tea.Cmd {
	ev := FromMsg(msg)
	if ev.Kind == KindNone {
		return nil
	}

	cmds := r.leave(ev)
	cmds = append(cmds, r.bubble(ev)...)

	if ev.Kind == KindMotion || ev.Kind == KindRelease {
		// Snapshot: listeners may release themselves.
		live := append([]capture(nil), r.captures...)
		for _, c := range live {
			cmds = append(cmds, c.fn(ev))
		}
	}
	return tea.Batch(cmds...)
}

func (r *Router) bubble(ev Event) []tea.Cmd {
	var cmds []tea.Cmd
	for _, region := range r.hits.TestAll(ev.X, ev.Y) {
		if region.Handler == nil {
			continue
		}
		local := ev
		local.LocalX = ev.X - region.Rect.X
		local.LocalY = ev.Y - region.Rect.Y
		cmd, handled := region.Handler(local)
		cmds = append(cmds, cmd)
		if handled {
			break
		}
	}
	return cmds
}

// leave tells regions the pointer is no longer over them.
func (r *Router) leave(ev Event) []tea.Cmd {
	now := make(map[string]bool)
	for _, region := range r.hits.TestAll(ev.X, ev.Y) {
		now[region.ID] = true
	}

	var cmds []tea.Cmd
	for id := range r.hovered {
		if now[id] {
			continue
		}
		region, ok := r.hits.Find(id)
		if !ok || region.Handler == nil {
			continue
		}
		out := ev
		out.Kind = KindLeave
		out.LocalX = ev.X - region.Rect.X
		out.LocalY = ev.Y - region.Rect.Y
		cmd, _ := region.Handler(out)
		cmds = append(cmds, cmd)
	}
	r.hovered = now
	return cmds
}
