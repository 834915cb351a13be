// Package scroll owns the emulated scroll offset of one viewport.
//
// Every input source (wheel, touch gesture, inertia, thumb drag,
// press-and-hold) only proposes displacements through Engine.AddScroll; the
// engine clamps them against the current geometry, commits the result,
// applies it to the content layer and keeps a settle timer that drives the
// "is scrolling" flag.
package scroll

import (
	"log/slog"
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/scrollbox/internal/geom"
	"github.com/wilbur182/scrollbox/internal/inertia"
	"github.com/wilbur182/scrollbox/internal/sched"
)

// Translator applies a committed offset to the content layer.
type Translator interface {
	Translate(offset geom.Offset)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(geom.Offset)

// Translate calls f(offset).
func (f TranslatorFunc) Translate(offset geom.Offset) { f(offset) }

// Position is how far the content has been scrolled, as non-negative
// distances from the top-left corner.
type Position struct {
	Top  float64
	Left float64
}

// State is a snapshot of the engine.
type State struct {
	Scroll      geom.Offset
	Container   geom.Size
	Content     geom.Size
	IsScrolling bool
}

// SettledMsg is emitted once the settle timer expires without further
// offset changes.
type SettledMsg struct {
	ID       int
	Position Position
}

type settleMsg struct {
	id  int
	seq uint64
}

// Engine is the single writer of the scroll offset. It is not safe for
// concurrent use; drive it from one bubbletea Update loop.
type Engine struct {
	id     int
	clock  sched.Clock
	opts   Options
	logger *slog.Logger

	offset    geom.Offset
	container geom.Size
	content   geom.Size
	initial   *Position

	settle  sched.Handle
	touch   touchLog
	inertia *inertia.Simulator

	translator Translator
	onScroll   func(Position)
	closed     bool
}

// New creates an engine at offset zero with no geometry. A nil clock uses
// the wall clock; a nil logger discards.
func New(clock sched.Clock, opts Options, logger *slog.Logger) *Engine {
	if clock == nil {
		clock = sched.Real()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts = opts.withDefaults()
	return &Engine{
		id:      sched.NextID(),
		clock:   clock,
		opts:    opts,
		logger:  logger,
		inertia: inertia.New(clock, opts.Inertia),
	}
}

// ID returns the id carried by this engine's messages.
func (e *Engine) ID() int {
	return e.id
}

// SetTranslator sets the content layer the offset is applied to.
func (e *Engine) SetTranslator(t Translator) {
	e.translator = t
	if t != nil {
		t.Translate(e.offset)
	}
}

// OnScroll registers fn to run whenever the committed offset changes.
func (e *Engine) OnScroll(fn func(Position)) {
	e.onScroll = fn
}

// Offset returns the current translation (both components <= 0).
func (e *Engine) Offset() geom.Offset {
	return e.offset
}

// Position returns the sign-normalized scroll position.
func (e *Engine) Position() Position {
	n := e.offset.Negate()
	// +0 folds the -0 produced by negating a zero offset.
	return Position{Top: n.Top + 0, Left: n.Left + 0}
}

// IsScrolling reports whether the settle timer is pending.
func (e *Engine) IsScrolling() bool {
	return e.settle.Pending()
}

// InertiaActive reports whether a momentum sequence is running.
func (e *Engine) InertiaActive() bool {
	return e.inertia.Active()
}

// State returns a snapshot of the engine.
func (e *Engine) State() State {
	return State{
		Scroll:      e.offset,
		Container:   e.container,
		Content:     e.content,
		IsScrolling: e.IsScrolling(),
	}
}

// MinScroll returns the lowest reachable offset for the current geometry.
func (e *Engine) MinScroll() geom.Offset {
	return geom.Offset{
		Top:  geom.MinScroll(e.container.Height, e.content.Height),
		Left: geom.MinScroll(e.container.Width, e.content.Width),
	}
}

// SetInitialPosition records a position to jump to once geometry is known.
// If geometry is already available the jump happens immediately.
func (e *Engine) SetInitialPosition(top, left float64) tea.Cmd {
	if e.measured() {
		return e.ScrollTo(top, left)
	}
	e.initial = &Position{Top: top, Left: left}
	return nil
}

// SetGeometry takes a new container/content measurement. An offset that no
// longer fits is clamped back into range; that change is committed and
// reported through OnScroll but does not arm the settle timer.
func (e *Engine) SetGeometry(container, content geom.Size) tea.Cmd {
	if e.closed {
		return nil
	}
	e.container = container
	e.content = content
	if !e.measured() {
		return nil
	}

	if e.initial != nil {
		p := *e.initial
		e.initial = nil
		return e.ScrollTo(p.Top, p.Left)
	}

	min := e.MinScroll()
	next := geom.Offset{
		Top:  geom.Clamp(e.offset.Top, min.Top, 0),
		Left: geom.Clamp(e.offset.Left, min.Left, 0),
	}
	if next != e.offset {
		e.logger.Debug("scroll: reclamped after geometry change",
			"top", next.Top, "left", next.Left)
		e.commit(next)
	}
	return nil
}

// AddScroll proposes a displacement. Positive deltas scroll towards the
// bottom/right. A proposal that leaves both axes unchanged after clamping is
// a no-op: nothing is committed and the settle timer is not touched.
func (e *Engine) AddScroll(dx, dy float64) tea.Cmd {
	if e.closed || !e.measured() {
		return nil
	}
	if !finite(dx) || !finite(dy) {
		e.logger.Debug("scroll: dropped non-finite delta", "dx", dx, "dy", dy)
		return nil
	}

	min := e.MinScroll()
	next := geom.Offset{
		Top:  geom.Clamp(e.offset.Top-dy, min.Top, 0),
		Left: geom.Clamp(e.offset.Left-dx, min.Left, 0),
	}
	if next == e.offset {
		return nil
	}

	e.commit(next)
	return e.armSettle()
}

// ScrollTo jumps to a sign-normalized position. It is routed through
// AddScroll, so it clamps and arms the settle timer like any other input.
func (e *Engine) ScrollTo(top, left float64) tea.Cmd {
	e.inertia.Cancel()
	return e.AddScroll(e.offset.Left+left, e.offset.Top+top)
}

// Wheel applies a wheel delta after damping.
func (e *Engine) Wheel(dx, dy float64) tea.Cmd {
	return e.AddScroll(dx*e.opts.WheelDamping, dy*e.opts.WheelDamping)
}

// Update consumes the engine's own timer messages.
func (e *Engine) Update(msg tea.Msg) tea.Cmd {
	if e.closed {
		return nil
	}
	switch msg := msg.(type) {
	case settleMsg:
		if msg.id != e.id || !e.settle.Fire(msg.seq) {
			return nil
		}
		settled := SettledMsg{ID: e.id, Position: e.Position()}
		return func() tea.Msg { return settled }
	case inertia.TickMsg:
		return e.inertia.Update(msg)
	}
	return nil
}

// Close cancels every timer and drops gesture bookkeeping. The engine
// ignores all input afterwards.
func (e *Engine) Close() {
	e.settle.Cancel()
	e.inertia.Cancel()
	e.GestureCancel()
	e.closed = true
}

func (e *Engine) commit(next geom.Offset) {
	e.offset = next
	if e.translator != nil {
		e.translator.Translate(next)
	}
	if e.onScroll != nil {
		e.onScroll(e.Position())
	}
}

func (e *Engine) armSettle() tea.Cmd {
	seq := e.settle.Arm()
	return e.clock.After(e.opts.SettleDelay, settleMsg{id: e.id, seq: seq})
}

func (e *Engine) measured() bool {
	return !e.container.Empty() && !e.content.Empty()
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
