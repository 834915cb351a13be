// Package scrollbox is a bubbletea component that shows content through a
// translate-scrolled viewport with two overlay scrollbars.
//
// Wheel, grab-and-fling on the content, thumb drags and press-and-hold on
// the blank track all feed one scroll.Engine, which owns the offset.
package scrollbox

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/scrollbox/internal/drag"
	"github.com/wilbur182/scrollbox/internal/geom"
	"github.com/wilbur182/scrollbox/internal/mouse"
	"github.com/wilbur182/scrollbox/internal/observer"
	"github.com/wilbur182/scrollbox/internal/press"
	"github.com/wilbur182/scrollbox/internal/scroll"
	"github.com/wilbur182/scrollbox/internal/ui"
)

// ErrMsg reports a scroll contract violation to the application.
type ErrMsg struct {
	Err error
}

func (e ErrMsg) Error() string {
	return e.Err.Error()
}

var axes = [2]geom.Axis{geom.Vertical, geom.Horizontal}

// Model is one scroll box. Drive it from the program's Update loop and
// place it with SetBounds; its View registers hit regions on the router.
type Model struct {
	name   string
	opts   Options
	logger *slog.Logger
	router *mouse.Router
	engine *scroll.Engine
	layer  layer
	obs    observer.Observer

	x, y          int
	width, height int
	lines         []string

	thumbs     [2]drag.Controller
	thumbMoves [2]uint64
	presses    [2]*press.Tracker
	pressDir   [2]scroll.Direction
	pressCell  [2]int // track cell under the pointer while pressing
	pressLen   [2]int
	hover      [2]bool
	captures   map[string]func()
	closed     bool
}

// New creates an empty scroll box. name prefixes its hit region ids.
func New(name string, router *mouse.Router, opts Options, logger *slog.Logger) *Model {
	opts = opts.withDefaults()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if router == nil {
		router = mouse.NewRouter()
	}

	m := &Model{
		name:     name,
		opts:     opts,
		logger:   logger,
		router:   router,
		engine:   scroll.New(opts.Clock, opts.Engine, logger),
		layer:    layer{cellW: opts.CellWidth, cellH: opts.CellHeight},
		captures: make(map[string]func()),
	}
	for i := range m.presses {
		m.presses[i] = press.New(opts.Clock, opts.PressInterval)
	}
	m.engine.SetTranslator(&m.layer)
	return m
}

// Engine exposes the underlying engine.
func (m *Model) Engine() *scroll.Engine {
	return m.engine
}

// Router returns the router the box registers its regions on.
func (m *Model) Router() *mouse.Router {
	return m.router
}

// OnScroll registers fn to run on every committed offset change.
func (m *Model) OnScroll(fn func(scroll.Position)) {
	m.engine.OnScroll(fn)
}

// Position returns the scroll position in engine units.
func (m *Model) Position() scroll.Position {
	return m.engine.Position()
}

// SetInitialPosition jumps to a position in engine units as soon as the box
// has been measured.
func (m *Model) SetInitialPosition(p scroll.Position) tea.Cmd {
	return m.engine.SetInitialPosition(p.Top, p.Left)
}

// IsScrolling reports whether the box scrolled within the settle delay.
func (m *Model) IsScrolling() bool {
	return m.engine.IsScrolling()
}

// SetBounds places the box on screen. The last column and the last row are
// reserved for the scrollbars.
func (m *Model) SetBounds(x, y, width, height int) tea.Cmd {
	m.x, m.y = x, y
	m.width, m.height = max(width, 0), max(height, 0)
	return m.measure()
}

// ResetGeometry forgets the last measurement, so the next SetContent or
// SetBounds hands the geometry to the engine even when it did not change.
func (m *Model) ResetGeometry() {
	m.obs.Reset()
}

// SetContent replaces the content lines.
func (m *Model) SetContent(lines []string) tea.Cmd {
	m.lines = lines
	return m.measure()
}

// Lines returns the content lines.
func (m *Model) Lines() []string {
	return m.lines
}

// VisibleText returns the text currently in view, without styling.
func (m *Model) VisibleText() string {
	cols, rows := m.cells()
	return m.layer.visibleText(m.lines, cols, rows)
}

// cells returns the container size in cells.
func (m *Model) cells() (cols, rows int) {
	return max(m.width-1, 0), max(m.height-1, 0)
}

func (m *Model) measure() tea.Cmd {
	cols, rows := m.cells()
	container := geom.Size{Width: float64(cols), Height: float64(rows)}
	content := observer.Measure(m.lines)
	// Content never lays out narrower or shorter than its container.
	content.Width = max(content.Width, container.Width)
	content.Height = max(content.Height, container.Height)
	if !m.obs.Observe(container, content) {
		return nil
	}
	return m.engine.SetGeometry(m.toUnits(container), m.toUnits(content))
}

func (m *Model) toUnits(s geom.Size) geom.Size {
	return geom.Size{Width: s.Width * m.opts.CellWidth, Height: s.Height * m.opts.CellHeight}
}

func (m *Model) cellSize(axis geom.Axis) float64 {
	if axis == geom.Horizontal {
		return m.opts.CellWidth
	}
	return m.opts.CellHeight
}

// Update handles mouse messages and the box's timers.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.closed {
		return nil
	}
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.router.Dispatch(msg)
	case press.TickMsg:
		var cmds []tea.Cmd
		for i, tr := range m.presses {
			changed, cmd := tr.Update(msg)
			cmds = append(cmds, cmd)
			if !changed {
				continue
			}
			// The thumb has reached the pointer: it is no longer over blank
			// track, so the press ends.
			if m.thumbCovers(geom.Axis(i)) {
				tr.Leave()
				continue
			}
			cmds = append(cmds, m.engine.PressStep(m.pressDir[i], m.opts.PressSpeed))
		}
		return tea.Batch(cmds...)
	}
	return m.engine.Update(msg)
}

// Close stops every timer and releases every pointer capture. The box
// ignores input afterwards.
func (m *Model) Close() {
	m.engine.Close()
	for i := range m.presses {
		m.presses[i].Release()
		m.thumbs[i].Release()
		m.hover[i] = false
	}
	for key, release := range m.captures {
		release()
		delete(m.captures, key)
	}
	m.closed = true
}

func (m *Model) capture(key string, fn mouse.Listener) {
	m.release(key)
	m.captures[key] = m.router.Capture(fn)
}

func (m *Model) release(key string) {
	if release, ok := m.captures[key]; ok {
		release()
		delete(m.captures, key)
	}
}

// Captures returns the number of pointer captures the box holds.
func (m *Model) Captures() int {
	return len(m.captures)
}

func (m *Model) fail(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	m.logger.Error("scrollbox: contract violation", "box", m.name, "err", err)
	return func() tea.Msg { return ErrMsg{Err: err} }
}

func (m *Model) regionID(part string) string {
	return m.name + ":" + part
}

// View renders the box and registers its hit regions. The caller clears the
// router's hit map once per frame before rendering.
func (m *Model) View() string {
	cols, rows := m.cells()
	if cols <= 0 || rows <= 0 {
		return ""
	}
	m.registerRegions(cols, rows)

	win := m.layer.window(m.lines, cols, rows)
	vbar := strings.Split(ui.RenderScrollbar(m.barParams(geom.Vertical, rows)), "\n")

	var sb strings.Builder
	for r := range rows {
		sb.WriteString(win[r])
		sb.WriteString(vbar[r])
		sb.WriteString("\n")
	}
	sb.WriteString(ui.RenderScrollbar(m.barParams(geom.Horizontal, cols)))
	sb.WriteString(" ")
	return sb.String()
}

func (m *Model) barParams(axis geom.Axis, length int) ui.ScrollbarParams {
	bar := m.engine.Bar(axis)
	dragging := m.thumbs[axis].Active()
	return ui.ScrollbarParams{
		Axis:          axis,
		OffsetPercent: bar.OffsetPercent,
		ThumbPercent:  bar.ThumbPercent,
		Length:        length,
		Visible:       bar.Visible || dragging || m.hover[axis],
		Active:        dragging,
	}
}

func (m *Model) registerRegions(cols, rows int) {
	hm := m.router.HitMap()
	hm.Add(m.regionID("content"), mouse.Rect{X: m.x, Y: m.y, W: cols, H: rows}, m.handleContent)

	for _, axis := range axes {
		track := mouse.Rect{X: m.x + cols, Y: m.y, W: 1, H: rows}
		length := rows
		if axis == geom.Horizontal {
			track = mouse.Rect{X: m.x, Y: m.y + rows, W: cols, H: 1}
			length = cols
		}
		hm.Add(m.regionID(axis.String()+"-track"), track, m.trackHandler(axis, length))

		bar := m.engine.Bar(axis)
		if !bar.Scrollable {
			continue
		}
		start, size := ui.ThumbSpan(bar.OffsetPercent, bar.ThumbPercent, length)
		thumb := mouse.Rect{X: track.X, Y: track.Y + start, W: 1, H: size}
		if axis == geom.Horizontal {
			thumb = mouse.Rect{X: track.X + start, Y: track.Y, W: size, H: 1}
		}
		hm.Add(m.regionID(axis.String()+"-thumb"), thumb, m.thumbHandler(axis))
	}
}

func (m *Model) wheel(ev mouse.Event) tea.Cmd {
	dx := float64(ev.WheelX) * m.opts.WheelStepX * m.opts.CellWidth
	dy := float64(ev.WheelY) * m.opts.WheelStepY * m.opts.CellHeight
	return m.engine.Wheel(dx, dy)
}

func (m *Model) handleContent(ev mouse.Event) (tea.Cmd, bool) {
	switch ev.Kind {
	case mouse.KindWheel:
		return m.wheel(ev), true
	case mouse.KindPress:
		if m.opts.TouchButton == tea.MouseButtonNone || ev.Button != m.opts.TouchButton {
			return nil, false
		}
		if m.engine.GestureActive() {
			// The release of the previous gesture never arrived.
			m.logger.Debug("scrollbox: dropping unfinished gesture", "box", m.name)
			m.engine.GestureCancel()
		}
		m.engine.GestureStart(int(ev.Button), m.unitX(ev.X), m.unitY(ev.Y))
		m.capture("gesture", m.followGesture)
		return nil, true
	}
	return nil, false
}

func (m *Model) followGesture(ev mouse.Event) tea.Cmd {
	switch ev.Kind {
	case mouse.KindMotion:
		cmd, err := m.engine.GestureMove(m.unitX(ev.X), m.unitY(ev.Y))
		if err != nil {
			return m.fail(fmt.Errorf("box %s: %w", m.name, err))
		}
		return cmd
	case mouse.KindRelease:
		m.release("gesture")
		cmd, err := m.engine.GestureEnd(m.unitX(ev.X), m.unitY(ev.Y))
		if err != nil {
			return m.fail(fmt.Errorf("box %s: %w", m.name, err))
		}
		return cmd
	}
	return nil
}

func (m *Model) unitX(x int) float64 {
	return float64(x) * m.opts.CellWidth
}

func (m *Model) unitY(y int) float64 {
	return float64(y) * m.opts.CellHeight
}

func (m *Model) trackHandler(axis geom.Axis, length int) mouse.Handler {
	tr := m.presses[axis]
	aim := func(ev mouse.Event) {
		cell := ev.LocalY
		if axis == geom.Horizontal {
			cell = ev.LocalX
		}
		// Cell centers, so the middle cell of an odd track scrolls forward
		// only from its far half.
		m.pressDir[axis] = scroll.PressDirection(axis, float64(cell)+0.5, float64(length))
		m.pressCell[axis] = cell
		m.pressLen[axis] = length
	}

	return func(ev mouse.Event) (tea.Cmd, bool) {
		switch ev.Kind {
		case mouse.KindWheel:
			return m.wheel(ev), true
		case mouse.KindPress:
			m.hover[axis] = true
			if ev.Button != tea.MouseButtonLeft {
				return nil, false
			}
			aim(ev)
			return tr.Press(), true
		case mouse.KindMotion:
			m.hover[axis] = true
			if tr.Pressing() {
				aim(ev)
			}
			return nil, true
		case mouse.KindRelease:
			tr.Release()
			return nil, true
		case mouse.KindLeave:
			m.hover[axis] = false
			tr.Leave()
			return nil, true
		}
		return nil, false
	}
}

// thumbCovers reports whether the thumb now lies over the pressed track cell.
func (m *Model) thumbCovers(axis geom.Axis) bool {
	bar := m.engine.Bar(axis)
	if !bar.Scrollable {
		return false
	}
	start, size := ui.ThumbSpan(bar.OffsetPercent, bar.ThumbPercent, m.pressLen[axis])
	cell := m.pressCell[axis]
	return cell >= start && cell < start+size
}

func (m *Model) thumbHandler(axis geom.Axis) mouse.Handler {
	key := "thumb-" + axis.String()
	c := &m.thumbs[axis]

	follow := func(ev mouse.Event) tea.Cmd {
		switch ev.Kind {
		case mouse.KindMotion:
			c.Move(float64(ev.X), float64(ev.Y))
			movement := c.Delta().Along(axis) * m.cellSize(axis)
			return m.engine.DragThumb(axis, movement)
		case mouse.KindRelease:
			if c.Moves() == m.thumbMoves[axis] {
				c.Click()
			} else {
				c.Release()
			}
			m.release(key)
		}
		return nil
	}

	return func(ev mouse.Event) (tea.Cmd, bool) {
		switch ev.Kind {
		case mouse.KindWheel:
			return m.wheel(ev), true
		case mouse.KindPress:
			if ev.Button != tea.MouseButtonLeft {
				return nil, false
			}
			m.thumbMoves[axis] = c.Moves()
			m.capture(key, follow)
			return nil, c.PressStart(float64(ev.X), float64(ev.Y))
		}
		return nil, false
	}
}
