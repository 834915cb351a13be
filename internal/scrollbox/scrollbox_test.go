package scrollbox

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/wilbur182/scrollbox/internal/geom"
	"github.com/wilbur182/scrollbox/internal/mouse"
	"github.com/wilbur182/scrollbox/internal/scroll"
	"github.com/wilbur182/scrollbox/internal/sched"
)

type fixture struct {
	box    *Model
	router *mouse.Router
	clock  *sched.Manual
}

// newFixture builds an 11x6 box (10x5 content cells) over 20 lines of 30
// cells: 80x80 units of container over 240x320 units of content.
func newFixture(t *testing.T, mutate func(*Options)) *fixture {
	t.Helper()
	clock := sched.NewManual(time.Unix(0, 0))
	opts := DefaultOptions()
	opts.Clock = clock
	if mutate != nil {
		mutate(&opts)
	}
	router := mouse.NewRouter()
	box := New("doc", router, opts, nil)

	lines := make([]string, 20)
	for i := range lines {
		lines[i] = fmt.Sprintf("%02d %s", i, strings.Repeat("x", 27))
	}
	box.SetBounds(0, 0, 11, 6)
	box.SetContent(lines)

	f := &fixture{box: box, router: router, clock: clock}
	f.render()
	return f
}

func (f *fixture) render() string {
	f.router.HitMap().Clear()
	return f.box.View()
}

func (f *fixture) deliver(msg tea.Msg) {
	f.box.Update(msg)
}

func (f *fixture) mouse(x, y int, button tea.MouseButton, action tea.MouseAction) {
	f.box.Update(tea.MouseMsg{X: x, Y: y, Button: button, Action: action})
	f.render()
}

func TestWheel(t *testing.T) {
	f := newFixture(t, nil)

	f.mouse(2, 2, tea.MouseButtonWheelDown, tea.MouseActionPress)

	// one notch: 3 rows * 16 units, damped by half
	if got := f.box.Position(); got != (scroll.Position{Top: 24}) {
		t.Fatalf("Position() = %+v, want top 24", got)
	}
	if !strings.HasPrefix(f.box.VisibleText(), "02 ") {
		t.Errorf("VisibleText() starts %q, want row 02 first", f.box.VisibleText()[:3])
	}

	f.box.Update(tea.MouseMsg{X: 2, Y: 2, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress, Shift: true})
	if got := f.box.Position().Left; got != 40 {
		t.Errorf("shift+wheel Left = %v, want 40", got)
	}
}

func TestView_Layout(t *testing.T) {
	f := newFixture(t, nil)

	lines := strings.Split(f.render(), "\n")
	if len(lines) != 6 {
		t.Fatalf("View() has %d lines, want 6", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 11 {
			t.Errorf("line %d width = %d, want 11", i, w)
		}
	}
	if strings.ContainsAny(ansi.Strip(f.render()), "│┃─━") {
		t.Error("scrollbars should be hidden while idle")
	}

	f.mouse(2, 2, tea.MouseButtonWheelDown, tea.MouseActionPress)
	view := ansi.Strip(f.render())
	if !strings.ContainsAny(view, "┃") || !strings.ContainsAny(view, "─━") {
		t.Errorf("scrollbars should show while scrolling:\n%s", view)
	}

	f.clock.Advance(time.Second, f.deliver)
	if f.box.IsScrolling() {
		t.Error("still scrolling after the settle delay")
	}
}

func TestThumbDrag(t *testing.T) {
	f := newFixture(t, nil)

	// vertical thumb: 80/320 of a 5-row track, first row
	f.mouse(10, 0, tea.MouseButtonLeft, tea.MouseActionPress)
	if f.box.Captures() != 1 {
		t.Fatalf("thumb press should capture the pointer")
	}

	// two rows = 32 units over an 80 unit container of 320 units of content
	f.mouse(10, 2, tea.MouseButtonLeft, tea.MouseActionMotion)
	if got := f.box.Position().Top; got != 128 {
		t.Fatalf("Top = %v, want 128", got)
	}

	// the pointer may leave the bar; the drag keeps following it
	f.mouse(3, 3, tea.MouseButtonLeft, tea.MouseActionMotion)
	if got := f.box.Position().Top; got != 192 {
		t.Fatalf("Top = %v after moving off the bar, want 192", got)
	}

	f.mouse(3, 3, tea.MouseButtonNone, tea.MouseActionRelease)
	if f.box.Captures() != 0 || f.router.Captures() != 0 {
		t.Error("release should drop the capture")
	}
	f.mouse(3, 4, tea.MouseButtonNone, tea.MouseActionMotion)
	if got := f.box.Position().Top; got != 192 {
		t.Errorf("Top = %v after release, want 192", got)
	}
}

func TestTrackPressAndHold(t *testing.T) {
	f := newFixture(t, nil)

	f.mouse(10, 4, tea.MouseButtonLeft, tea.MouseActionPress)
	f.clock.Advance(100*time.Millisecond, f.deliver)

	// ten ticks of 2 units
	if got := f.box.Position().Top; got != 20 {
		t.Fatalf("Top = %v, want 20", got)
	}

	f.mouse(10, 4, tea.MouseButtonNone, tea.MouseActionRelease)
	f.clock.Advance(100*time.Millisecond, f.deliver)
	if got := f.box.Position().Top; got != 20 {
		t.Errorf("Top = %v after release, want 20", got)
	}
}

func TestTrackPress_DirectionAndLeave(t *testing.T) {
	f := newFixture(t, nil)
	f.box.Engine().ScrollTo(100, 0)
	f.clock.Advance(time.Second, f.deliver)
	f.render()

	f.mouse(10, 0, tea.MouseButtonLeft, tea.MouseActionPress)
	f.clock.Advance(50*time.Millisecond, f.deliver)
	if got := f.box.Position().Top; got != 90 {
		t.Fatalf("Top = %v, want 90 after pressing the upper half", got)
	}

	// moving off the track ends the press
	f.mouse(4, 0, tea.MouseButtonLeft, tea.MouseActionMotion)
	f.clock.Advance(50*time.Millisecond, f.deliver)
	if got := f.box.Position().Top; got != 90 {
		t.Errorf("Top = %v after leaving the track, want 90", got)
	}
}

func TestTrackPress_EndsWhenThumbReachesPointer(t *testing.T) {
	f := newFixture(t, nil)

	// Row 3 of the 5-row track scrolls down until the one-row thumb covers
	// it: round(160/320*5) = 3.
	f.mouse(10, 3, tea.MouseButtonLeft, tea.MouseActionPress)
	f.clock.Advance(2*time.Second, f.deliver)

	if got := f.box.Position().Top; got != 160 {
		t.Errorf("Top = %v, want 160 where the thumb reaches the pointer", got)
	}
	if f.box.presses[geom.Vertical].Pressing() {
		t.Error("press still active with the thumb under the pointer")
	}
}

func TestTrackHover_RevealsBar(t *testing.T) {
	f := newFixture(t, nil)
	if strings.Contains(ansi.Strip(f.render()), "┃") {
		t.Fatal("vertical bar visible while idle")
	}

	f.mouse(10, 2, tea.MouseButtonNone, tea.MouseActionMotion)
	view := ansi.Strip(f.render())
	if !strings.Contains(view, "┃") {
		t.Errorf("hovered track should show its thumb:\n%s", view)
	}
	if strings.ContainsAny(view, "─━") {
		t.Errorf("only the hovered bar should show:\n%s", view)
	}

	f.mouse(4, 2, tea.MouseButtonNone, tea.MouseActionMotion)
	if view := ansi.Strip(f.render()); strings.Contains(view, "┃") {
		t.Errorf("bar still visible after the pointer left:\n%s", view)
	}
}

func TestGesture_Fling(t *testing.T) {
	f := newFixture(t, nil)

	f.mouse(3, 4, tea.MouseButtonLeft, tea.MouseActionPress)
	f.clock.Advance(50*time.Millisecond, f.deliver)
	f.mouse(3, 1, tea.MouseButtonLeft, tea.MouseActionMotion)
	if got := f.box.Position().Top; got != 48 {
		t.Fatalf("Top = %v, content should follow the pointer by 48", got)
	}

	f.mouse(3, 1, tea.MouseButtonNone, tea.MouseActionRelease)
	if !f.box.Engine().InertiaActive() {
		t.Fatal("a fast release should start inertia")
	}
	if f.box.Captures() != 0 {
		t.Error("gesture capture survived the release")
	}

	f.clock.Drain(100000, f.deliver)
	if got := f.box.Position().Top; got != 240 {
		t.Errorf("Top = %v, want the bottom (240)", got)
	}
}

func TestGesture_TapAndDisabled(t *testing.T) {
	f := newFixture(t, nil)
	f.mouse(3, 4, tea.MouseButtonLeft, tea.MouseActionPress)
	f.clock.Advance(100*time.Millisecond, f.deliver)
	f.mouse(3, 4, tea.MouseButtonNone, tea.MouseActionRelease)
	if f.box.Engine().InertiaActive() || f.box.Position().Top != 0 {
		t.Error("a tap should not scroll")
	}

	off := newFixture(t, func(o *Options) { o.TouchButton = tea.MouseButtonNone })
	off.mouse(3, 4, tea.MouseButtonLeft, tea.MouseActionPress)
	if off.box.Captures() != 0 {
		t.Error("touch disabled but the press captured the pointer")
	}
}

func TestGesture_PressWithoutRelease(t *testing.T) {
	f := newFixture(t, nil)

	f.mouse(3, 4, tea.MouseButtonLeft, tea.MouseActionPress)
	// The release was lost; a new press replaces the gesture.
	f.mouse(3, 2, tea.MouseButtonLeft, tea.MouseActionPress)
	if f.box.Captures() != 1 || f.router.Captures() != 1 {
		t.Fatalf("captures = %d/%d, want one gesture capture", f.box.Captures(), f.router.Captures())
	}

	f.mouse(3, 1, tea.MouseButtonLeft, tea.MouseActionMotion)
	if got := f.box.Position().Top; got != 16 {
		t.Errorf("Top = %v, want 16 measured from the second press", got)
	}
}

func TestGesture_ContractViolation(t *testing.T) {
	f := newFixture(t, nil)

	cmd := f.box.followGesture(mouse.Event{Kind: mouse.KindMotion, X: 1, Y: 1})
	if cmd == nil {
		t.Fatal("expected an error command")
	}
	msg, ok := cmd().(ErrMsg)
	if !ok {
		t.Fatalf("expected ErrMsg, got %T", cmd())
	}
	if !errors.Is(msg.Err, scroll.ErrGestureNotStarted) {
		t.Errorf("ErrMsg.Err = %v", msg.Err)
	}
}

func TestSetContent_Reclamps(t *testing.T) {
	f := newFixture(t, nil)
	f.box.Engine().ScrollTo(1e6, 0)
	if got := f.box.Position().Top; got != 240 {
		t.Fatalf("Top = %v, want 240", got)
	}

	f.box.SetContent(f.box.Lines()[:8])
	if got := f.box.Position().Top; got != 48 {
		t.Errorf("Top = %v after shrinking to 8 lines, want 48", got)
	}
}

func TestResetGeometry(t *testing.T) {
	f := newFixture(t, nil)
	square := geom.Size{Width: 80, Height: 80}
	f.box.Engine().SetGeometry(square, square)

	f.box.SetContent(f.box.Lines())
	if got := f.box.Engine().MinScroll().Top; got != 0 {
		t.Fatalf("MinScroll().Top = %v, unchanged content should not be re-measured", got)
	}

	f.box.ResetGeometry()
	f.box.SetContent(f.box.Lines())
	if got := f.box.Engine().MinScroll().Top; got != -240 {
		t.Errorf("MinScroll().Top = %v after ResetGeometry, want -240", got)
	}
}

func TestSetInitialPosition(t *testing.T) {
	clock := sched.NewManual(time.Unix(0, 0))
	opts := DefaultOptions()
	opts.Clock = clock
	box := New("doc", nil, opts, nil)

	box.SetInitialPosition(scroll.Position{Top: 64})
	box.SetContent(make([]string, 20))
	box.SetBounds(0, 0, 11, 6)

	if got := box.Position().Top; got != 64 {
		t.Errorf("Top = %v, want 64", got)
	}
}

func TestClose(t *testing.T) {
	f := newFixture(t, nil)
	f.mouse(3, 4, tea.MouseButtonLeft, tea.MouseActionPress)
	f.mouse(10, 4, tea.MouseButtonLeft, tea.MouseActionPress)

	f.box.Close()
	if f.box.Captures() != 0 || f.router.Captures() != 0 {
		t.Error("Close left pointer captures behind")
	}
	before := f.box.Position()
	f.clock.Drain(1000, f.deliver)
	if cmd := f.box.Update(tea.MouseMsg{X: 2, Y: 2, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}); cmd != nil {
		t.Error("closed box handled input")
	}
	if f.box.Position() != before {
		t.Error("closed box scrolled")
	}
}
