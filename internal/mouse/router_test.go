package mouse

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type trace struct {
	calls []string
}

func (tr *trace) handler(id string, handled bool) Handler {
	return func(ev Event) (tea.Cmd, bool) {
		tr.calls = append(tr.calls, id+":"+ev.Kind.String())
		return nil, handled
	}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}
}

func TestRouter_BubblesTopmostFirst(t *testing.T) {
	tests := []struct {
		name          string
		thumbHandled  bool
		expectedCalls []string
	}{
		{"thumb consumes the press", true, []string{"thumb:press"}},
		{"thumb lets it through", false, []string{"thumb:press", "track:press"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &trace{}
			r := NewRouter()
			r.HitMap().Add("track", Rect{X: 0, Y: 0, W: 1, H: 10}, tr.handler("track", true))
			r.HitMap().Add("thumb", Rect{X: 0, Y: 2, W: 1, H: 3}, tr.handler("thumb", tt.thumbHandled))

			r.Dispatch(press(0, 3))

			if len(tr.calls) != len(tt.expectedCalls) {
				t.Fatalf("calls = %v, want %v", tr.calls, tt.expectedCalls)
			}
			for i := range tr.calls {
				if tr.calls[i] != tt.expectedCalls[i] {
					t.Errorf("calls[%d] = %q, want %q", i, tr.calls[i], tt.expectedCalls[i])
				}
			}
		})
	}
}

func TestRouter_LocalCoordinates(t *testing.T) {
	r := NewRouter()
	var got Event
	r.HitMap().Add("box", Rect{X: 5, Y: 7, W: 10, H: 10}, func(ev Event) (tea.Cmd, bool) {
		got = ev
		return nil, true
	})

	r.Dispatch(press(8, 9))
	if got.LocalX != 3 || got.LocalY != 2 || got.X != 8 || got.Y != 9 {
		t.Errorf("event = %+v", got)
	}
}

func TestRouter_CaptureFollowsPointer(t *testing.T) {
	r := NewRouter()
	var seen []Kind
	releaseCapture := r.Capture(func(ev Event) tea.Cmd {
		seen = append(seen, ev.Kind)
		return nil
	})

	r.Dispatch(motion(100, 100))
	r.Dispatch(press(100, 100))
	r.Dispatch(release(-1, -1))

	if len(seen) != 2 || seen[0] != KindMotion || seen[1] != KindRelease {
		t.Errorf("captured %v, want [motion release]", seen)
	}

	releaseCapture()
	releaseCapture()
	if r.Captures() != 0 {
		t.Errorf("Captures() = %d after release", r.Captures())
	}
	r.Dispatch(motion(1, 1))
	if len(seen) != 2 {
		t.Error("released capture still receives events")
	}
}

func TestRouter_CaptureMayReleaseItself(t *testing.T) {
	r := NewRouter()
	calls := 0
	var release1 func()
	release1 = r.Capture(func(ev Event) tea.Cmd {
		calls++
		release1()
		return nil
	})
	r.Capture(func(ev Event) tea.Cmd {
		calls++
		return nil
	})

	r.Dispatch(release(0, 0))
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if r.Captures() != 1 {
		t.Errorf("Captures() = %d, want 1", r.Captures())
	}

	r.ReleaseAll()
	if r.Captures() != 0 {
		t.Error("ReleaseAll left captures behind")
	}
}

func TestRouter_Leave(t *testing.T) {
	tr := &trace{}
	r := NewRouter()
	r.HitMap().Add("track", Rect{X: 0, Y: 0, W: 1, H: 10}, tr.handler("track", true))

	r.Dispatch(motion(0, 1))
	r.Dispatch(motion(0, 2))
	r.Dispatch(motion(4, 2))
	r.Dispatch(motion(5, 2))

	expected := []string{"track:motion", "track:motion", "track:leave"}
	if len(tr.calls) != len(expected) {
		t.Fatalf("calls = %v, want %v", tr.calls, expected)
	}
	for i := range expected {
		if tr.calls[i] != expected[i] {
			t.Errorf("calls[%d] = %q, want %q", i, tr.calls[i], expected[i])
		}
	}
}

func TestHitMap_Test(t *testing.T) {
	h := NewHitMap()
	h.Add("a", Rect{X: 0, Y: 0, W: 10, H: 10}, nil)
	h.Add("b", Rect{X: 5, Y: 5, W: 10, H: 10}, nil)

	tests := []struct {
		x, y     int
		expected string
	}{
		{1, 1, "a"},
		{6, 6, "b"},
		{14, 14, "b"},
		{20, 20, ""},
	}

	for _, tt := range tests {
		got := ""
		if r := h.Test(tt.x, tt.y); r != nil {
			got = r.ID
		}
		if got != tt.expected {
			t.Errorf("Test(%d, %d) = %q, want %q", tt.x, tt.y, got, tt.expected)
		}
	}

	if all := h.TestAll(6, 6); len(all) != 2 || all[0].ID != "b" {
		t.Errorf("TestAll(6, 6) = %+v", all)
	}

	h.Clear()
	if len(h.Regions()) != 0 {
		t.Error("Clear left regions")
	}
}
