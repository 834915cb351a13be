package press

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/scrollbox/internal/sched"
)

func newTestTracker() (*Tracker, *sched.Manual, *int) {
	clock := sched.NewManual(time.Unix(0, 0))
	tr := New(clock, 0)
	changes := 0
	return tr, clock, &changes
}

func deliver(tr *Tracker, changes *int) func(tea.Msg) {
	return func(msg tea.Msg) {
		if changed, _ := tr.Update(msg); changed {
			*changes++
		}
	}
}

func TestTracker_ElapsedGrowsWhilePressed(t *testing.T) {
	tr, clock, changes := newTestTracker()

	if cmd := tr.Press(); cmd == nil {
		t.Fatal("Press should schedule a tick")
	}
	if !tr.Pressing() {
		t.Fatal("expected Active after Press")
	}

	clock.Advance(55*time.Millisecond, deliver(tr, changes))

	if *changes != 5 {
		t.Errorf("changes = %d, want 5", *changes)
	}
	if tr.Elapsed() != 50*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 50ms", tr.Elapsed())
	}
}

func TestTracker_ReleaseStopsAndResets(t *testing.T) {
	tr, clock, changes := newTestTracker()
	tr.Press()
	clock.Advance(30*time.Millisecond, deliver(tr, changes))

	tr.Release()
	if tr.Pressing() || tr.Elapsed() != 0 {
		t.Errorf("after Release: pressing=%v elapsed=%v", tr.Pressing(), tr.Elapsed())
	}

	before := *changes
	clock.Advance(100*time.Millisecond, deliver(tr, changes))
	if *changes != before {
		t.Errorf("ticks after release: %d", *changes-before)
	}
}

func TestTracker_LeaveStops(t *testing.T) {
	tr, clock, changes := newTestTracker()
	tr.Press()
	tr.Leave()

	clock.Advance(100*time.Millisecond, deliver(tr, changes))
	if *changes != 0 || tr.Pressing() {
		t.Errorf("Leave did not stop the tracker: changes=%d pressing=%v", *changes, tr.Pressing())
	}
}

func TestTracker_RepressResetsTimer(t *testing.T) {
	tr, clock, changes := newTestTracker()
	tr.Press()
	clock.Advance(25*time.Millisecond, deliver(tr, changes))

	tr.Press()
	if tr.Elapsed() != 0 {
		t.Errorf("Elapsed() after re-press = %v, want 0", tr.Elapsed())
	}

	*changes = 0
	clock.Advance(20*time.Millisecond, deliver(tr, changes))

	// Only the new timer may tick: one timer, two intervals.
	if *changes != 2 {
		t.Errorf("changes after re-press = %d, want 2", *changes)
	}
	if tr.Elapsed() != 20*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 20ms", tr.Elapsed())
	}
}

func TestTracker_CustomInterval(t *testing.T) {
	clock := sched.NewManual(time.Unix(0, 0))
	tr := New(clock, 25*time.Millisecond)
	changes := 0
	tr.Press()
	clock.Advance(100*time.Millisecond, deliver(tr, &changes))
	if changes != 4 || tr.Elapsed() != 100*time.Millisecond {
		t.Errorf("changes=%d elapsed=%v", changes, tr.Elapsed())
	}
}

func TestTracker_IgnoresOtherMessages(t *testing.T) {
	tr, _, _ := newTestTracker()
	tr.Press()
	if changed, cmd := tr.Update(TickMsg{ID: tr.ID() + 99, Seq: 1}); changed || cmd != nil {
		t.Error("foreign tick should be ignored")
	}
}
