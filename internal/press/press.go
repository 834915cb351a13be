// Package press tracks how long a pointer button has been held down over a
// region, emitting an elapsed time that grows by a fixed step per tick.
package press

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/scrollbox/internal/sched"
)

// DefaultInterval is how often the elapsed time advances.
const DefaultInterval = 10 * time.Millisecond

// TickMsg advances the elapsed time of one tracker.
type TickMsg struct {
	ID  int
	Seq uint64
}

// Tracker is Idle until Press and Active until Release or Leave.
type Tracker struct {
	id       int
	clock    sched.Clock
	interval time.Duration
	timer    sched.Handle
	pressing bool
	elapsed  time.Duration
}

// New creates an idle tracker. A non-positive interval uses DefaultInterval.
func New(clock sched.Clock, interval time.Duration) *Tracker {
	if clock == nil {
		clock = sched.Real()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Tracker{
		id:       sched.NextID(),
		clock:    clock,
		interval: interval,
	}
}

// ID returns the id carried by this tracker's tick messages.
func (t *Tracker) ID() int {
	return t.id
}

// Press enters the Active state and starts ticking. Pressing again while
// Active restarts the timer from zero.
func (t *Tracker) Press() tea.Cmd {
	t.timer.Cancel()
	t.pressing = true
	t.elapsed = 0
	return t.schedule()
}

// Release returns to Idle and resets the elapsed time.
func (t *Tracker) Release() {
	t.timer.Cancel()
	t.pressing = false
	t.elapsed = 0
}

// Leave is called when the pointer leaves the region; it behaves like Release.
func (t *Tracker) Leave() {
	t.Release()
}

// Pressing reports whether the tracker is Active.
func (t *Tracker) Pressing() bool {
	return t.pressing
}

// Elapsed returns the time accumulated since Press, in interval steps.
func (t *Tracker) Elapsed() time.Duration {
	return t.elapsed
}

// Update consumes this tracker's ticks. changed is true when the elapsed
// time advanced.
func (t *Tracker) Update(msg tea.Msg) (changed bool, cmd tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != t.id {
		return false, nil
	}
	if !t.timer.Fire(tick.Seq) || !t.pressing {
		return false, nil
	}
	t.elapsed += t.interval
	return true, t.schedule()
}

func (t *Tracker) schedule() tea.Cmd {
	seq := t.timer.Arm()
	return t.clock.After(t.interval, TickMsg{ID: t.id, Seq: seq})
}
