// Package inertia simulates post-release momentum as an exponentially
// decaying velocity sampled at a fixed interval.
package inertia

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/scrollbox/internal/geom"
	"github.com/wilbur182/scrollbox/internal/sched"
)

const (
	DefaultInterval    = 10 * time.Millisecond
	DefaultAttenuation = 0.95
	DefaultThreshold   = 0.5
)

// Options tunes the decay. Zero fields take the defaults.
type Options struct {
	Interval    time.Duration
	Attenuation float64 // per-tick velocity multiplier, in (0, 1)
	Threshold   float64 // sequence stops once both |vx| and |vy| fall below this
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.Attenuation <= 0 || o.Attenuation >= 1 {
		o.Attenuation = DefaultAttenuation
	}
	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}
	return o
}

// TickFunc receives the velocity of the current tick, before decay.
type TickFunc func(vx, vy float64) tea.Cmd

// TickMsg drives one decay step.
type TickMsg struct {
	ID  int
	Seq uint64
}

// Simulator runs at most one decay sequence at a time.
type Simulator struct {
	id     int
	clock  sched.Clock
	opts   Options
	timer  sched.Handle
	vel    geom.Vec
	onTick TickFunc
}

// New creates an idle simulator.
func New(clock sched.Clock, opts Options) *Simulator {
	if clock == nil {
		clock = sched.Real()
	}
	return &Simulator{
		id:    sched.NextID(),
		clock: clock,
		opts:  opts.withDefaults(),
	}
}

// ID returns the id carried by this simulator's tick messages.
func (s *Simulator) ID() int {
	return s.id
}

// Start begins a new decay sequence from (vx, vy), cancelling any running
// one. The first step runs immediately; the returned command carries the
// callback's command and the next tick.
func (s *Simulator) Start(vx, vy float64, onTick TickFunc) tea.Cmd {
	s.Cancel()
	if s.belowThreshold(vx, vy) || onTick == nil {
		return nil
	}
	s.vel = geom.Vec{X: vx, Y: vy}
	s.onTick = onTick
	return s.step()
}

// Cancel stops any pending tick. Safe to call when idle.
func (s *Simulator) Cancel() {
	s.timer.Cancel()
	s.vel = geom.Vec{}
	s.onTick = nil
}

// Active reports whether a sequence is running.
func (s *Simulator) Active() bool {
	return s.timer.Pending()
}

// Update consumes this simulator's tick messages and ignores everything else.
func (s *Simulator) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != s.id {
		return nil
	}
	if !s.timer.Fire(tick.Seq) {
		return nil
	}
	return s.step()
}

// step reports the current velocity only when its decayed successor is
// still above the threshold; the tick that would decay below it ends the
// sequence silently.
func (s *Simulator) step() tea.Cmd {
	cur := s.vel
	onTick := s.onTick
	next := cur.Scale(s.opts.Attenuation)
	if s.belowThreshold(next.X, next.Y) {
		s.vel = geom.Vec{}
		s.onTick = nil
		return nil
	}

	s.vel = next
	seq := s.timer.Arm()
	tickCmd := s.clock.After(s.opts.Interval, TickMsg{ID: s.id, Seq: seq})
	return tea.Batch(onTick(cur.X, cur.Y), tickCmd)
}

func (s *Simulator) belowThreshold(vx, vy float64) bool {
	return math.Abs(vx) < s.opts.Threshold && math.Abs(vy) < s.opts.Threshold
}

// MaxTicks returns an upper bound on the number of callbacks a sequence
// started at (vx, vy) can produce.
func MaxTicks(vx, vy float64, opts Options) int {
	opts = opts.withDefaults()
	peak := math.Max(math.Abs(vx), math.Abs(vy))
	if peak*opts.Attenuation < opts.Threshold {
		return 0
	}
	return int(math.Ceil(math.Log(opts.Threshold/peak)/math.Log(opts.Attenuation)))
}
