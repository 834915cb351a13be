// Package sched provides the timer plumbing shared by the scroll engine's
// settle timer, inertia ticks and press-and-hold ticks.
//
// Timers are bubbletea commands that deliver a message after a delay. A
// delivered message carries the sequence number it was armed with; a Handle
// remembers only the latest sequence, so re-arming or cancelling a timer
// turns every older delivery into a no-op.
package sched

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Clock supplies the current time and schedules one-shot messages.
type Clock interface {
	Now() time.Time
	// After returns a command that delivers msg once d has elapsed.
	After(d time.Duration, msg tea.Msg) tea.Cmd
}

// Real returns the wall clock backed by tea.Tick.
func Real() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

// Handle is a cancellable slot for one timer family. The zero value is idle.
type Handle struct {
	seq     uint64
	pending bool
}

// Arm invalidates any pending timer and returns the sequence number the new
// timer must carry.
func (h *Handle) Arm() uint64 {
	h.seq++
	h.pending = true
	return h.seq
}

// Cancel invalidates the pending timer. Safe to call when idle.
func (h *Handle) Cancel() {
	if !h.pending {
		return
	}
	h.seq++
	h.pending = false
}

// Fire reports whether a delivery with the given sequence is the live one,
// and marks the handle idle if so.
func (h *Handle) Fire(seq uint64) bool {
	if !h.pending || seq != h.seq {
		return false
	}
	h.pending = false
	return true
}

// Pending reports whether a timer is armed and not yet fired or cancelled.
func (h *Handle) Pending() bool {
	return h.pending
}

var lastID atomic.Int64

// NextID returns a process-unique owner id so several components can share
// one program without consuming each other's timer messages.
func NextID() int {
	return int(lastID.Add(1))
}
