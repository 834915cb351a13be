package sched

import (
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Manual is a Clock whose time only moves when Advance is called. Scheduled
// messages are delivered synchronously, in due order, from Advance.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	queue   []scheduled
	counter uint64
}

type scheduled struct {
	at    time.Time
	order uint64
	msg   tea.Msg
}

// NewManual creates a manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// After registers msg for delivery at Now()+d. Registration happens
// immediately; the returned command is a no-op so callers can still treat a
// nil command as "nothing scheduled".
func (m *Manual) After(d time.Duration, msg tea.Msg) tea.Cmd {
	m.mu.Lock()
	m.counter++
	m.queue = append(m.queue, scheduled{at: m.now.Add(d), order: m.counter, msg: msg})
	m.mu.Unlock()
	return func() tea.Msg { return nil }
}

// Pending returns the number of undelivered messages.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Advance moves time forward by d, handing every message that falls due to
// deliver. Messages scheduled by deliver itself are honoured if they fall
// inside the window.
func (m *Manual) Advance(d time.Duration, deliver func(tea.Msg)) {
	m.mu.Lock()
	target := m.now.Add(d)
	for {
		i := m.nextDueLocked(target)
		if i < 0 {
			break
		}
		next := m.queue[i]
		m.queue = append(m.queue[:i], m.queue[i+1:]...)
		m.now = next.at
		m.mu.Unlock()
		if deliver != nil {
			deliver(next.msg)
		}
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
}

// Drain delivers messages until the queue is empty or limit deliveries have
// happened. It returns the number delivered.
func (m *Manual) Drain(limit int, deliver func(tea.Msg)) int {
	n := 0
	for n < limit {
		m.mu.Lock()
		if len(m.queue) == 0 {
			m.mu.Unlock()
			break
		}
		sort.SliceStable(m.queue, func(i, j int) bool {
			return m.less(m.queue[i], m.queue[j])
		})
		next := m.queue[0]
		m.queue = m.queue[1:]
		if next.at.After(m.now) {
			m.now = next.at
		}
		m.mu.Unlock()
		if deliver != nil {
			deliver(next.msg)
		}
		n++
	}
	return n
}

func (m *Manual) nextDueLocked(target time.Time) int {
	best := -1
	for i, s := range m.queue {
		if s.at.After(target) {
			continue
		}
		if best < 0 || m.less(s, m.queue[best]) {
			best = i
		}
	}
	return best
}

func (m *Manual) less(a, b scheduled) bool {
	if !a.at.Equal(b.at) {
		return a.at.Before(b.at)
	}
	return a.order < b.order
}
