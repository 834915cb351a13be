package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wilbur182/scrollbox/internal/sched"
	"github.com/wilbur182/scrollbox/internal/styles"
)

// SkeletonTickMsg advances the shimmer of one skeleton.
type SkeletonTickMsg struct {
	ID  int
	Seq uint64
}

// SkeletonTickInterval is the animation frame rate.
const SkeletonTickInterval = 80 * time.Millisecond

// Skeleton renders animated placeholder rows while a document loads.
type Skeleton struct {
	Rows      int
	RowWidths []int // percent of the width, cycled over the rows

	id       int
	clock    sched.Clock
	timer    sched.Handle
	frame    int
	shimmerW int
}

// NewSkeleton creates a stopped skeleton. A nil rowWidths uses a varied
// default pattern.
func NewSkeleton(clock sched.Clock, rows int, rowWidths []int) *Skeleton {
	if clock == nil {
		clock = sched.Real()
	}
	if rowWidths == nil {
		rowWidths = []int{85, 60, 75, 55, 80, 65, 70, 50}
	}
	return &Skeleton{
		Rows:      rows,
		RowWidths: rowWidths,
		id:        sched.NextID(),
		clock:     clock,
		shimmerW:  6,
	}
}

// Start begins the shimmer animation. Starting a running skeleton restarts
// its frame timer.
func (s *Skeleton) Start() tea.Cmd {
	return s.tick()
}

// Stop halts the animation; pending ticks are ignored.
func (s *Skeleton) Stop() {
	s.timer.Cancel()
}

// IsActive reports whether the animation is running.
func (s *Skeleton) IsActive() bool {
	return s.timer.Pending()
}

// Frame returns the current animation frame.
func (s *Skeleton) Frame() int {
	return s.frame
}

// Update advances the animation on this skeleton's own ticks.
func (s *Skeleton) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(SkeletonTickMsg)
	if !ok || tick.ID != s.id || !s.timer.Fire(tick.Seq) {
		return nil
	}
	s.frame++
	return s.tick()
}

func (s *Skeleton) tick() tea.Cmd {
	seq := s.timer.Arm()
	return s.clock.After(SkeletonTickInterval, SkeletonTickMsg{ID: s.id, Seq: seq})
}

// View renders the rows for the given width.
func (s *Skeleton) View(width int) string {
	if width < 10 {
		width = 10
	}

	// The shimmer band travels left to right, offset by two cells per row.
	cycleLen := width + s.shimmerW*2
	shimmerStart := s.frame % cycleLen

	dimStyle := lipgloss.NewStyle().Foreground(styles.TextSubtle)
	brightStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	rows := make([]string, 0, s.Rows)
	for row := range s.Rows {
		widthPct := s.RowWidths[row%len(s.RowWidths)]
		rowWidth := min(max((width*widthPct)/100, 5), width)
		rows = append(rows, s.renderShimmerLine(rowWidth, (shimmerStart+row*2)%cycleLen, dimStyle, brightStyle))
	}
	return strings.Join(rows, "\n")
}

func (s *Skeleton) renderShimmerLine(width, shimmerPos int, dimStyle, brightStyle lipgloss.Style) string {
	const (
		charDim    = "░"
		charBright = "▒"
	)

	var sb strings.Builder
	inShimmer := false
	segmentStart := 0

	for col := 0; col <= width; col++ {
		dist := col - (shimmerPos - s.shimmerW)
		nowInShimmer := dist >= 0 && dist < s.shimmerW && col < width

		if col == width || nowInShimmer != inShimmer {
			if n := col - segmentStart; n > 0 {
				if inShimmer {
					sb.WriteString(brightStyle.Render(strings.Repeat(charBright, n)))
				} else {
					sb.WriteString(dimStyle.Render(strings.Repeat(charDim, n)))
				}
			}
			segmentStart = col
			inShimmer = nowInShimmer
		}
	}
	return sb.String()
}
