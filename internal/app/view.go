package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/wilbur182/scrollbox/internal/geom"
	"github.com/wilbur182/scrollbox/internal/styles"
)

const headerHeight = 1

// footerHeight is fixed per mode so a status message never moves the box.
func (m *Model) footerHeight() int {
	switch {
	case m.showHelp:
		return 1 + lipgloss.Height(m.help.FullHelpView(helpKeys{m.keymap}.FullHelp()))
	case m.cfg.UI.ShowFooter:
		return 1
	default:
		return 0
	}
}

func (m *Model) bodyHeight() int {
	return max(m.height-headerHeight-m.footerHeight(), 0)
}

// View renders the application. The hit map is rebuilt on every frame.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	m.router.HitMap().Clear()

	var body string
	switch {
	case m.doc != nil:
		body = m.box.View()
	case m.loading:
		body = m.skeleton.View(max(m.width-2, 0))
	case m.lastError != nil:
		body = styles.FooterError.Render("Cannot show " + m.path + ": " + m.lastError.Error())
	}
	body = lipgloss.NewStyle().
		Width(m.width).
		Height(m.bodyHeight()).
		MaxHeight(m.bodyHeight()).
		Render(body)

	parts := []string{m.renderHeader(), body}
	if m.footerHeight() > 0 {
		parts = append(parts, m.renderFooter())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderHeader() string {
	name := filepath.Base(m.path)
	kind := ""
	if m.doc != nil {
		name = m.doc.Name()
		kind = m.doc.Kind.String()
	}

	left := name
	if kind != "" {
		left += styles.Muted.Render("  " + kind)
	}

	right := []string{m.progress()}
	if m.wrap {
		right = append(right, "wrap")
	}
	if m.box.IsScrolling() {
		right = append(right, "scrolling")
	}
	rightText := styles.Muted.Render(strings.Join(right, "  "))

	inner := max(m.width-2, 0) // Header padding
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(rightText), 1)
	line := ansi.Truncate(left+strings.Repeat(" ", gap)+rightText, inner, "…")
	return styles.Header.Width(m.width).MaxWidth(m.width).Render(line)
}

// progress describes the vertical position like a pager does.
func (m *Model) progress() string {
	if m.doc == nil {
		return ""
	}
	span := -m.box.Engine().MinScroll().Top
	if span <= 0 {
		return "All"
	}
	top := m.box.Position().Top
	switch {
	case top <= 0:
		return "Top"
	case top >= span:
		return "Bot"
	}
	return fmt.Sprintf("%d%%", int(geom.Ratio(top, span)*100))
}

func (m *Model) renderFooter() string {
	var status string
	switch {
	case m.statusMsg != "" && m.statusIsError:
		status = styles.FooterError.Render(m.statusMsg)
	case m.statusMsg != "":
		status = styles.Footer.Render(m.statusMsg)
	case m.showHelp && m.currentVersion != "":
		status = styles.Footer.Render("scrollbox " + m.currentVersion)
	case !m.showHelp:
		status = styles.Footer.Render(m.help.ShortHelpView(helpKeys{m.keymap}.ShortHelp()))
	}
	status = lipgloss.NewStyle().MaxWidth(m.width).Render(status)

	if !m.showHelp {
		return status
	}
	full := styles.Footer.Render(m.help.FullHelpView(helpKeys{m.keymap}.FullHelp()))
	return lipgloss.JoinVertical(lipgloss.Left, full, status)
}
