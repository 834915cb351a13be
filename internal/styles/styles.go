// Package styles holds the color palette and lipgloss styles shared by the
// scrollbars and the application chrome.
package styles

import "github.com/charmbracelet/lipgloss"

// Colors, set by ApplyTheme.
var (
	Primary     lipgloss.Color
	Accent      lipgloss.Color
	Error       lipgloss.Color
	TextPrimary lipgloss.Color
	TextMuted   lipgloss.Color
	TextSubtle  lipgloss.Color
	BgSecondary lipgloss.Color

	ScrollbarTrackColor       lipgloss.Color
	ScrollbarThumbColor       lipgloss.Color
	ScrollbarThumbActiveColor lipgloss.Color

	CurrentSyntaxTheme   string
	CurrentMarkdownTheme string
)

// Styles, rebuilt by ApplyTheme.
var (
	Header      lipgloss.Style
	Footer      lipgloss.Style
	FooterError lipgloss.Style
	Muted       lipgloss.Style
	KeyHint     lipgloss.Style
)

func init() {
	applyColors(DefaultTheme.Colors)
}

func rebuildStyles() {
	Header = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BgSecondary).
		Bold(true).
		Padding(0, 1)

	Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	FooterError = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true).
		Padding(0, 1)

	Muted = lipgloss.NewStyle().Foreground(TextMuted)

	KeyHint = lipgloss.NewStyle().Foreground(Accent)
}
