package styles

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// themeMu protects access to themeRegistry and currentTheme
var themeMu sync.RWMutex

// hexColorRegex validates hex color codes (#RRGGBB or #RRGGBBAA with alpha)
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// ColorPalette holds all theme colors
type ColorPalette struct {
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
	Error   string `json:"error"`

	TextPrimary string `json:"textPrimary"`
	TextMuted   string `json:"textMuted"`
	TextSubtle  string `json:"textSubtle"`

	BgSecondary string `json:"bgSecondary"`

	// Scrollbar colors. Empty values fall back to the text colors.
	ScrollbarTrack       string `json:"scrollbarTrack"`
	ScrollbarThumb       string `json:"scrollbarThumb"`
	ScrollbarThumbActive string `json:"scrollbarThumbActive"`

	// Third-party theme names
	SyntaxTheme   string `json:"syntaxTheme"`   // Chroma theme name
	MarkdownTheme string `json:"markdownTheme"` // Glamour theme name
}

// Theme represents a complete theme configuration
type Theme struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Colors      ColorPalette `json:"colors"`
}

// Built-in themes
var (
	DefaultTheme = Theme{
		Name:        "default",
		DisplayName: "Default Dark",
		Colors: ColorPalette{
			Primary:       "#7C3AED", // Purple
			Accent:        "#F59E0B", // Amber
			Error:         "#EF4444", // Red
			TextPrimary:   "#F9FAFB",
			TextMuted:     "#6B7280",
			TextSubtle:    "#4B5563",
			BgSecondary:   "#1F2937",
			SyntaxTheme:   "monokai",
			MarkdownTheme: "dark",
		},
	}

	DraculaTheme = Theme{
		Name:        "dracula",
		DisplayName: "Dracula",
		Colors: ColorPalette{
			Primary:       "#BD93F9", // Purple
			Accent:        "#FFB86C", // Orange
			Error:         "#FF5555", // Red
			TextPrimary:   "#F8F8F2", // Foreground
			TextMuted:     "#6272A4", // Comment
			TextSubtle:    "#44475A", // Current Line
			BgSecondary:   "#343746",
			SyntaxTheme:   "dracula",
			MarkdownTheme: "dracula",
		},
	}

	NordTheme = Theme{
		Name:        "nord",
		DisplayName: "Nord",
		Colors: ColorPalette{
			Primary:       "#88C0D0", // Frost Cyan
			Accent:        "#EBCB8B", // Aurora Yellow
			Error:         "#BF616A", // Aurora Red
			TextPrimary:   "#D8DEE9", // Snow Storm 1
			TextMuted:     "#4C566A", // Polar Night 4
			TextSubtle:    "#434C5E", // Polar Night 3
			BgSecondary:   "#3B4252", // Polar Night 2
			SyntaxTheme:   "nord",
			MarkdownTheme: "dark",
		},
	}

	TokyoNightTheme = Theme{
		Name:        "tokyo-night",
		DisplayName: "Tokyo Night",
		Colors: ColorPalette{
			Primary:       "#7AA2F7", // Blue
			Accent:        "#FF9E64", // Orange
			Error:         "#F7768E", // Red
			TextPrimary:   "#C0CAF5",
			TextMuted:     "#565F89",
			TextSubtle:    "#414868",
			BgSecondary:   "#24283B",
			SyntaxTheme:   "tokyo-night",
			MarkdownTheme: "tokyo-night",
		},
	}
)

// themeRegistry holds all available themes
var themeRegistry = map[string]Theme{
	"default":     DefaultTheme,
	"dracula":     DraculaTheme,
	"nord":        NordTheme,
	"tokyo-night": TokyoNightTheme,
}

var currentTheme = "default"

// IsValidHexColor checks if a string is a valid hex color code (#RRGGBB or #RRGGBBAA)
func IsValidHexColor(hex string) bool {
	return hexColorRegex.MatchString(hex)
}

// IsValidTheme checks if a theme name exists in the registry
func IsValidTheme(name string) bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	_, ok := themeRegistry[name]
	return ok
}

// GetTheme returns a theme by name, or the default theme if not found
func GetTheme(name string) Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if theme, ok := themeRegistry[name]; ok {
		return theme
	}
	return DefaultTheme
}

// GetCurrentThemeName returns the name of the currently active theme
func GetCurrentThemeName() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// ListThemes returns the names of all available themes in sorted order
func ListThemes() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyTheme applies a theme by name with optional color overrides keyed by
// palette JSON name. Invalid override colors are ignored.
//
// Not safe for concurrent reads of the style variables: call it before the
// program starts.
func ApplyTheme(name string, overrides map[string]string) {
	theme := GetTheme(name)
	for key, value := range overrides {
		applyOverride(&theme.Colors, key, value)
	}
	applyColors(theme.Colors)

	themeMu.Lock()
	currentTheme = theme.Name
	themeMu.Unlock()
}

func applyOverride(p *ColorPalette, key, value string) {
	if !IsValidHexColor(value) {
		return
	}
	switch strings.ToLower(key) {
	case "primary":
		p.Primary = value
	case "accent":
		p.Accent = value
	case "error":
		p.Error = value
	case "textprimary":
		p.TextPrimary = value
	case "textmuted":
		p.TextMuted = value
	case "textsubtle":
		p.TextSubtle = value
	case "bgsecondary":
		p.BgSecondary = value
	case "scrollbartrack":
		p.ScrollbarTrack = value
	case "scrollbarthumb":
		p.ScrollbarThumb = value
	case "scrollbarthumbactive":
		p.ScrollbarThumbActive = value
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func applyColors(c ColorPalette) {
	Primary = lipgloss.Color(c.Primary)
	Accent = lipgloss.Color(c.Accent)
	Error = lipgloss.Color(c.Error)
	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextMuted = lipgloss.Color(c.TextMuted)
	TextSubtle = lipgloss.Color(c.TextSubtle)
	BgSecondary = lipgloss.Color(c.BgSecondary)

	ScrollbarTrackColor = lipgloss.Color(orDefault(c.ScrollbarTrack, c.TextSubtle))
	ScrollbarThumbColor = lipgloss.Color(orDefault(c.ScrollbarThumb, c.TextMuted))
	ScrollbarThumbActiveColor = lipgloss.Color(orDefault(c.ScrollbarThumbActive, c.Primary))

	CurrentSyntaxTheme = c.SyntaxTheme
	CurrentMarkdownTheme = c.MarkdownTheme

	rebuildStyles()
}

// GetSyntaxTheme returns the current syntax highlighting theme name
func GetSyntaxTheme() string {
	return CurrentSyntaxTheme
}

// GetMarkdownTheme returns the current markdown rendering theme name
func GetMarkdownTheme() string {
	return CurrentMarkdownTheme
}
