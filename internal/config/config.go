// Package config loads and saves user configuration.
package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Scroll ScrollConfig
	Keymap KeymapConfig
	UI     UIConfig
	State  StateConfig
}

// ScrollConfig tunes the scroll engine and the terminal input mapping.
// Distances are in engine units; CellWidth and CellHeight convert cells to
// units.
type ScrollConfig struct {
	WheelDamping    float64
	Attenuation     float64
	StopThreshold   float64
	InertiaInterval time.Duration
	SettleDelay     time.Duration
	PressInterval   time.Duration
	PressSpeed      float64
	TapVelocity     float64 // units per millisecond
	InertiaScale    float64
	InertiaGain     float64
	CellWidth       float64
	CellHeight      float64
	WheelStepX      float64 // cells per wheel notch
	WheelStepY      float64
	// TouchButton grabs and flings the content: "left", "middle", "right"
	// or "none".
	TouchButton string
}

// KeymapConfig holds key binding overrides, action name to key.
type KeymapConfig struct {
	Overrides map[string]string
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter bool
	Wrap       bool
	Watch      bool // reload when the file changes on disk
	TabWidth   int
	Theme      ThemeConfig
}

// ThemeConfig configures the color theme.
type ThemeConfig struct {
	Name      string
	Overrides map[string]string
}

// StateConfig configures the scroll position store.
type StateConfig struct {
	Enabled    bool
	Path       string // empty means the default location
	MaxEntries int
}

// Touch buttons.
const (
	TouchLeft   = "left"
	TouchMiddle = "middle"
	TouchRight  = "right"
	TouchNone   = "none"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Scroll: ScrollConfig{
			WheelDamping:    0.5,
			Attenuation:     0.95,
			StopThreshold:   0.5,
			InertiaInterval: 10 * time.Millisecond,
			SettleDelay:     100 * time.Millisecond,
			PressInterval:   10 * time.Millisecond,
			PressSpeed:      2,
			TapVelocity:     0.5,
			InertiaScale:    100,
			InertiaGain:     0.5,
			CellWidth:       8,
			CellHeight:      16,
			WheelStepX:      10,
			WheelStepY:      3,
			TouchButton:     TouchLeft,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowFooter: true,
			Wrap:       false,
			Watch:      true,
			TabWidth:   4,
			Theme: ThemeConfig{
				Name:      "default",
				Overrides: make(map[string]string),
			},
		},
		State: StateConfig{
			Enabled:    true,
			MaxEntries: 500,
		},
	}
}

// Validate repairs out-of-range values with their defaults.
func (c *Config) Validate() error {
	d := Default()
	s := &c.Scroll

	positive := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	positive(&s.WheelDamping, d.Scroll.WheelDamping)
	positive(&s.StopThreshold, d.Scroll.StopThreshold)
	positive(&s.PressSpeed, d.Scroll.PressSpeed)
	positive(&s.TapVelocity, d.Scroll.TapVelocity)
	positive(&s.InertiaScale, d.Scroll.InertiaScale)
	positive(&s.InertiaGain, d.Scroll.InertiaGain)
	positive(&s.CellWidth, d.Scroll.CellWidth)
	positive(&s.CellHeight, d.Scroll.CellHeight)
	positive(&s.WheelStepX, d.Scroll.WheelStepX)
	positive(&s.WheelStepY, d.Scroll.WheelStepY)

	if s.Attenuation <= 0 || s.Attenuation >= 1 {
		s.Attenuation = d.Scroll.Attenuation
	}
	if s.InertiaInterval <= 0 {
		s.InertiaInterval = d.Scroll.InertiaInterval
	}
	if s.SettleDelay <= 0 {
		s.SettleDelay = d.Scroll.SettleDelay
	}
	if s.PressInterval <= 0 {
		s.PressInterval = d.Scroll.PressInterval
	}
	switch s.TouchButton {
	case TouchLeft, TouchMiddle, TouchRight, TouchNone:
	default:
		s.TouchButton = d.Scroll.TouchButton
	}

	if c.UI.TabWidth <= 0 {
		c.UI.TabWidth = d.UI.TabWidth
	}
	if c.UI.Theme.Name == "" {
		c.UI.Theme.Name = d.UI.Theme.Name
	}
	if c.UI.Theme.Overrides == nil {
		c.UI.Theme.Overrides = make(map[string]string)
	}
	if c.Keymap.Overrides == nil {
		c.Keymap.Overrides = make(map[string]string)
	}
	if c.State.MaxEntries <= 0 {
		c.State.MaxEntries = d.State.MaxEntries
	}
	return nil
}
