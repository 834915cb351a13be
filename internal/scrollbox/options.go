package scrollbox

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/scrollbox/internal/config"
	"github.com/wilbur182/scrollbox/internal/inertia"
	"github.com/wilbur182/scrollbox/internal/press"
	"github.com/wilbur182/scrollbox/internal/scroll"
	"github.com/wilbur182/scrollbox/internal/sched"
)

// Options configures a Model.
type Options struct {
	Engine scroll.Options

	// CellWidth and CellHeight are the size of one terminal cell in engine
	// units.
	CellWidth  float64
	CellHeight float64

	// WheelStepX and WheelStepY are cells per wheel notch, before damping.
	WheelStepX float64
	WheelStepY float64

	PressInterval time.Duration
	PressSpeed    float64 // units per press tick

	// TouchButton grabs and flings the content. MouseButtonNone disables it.
	TouchButton tea.MouseButton

	// Clock drives every timer; nil uses the wall clock.
	Clock sched.Clock
}

// DefaultOptions returns the defaults of config.Default.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default().Scroll)
}

// OptionsFromConfig maps the scroll section of the configuration.
func OptionsFromConfig(c config.ScrollConfig) Options {
	return Options{
		Engine: scroll.Options{
			WheelDamping: c.WheelDamping,
			TapVelocity:  c.TapVelocity,
			InertiaScale: c.InertiaScale,
			InertiaGain:  c.InertiaGain,
			SettleDelay:  c.SettleDelay,
			Inertia: inertia.Options{
				Interval:    c.InertiaInterval,
				Attenuation: c.Attenuation,
				Threshold:   c.StopThreshold,
			},
		},
		CellWidth:     c.CellWidth,
		CellHeight:    c.CellHeight,
		WheelStepX:    c.WheelStepX,
		WheelStepY:    c.WheelStepY,
		PressInterval: c.PressInterval,
		PressSpeed:    c.PressSpeed,
		TouchButton:   touchButton(c.TouchButton),
	}
}

func touchButton(name string) tea.MouseButton {
	switch name {
	case config.TouchMiddle:
		return tea.MouseButtonMiddle
	case config.TouchRight:
		return tea.MouseButtonRight
	case config.TouchNone:
		return tea.MouseButtonNone
	default:
		return tea.MouseButtonLeft
	}
}

func (o Options) withDefaults() Options {
	if o.CellWidth <= 0 {
		o.CellWidth = 8
	}
	if o.CellHeight <= 0 {
		o.CellHeight = 16
	}
	if o.WheelStepX <= 0 {
		o.WheelStepX = 10
	}
	if o.WheelStepY <= 0 {
		o.WheelStepY = 3
	}
	if o.PressInterval <= 0 {
		o.PressInterval = press.DefaultInterval
	}
	if o.PressSpeed <= 0 {
		o.PressSpeed = 2
	}
	if o.Clock == nil {
		o.Clock = sched.Real()
	}
	return o
}
