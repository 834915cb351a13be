package scroll

import (
	"time"

	"github.com/wilbur182/scrollbox/internal/inertia"
)

// Defaults. The velocity constants are empirically tuned; only the
// qualitative behaviour they produce is relied upon.
const (
	DefaultWheelDamping = 0.5
	DefaultTapVelocity  = 0.5 // units per millisecond
	DefaultInertiaScale = 100
	DefaultInertiaGain  = 0.5
	DefaultSettleDelay  = 100 * time.Millisecond
)

// Options tunes the engine. Zero fields take the defaults.
type Options struct {
	WheelDamping float64
	// TapVelocity is the average gesture speed below which a release is a
	// tap and starts no inertia.
	TapVelocity float64
	// InertiaScale and InertiaGain turn the average gesture speed into the
	// initial inertia velocity: -(distance/elapsed) * scale * gain.
	InertiaScale float64
	InertiaGain  float64
	// SettleDelay is the quiet period after the last offset change before
	// IsScrolling turns false.
	SettleDelay time.Duration
	Inertia     inertia.Options
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.WheelDamping <= 0 {
		o.WheelDamping = DefaultWheelDamping
	}
	if o.TapVelocity <= 0 {
		o.TapVelocity = DefaultTapVelocity
	}
	if o.InertiaScale <= 0 {
		o.InertiaScale = DefaultInertiaScale
	}
	if o.InertiaGain <= 0 {
		o.InertiaGain = DefaultInertiaGain
	}
	if o.SettleDelay <= 0 {
		o.SettleDelay = DefaultSettleDelay
	}
	if o.Inertia.Interval <= 0 {
		o.Inertia.Interval = inertia.DefaultInterval
	}
	if o.Inertia.Attenuation <= 0 || o.Inertia.Attenuation >= 1 {
		o.Inertia.Attenuation = inertia.DefaultAttenuation
	}
	if o.Inertia.Threshold <= 0 {
		o.Inertia.Threshold = inertia.DefaultThreshold
	}
	return o
}
