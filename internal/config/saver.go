package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// saveConfig is the marshaling intermediary that uses string durations.
type saveConfig struct {
	Scroll saveScrollConfig `json:"scroll" toml:"scroll"`
	Keymap saveKeymapConfig `json:"keymap" toml:"keymap"`
	UI     saveUIConfig     `json:"ui" toml:"ui"`
	State  saveStateConfig  `json:"state" toml:"state"`
}

type saveScrollConfig struct {
	WheelDamping    float64 `json:"wheelDamping" toml:"wheelDamping"`
	Attenuation     float64 `json:"attenuation" toml:"attenuation"`
	StopThreshold   float64 `json:"stopThreshold" toml:"stopThreshold"`
	InertiaInterval string  `json:"inertiaInterval" toml:"inertiaInterval"`
	SettleDelay     string  `json:"settleDelay" toml:"settleDelay"`
	PressInterval   string  `json:"pressInterval" toml:"pressInterval"`
	PressSpeed      float64 `json:"pressSpeed" toml:"pressSpeed"`
	TapVelocity     float64 `json:"tapVelocity" toml:"tapVelocity"`
	InertiaScale    float64 `json:"inertiaScale" toml:"inertiaScale"`
	InertiaGain     float64 `json:"inertiaGain" toml:"inertiaGain"`
	CellWidth       float64 `json:"cellWidth" toml:"cellWidth"`
	CellHeight      float64 `json:"cellHeight" toml:"cellHeight"`
	WheelStepX      float64 `json:"wheelStepX" toml:"wheelStepX"`
	WheelStepY      float64 `json:"wheelStepY" toml:"wheelStepY"`
	TouchButton     string  `json:"touchButton" toml:"touchButton"`
}

type saveKeymapConfig struct {
	Overrides map[string]string `json:"overrides,omitempty" toml:"overrides,omitempty"`
}

type saveUIConfig struct {
	ShowFooter bool            `json:"showFooter" toml:"showFooter"`
	Wrap       bool            `json:"wrap" toml:"wrap"`
	Watch      bool            `json:"watch" toml:"watch"`
	TabWidth   int             `json:"tabWidth" toml:"tabWidth"`
	Theme      saveThemeConfig `json:"theme" toml:"theme"`
}

type saveThemeConfig struct {
	Name      string            `json:"name" toml:"name"`
	Overrides map[string]string `json:"overrides,omitempty" toml:"overrides,omitempty"`
}

type saveStateConfig struct {
	Enabled    bool   `json:"enabled" toml:"enabled"`
	Path       string `json:"path,omitempty" toml:"path,omitempty"`
	MaxEntries int    `json:"maxEntries" toml:"maxEntries"`
}

// toSaveConfig converts Config to the serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	s := cfg.Scroll
	return saveConfig{
		Scroll: saveScrollConfig{
			WheelDamping:    s.WheelDamping,
			Attenuation:     s.Attenuation,
			StopThreshold:   s.StopThreshold,
			InertiaInterval: s.InertiaInterval.String(),
			SettleDelay:     s.SettleDelay.String(),
			PressInterval:   s.PressInterval.String(),
			PressSpeed:      s.PressSpeed,
			TapVelocity:     s.TapVelocity,
			InertiaScale:    s.InertiaScale,
			InertiaGain:     s.InertiaGain,
			CellWidth:       s.CellWidth,
			CellHeight:      s.CellHeight,
			WheelStepX:      s.WheelStepX,
			WheelStepY:      s.WheelStepY,
			TouchButton:     s.TouchButton,
		},
		Keymap: saveKeymapConfig{Overrides: copyMap(cfg.Keymap.Overrides)},
		UI: saveUIConfig{
			ShowFooter: cfg.UI.ShowFooter,
			Wrap:       cfg.UI.Wrap,
			Watch:      cfg.UI.Watch,
			TabWidth:   cfg.UI.TabWidth,
			Theme: saveThemeConfig{
				Name:      cfg.UI.Theme.Name,
				Overrides: copyMap(cfg.UI.Theme.Overrides),
			},
		},
		State: saveStateConfig{
			Enabled:    cfg.State.Enabled,
			Path:       cfg.State.Path,
			MaxEntries: cfg.State.MaxEntries,
		},
	}
}

// fromSaveConfig converts back, parsing durations.
func fromSaveConfig(sc saveConfig) (*Config, error) {
	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"scroll.inertiaInterval", sc.Scroll.InertiaInterval, new(time.Duration)},
		{"scroll.settleDelay", sc.Scroll.SettleDelay, new(time.Duration)},
		{"scroll.pressInterval", sc.Scroll.PressInterval, new(time.Duration)},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = v
	}

	s := sc.Scroll
	return &Config{
		Scroll: ScrollConfig{
			WheelDamping:    s.WheelDamping,
			Attenuation:     s.Attenuation,
			StopThreshold:   s.StopThreshold,
			InertiaInterval: *durations[0].dst,
			SettleDelay:     *durations[1].dst,
			PressInterval:   *durations[2].dst,
			PressSpeed:      s.PressSpeed,
			TapVelocity:     s.TapVelocity,
			InertiaScale:    s.InertiaScale,
			InertiaGain:     s.InertiaGain,
			CellWidth:       s.CellWidth,
			CellHeight:      s.CellHeight,
			WheelStepX:      s.WheelStepX,
			WheelStepY:      s.WheelStepY,
			TouchButton:     s.TouchButton,
		},
		Keymap: KeymapConfig{Overrides: copyMap(sc.Keymap.Overrides)},
		UI: UIConfig{
			ShowFooter: sc.UI.ShowFooter,
			Wrap:       sc.UI.Wrap,
			Watch:      sc.UI.Watch,
			TabWidth:   sc.UI.TabWidth,
			Theme: ThemeConfig{
				Name:      sc.UI.Theme.Name,
				Overrides: copyMap(sc.UI.Theme.Overrides),
			},
		},
		State: StateConfig{
			Enabled:    sc.State.Enabled,
			Path:       sc.State.Path,
			MaxEntries: sc.State.MaxEntries,
		},
	}, nil
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Save writes the config to ConfigPath().
func Save(cfg *Config) error {
	return SaveTo(cfg, ConfigPath())
}

// SaveTo writes the config to path, as TOML when path ends in .toml and as
// JSON otherwise.
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	sc := toSaveConfig(cfg)
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(sc)
	} else {
		data, err = json.MarshalIndent(sc, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
