package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 0.5, cfg.Scroll.WheelDamping)
	assert.Equal(t, 0.95, cfg.Scroll.Attenuation)
	assert.Equal(t, 0.5, cfg.Scroll.StopThreshold)
	assert.Equal(t, 10*time.Millisecond, cfg.Scroll.InertiaInterval)
	assert.Equal(t, 100*time.Millisecond, cfg.Scroll.SettleDelay)
	assert.Equal(t, 2.0, cfg.Scroll.PressSpeed)
	assert.Equal(t, TouchLeft, cfg.Scroll.TouchButton)
	assert.True(t, cfg.UI.ShowFooter)
	assert.True(t, cfg.State.Enabled)
}

func TestValidate_Repairs(t *testing.T) {
	cfg := Default()
	cfg.Scroll.Attenuation = 1.2
	cfg.Scroll.WheelDamping = -1
	cfg.Scroll.SettleDelay = 0
	cfg.Scroll.TouchButton = "thumb"
	cfg.UI.TabWidth = 0
	cfg.Keymap.Overrides = nil

	require.NoError(t, cfg.Validate())

	d := Default()
	assert.Equal(t, d.Scroll.Attenuation, cfg.Scroll.Attenuation)
	assert.Equal(t, d.Scroll.WheelDamping, cfg.Scroll.WheelDamping)
	assert.Equal(t, d.Scroll.SettleDelay, cfg.Scroll.SettleDelay)
	assert.Equal(t, TouchLeft, cfg.Scroll.TouchButton)
	assert.Equal(t, 4, cfg.UI.TabWidth)
	assert.NotNil(t, cfg.Keymap.Overrides)
}

func TestLoadFrom_MissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFrom_PartialJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "scroll": {"settleDelay": "250ms", "touchButton": "right"},
  "ui": {"wrap": true, "theme": {"name": "nord"}}
}`), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Scroll.SettleDelay)
	assert.Equal(t, TouchRight, cfg.Scroll.TouchButton)
	assert.Equal(t, 0.95, cfg.Scroll.Attenuation, "absent keys keep defaults")
	assert.Equal(t, 10*time.Millisecond, cfg.Scroll.InertiaInterval)
	assert.True(t, cfg.UI.Wrap)
	assert.True(t, cfg.UI.ShowFooter)
	assert.Equal(t, "nord", cfg.UI.Theme.Name)
}

func TestLoadFrom_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[scroll]
attenuation = 0.9
pressInterval = "20ms"
cellHeight = 20.0

[keymap.overrides]
quit = "ctrl+q"
`), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.Scroll.Attenuation)
	assert.Equal(t, 20*time.Millisecond, cfg.Scroll.PressInterval)
	assert.Equal(t, 20.0, cfg.Scroll.CellHeight)
	assert.Equal(t, "ctrl+q", cfg.Keymap.Overrides["quit"])
}

func TestLoadFrom_Errors(t *testing.T) {
	dir := t.TempDir()

	badJSON := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badJSON, []byte(`{"scroll":`), 0644))
	_, err := LoadFrom(badJSON)
	assert.Error(t, err)

	badDuration := filepath.Join(dir, "dur.json")
	require.NoError(t, os.WriteFile(badDuration, []byte(`{"scroll":{"settleDelay":"soon"}}`), 0644))
	_, err = LoadFrom(badDuration)
	assert.ErrorContains(t, err, "scroll.settleDelay")
}

func TestSaveAndLoad(t *testing.T) {
	for _, name := range []string{"config.json", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sub", name)
			cfg := Default()
			cfg.Scroll.SettleDelay = 300 * time.Millisecond
			cfg.UI.Theme.Overrides["scrollbarThumb"] = "#112233"

			require.NoError(t, SaveTo(cfg, path))
			loaded, err := LoadFrom(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestSave_UsesConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	SetTestConfigPath(path)
	t.Cleanup(ResetTestConfigPath)

	cfg := Default()
	cfg.UI.Wrap = true
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.True(t, loaded.UI.Wrap)
}
