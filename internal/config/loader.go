package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

var testConfigPath string

// ConfigPath returns ~/.config/scrollbox/config.json.
func ConfigPath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(home, ".config", "scrollbox", "config.json")
}

// SetTestConfigPath redirects ConfigPath for tests.
func SetTestConfigPath(path string) {
	testConfigPath = path
}

// ResetTestConfigPath undoes SetTestConfigPath.
func ResetTestConfigPath() {
	testConfigPath = ""
}

// Load reads the config from ConfigPath().
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config at path. Missing keys keep their defaults and
// a missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	sc := toSaveConfig(Default())
	if isTOML(path) {
		err = toml.Unmarshal(data, &sc)
	} else {
		err = json.Unmarshal(data, &sc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg, err := fromSaveConfig(sc)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
