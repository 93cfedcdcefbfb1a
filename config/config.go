// Package config loads the tunables that govern tracker promotion
// thresholds and the short-window size used by stats.Window, following
// the same load-or-create-default pattern the rest of the pack uses for
// its own YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/omniscio/omniscio-go/tracker"
)

// Settings are the overridable knobs of the predictor. Defaults match the
// thresholds hardcoded in the original implementation this predictor is
// based on.
type Settings struct {
	// SizeUpgradeThreshold is the distinct-value count past which a size
	// tracker abandons grammar-based prediction for the running average.
	SizeUpgradeThreshold int `yaml:"size_upgrade_threshold"`

	// OffsetUpgradeThreshold is the distinct-descriptor count past which
	// an offset tracker abandons grammar-based prediction and always
	// predicts a sequential (Following) offset.
	OffsetUpgradeThreshold int `yaml:"offset_upgrade_threshold"`

	// TimeWindowSize is the number of most recent transition timings
	// kept for the short-window blend in stats.Window.
	TimeWindowSize int `yaml:"time_window_size"`
}

// DefaultSettings returns the settings the predictor uses when no config
// file is present.
func DefaultSettings() Settings {
	return Settings{
		SizeUpgradeThreshold:   tracker.DefaultSizeThreshold,
		OffsetUpgradeThreshold: tracker.DefaultOffsetThreshold,
		TimeWindowSize:         32,
	}
}

// Apply overlays non-zero fields of o onto a copy of s, the way the
// editor's own config layers user overrides on top of its defaults.
func (s Settings) Apply(o Settings) Settings {
	out := s
	if o.SizeUpgradeThreshold != 0 {
		out.SizeUpgradeThreshold = o.SizeUpgradeThreshold
	}
	if o.OffsetUpgradeThreshold != 0 {
		out.OffsetUpgradeThreshold = o.OffsetUpgradeThreshold
	}
	if o.TimeWindowSize != 0 {
		out.TimeWindowSize = o.TimeWindowSize
	}
	return out
}

// Path returns the path to the predictor's configuration file.
func Path() (string, error) {
	return xdg.ConfigFile(filepath.Join("omniscio", "config.yaml"))
}

// LoadOrCreate loads the config file if it exists, overlaying it onto
// DefaultSettings, and creates a default config file at Path otherwise.
func LoadOrCreate() (Settings, error) {
	path, err := Path()
	if err != nil {
		return Settings{}, fmt.Errorf("config: resolve path: %w", err)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := saveDefault(path); err != nil {
			return Settings{}, fmt.Errorf("config: write default to %q: %w", path, err)
		}
		return DefaultSettings(), nil
	} else if err != nil {
		return Settings{}, fmt.Errorf("config: read %q: %w", path, err)
	}

	var overlay Settings
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Settings{}, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return DefaultSettings().Apply(overlay), nil
}

func saveDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}
	data, err := yaml.Marshal(DefaultSettings())
	if err != nil {
		return fmt.Errorf("yaml.Marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}
	return nil
}
