// Package config loads the pinwm YAML configuration.
package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	ModKey          string            `yaml:"mod_key"`
	Tags            []string          `yaml:"tags"`
	PinnedTags      []string          `yaml:"pinned_tags"`
	Terminal        string            `yaml:"terminal"`
	Startup         string            `yaml:"startup"`
	Autostart       []string          `yaml:"autostart"`
	SpawnKeys       map[string]string `yaml:"spawn_keys"`
	Scratchpads     []Scratchpad      `yaml:"scratchpads"`
	Bar             Bar               `yaml:"bar"`
	Layout          Layout            `yaml:"layout"`
	Manage          []Rule            `yaml:"manage"`
	FloatingClasses []string          `yaml:"floating_classes"`
	Log             Log               `yaml:"log"`
}

type Scratchpad struct {
	Name    string  `yaml:"name"`
	Command string  `yaml:"command"`
	Class   string  `yaml:"class"`
	Key     string  `yaml:"key"`    // chord toggling it; MOD is the mod key
	Width   float64 `yaml:"width"`  // fraction of the screen (default: 0.8)
	Height  float64 `yaml:"height"` // fraction of the screen (default: 0.6)
}

type Bar struct {
	Command       string `yaml:"command"`
	OccupiedColor string `yaml:"occupied_color"` // default: white
	EmptyColor    string `yaml:"empty_color"`    // default: gray
	AccentColor   string `yaml:"accent_color"`   // default: #42cbf5
	ClickCommand  string `yaml:"click_command"`  // printf format, %d is the zero-based desktop
}

type Layout struct {
	MaxMain     int     `yaml:"max_main"`
	Ratio       float64 `yaml:"ratio"`
	RatioStep   float64 `yaml:"ratio_step"`
	InnerPx     int     `yaml:"inner_px"`
	OuterPx     int     `yaml:"outer_px"`
	BarHeightPx int     `yaml:"bar_height_px"`
}

// Rule applies to new windows whose WM_CLASS class matches Class. A rule
// with Float set centers the window at Width x Height of its screen.
type Rule struct {
	Class     string  `yaml:"class"`
	Float     bool    `yaml:"float"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Workspace string  `yaml:"workspace"`
}

type Log struct {
	Level string `yaml:"level"` // trace, debug, info or error
	File  string `yaml:"file"`  // stderr when empty
}

// DefaultPath is $XDG_CONFIG_HOME/pinwm/config.yaml, falling back to
// ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".config", "pinwm", "config.yaml")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "pinwm", "config.yaml")
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
