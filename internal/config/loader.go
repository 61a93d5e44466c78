package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

// Load reads the config at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func numbered(from, to int) []string {
	var s []string
	for i := from; i <= to; i++ {
		s = append(s, strconv.Itoa(i))
	}
	return s
}

func applyDefaults(cfg *Config) {
	if cfg.ModKey == "" {
		cfg.ModKey = "M"
	}
	if len(cfg.Tags) == 0 {
		cfg.Tags = numbered(1, 12)
	}
	if cfg.PinnedTags == nil {
		cfg.PinnedTags = numbered(1, 9)
	}
	if cfg.Terminal == "" {
		cfg.Terminal = "alacritty"
	}
	if cfg.Scratchpads == nil {
		cfg.Scratchpads = []Scratchpad{{
			Name:    "term",
			Command: "alacritty --class floatTerm",
			Class:   "floatTerm",
			Key:     "MOD-slash",
		}}
	}
	if cfg.SpawnKeys == nil {
		cfg.SpawnKeys = map[string]string{
			"MOD-F2":        "thunar",
			"MOD-F3":        "firefox",
			"MOD-F4":        "code",
			"MOD-C-space":   "playerctl play-pause",
			"MOD-C-Left":    "playerctl previous",
			"MOD-C-Right":   "playerctl next",
			"C-KP_Add":      "amixer -D pulse sset Master 5%+",
			"C-KP_Subtract": "amixer -D pulse sset Master 5%-",
		}
	}
	for i := range cfg.Scratchpads {
		p := &cfg.Scratchpads[i]
		if p.Width == 0 {
			p.Width = 0.8
		}
		if p.Height == 0 {
			p.Height = 0.6
		}
	}
	if cfg.Bar.OccupiedColor == "" {
		cfg.Bar.OccupiedColor = "white"
	}
	if cfg.Bar.EmptyColor == "" {
		cfg.Bar.EmptyColor = "gray"
	}
	if cfg.Bar.AccentColor == "" {
		cfg.Bar.AccentColor = "#42cbf5"
	}
	if cfg.Layout.MaxMain == 0 {
		cfg.Layout.MaxMain = 1
	}
	if cfg.Layout.Ratio == 0 {
		cfg.Layout.Ratio = 0.6
	}
	if cfg.Layout.RatioStep == 0 {
		cfg.Layout.RatioStep = 0.1
	}
	if cfg.Layout.InnerPx == 0 {
		cfg.Layout.InnerPx = 5
	}
	if cfg.Layout.OuterPx == 0 {
		cfg.Layout.OuterPx = 5
	}
	if cfg.Layout.BarHeightPx == 0 {
		cfg.Layout.BarHeightPx = 30
	}
	for i := range cfg.Manage {
		r := &cfg.Manage[i]
		if r.Float && r.Width == 0 {
			r.Width = 0.8
		}
		if r.Float && r.Height == 0 {
			r.Height = 0.6
		}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func fraction(f float64) bool { return f > 0 && f <= 1 }

// Validate reports the first problem found, wrapping ErrInvalid.
func (c *Config) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
	}
	switch c.ModKey {
	case "M", "A", "C", "S":
	default:
		return bad("mod_key %q is not one of M, A, C, S", c.ModKey)
	}
	tags := make(map[string]bool, len(c.Tags))
	for _, t := range c.Tags {
		if t == "" || strings.ContainsAny(t, " \t\n") {
			return bad("tag %q", t)
		}
		if tags[t] {
			return bad("duplicate tag %q", t)
		}
		tags[t] = true
	}
	pinned := make(map[string]bool, len(c.PinnedTags))
	for _, t := range c.PinnedTags {
		if !tags[t] {
			return bad("pinned tag %q is not in tags", t)
		}
		if pinned[t] {
			return bad("duplicate pinned tag %q", t)
		}
		pinned[t] = true
	}
	names := make(map[string]bool, len(c.Scratchpads))
	for _, p := range c.Scratchpads {
		switch {
		case p.Name == "":
			return bad("scratchpad without a name")
		case names[p.Name]:
			return bad("duplicate scratchpad %q", p.Name)
		case p.Command == "":
			return bad("scratchpad %q has no command", p.Name)
		case p.Class == "":
			return bad("scratchpad %q has no class", p.Name)
		case !fraction(p.Width) || !fraction(p.Height):
			return bad("scratchpad %q size %gx%g", p.Name, p.Width, p.Height)
		}
		names[p.Name] = true
	}
	for chord, cmd := range c.SpawnKeys {
		if chord == "" || strings.TrimSpace(cmd) == "" {
			return bad("spawn key %q with command %q", chord, cmd)
		}
	}
	for _, r := range c.Manage {
		if r.Class == "" {
			return bad("manage rule without a class")
		}
		if r.Workspace != "" && !tags[r.Workspace] {
			return bad("manage rule for %q names unknown workspace %q", r.Class, r.Workspace)
		}
		if r.Float && (!fraction(r.Width) || !fraction(r.Height)) {
			return bad("manage rule for %q size %gx%g", r.Class, r.Width, r.Height)
		}
	}
	if c.Bar.ClickCommand != "" && strings.Count(c.Bar.ClickCommand, "%d") != 1 {
		return bad("bar click_command needs exactly one %%d")
	}
	l := c.Layout
	if l.MaxMain < 0 || l.Ratio <= 0 || l.Ratio >= 1 || l.RatioStep <= 0 || l.RatioStep >= 1 {
		return bad("layout max_main %d ratio %g ratio_step %g", l.MaxMain, l.Ratio, l.RatioStep)
	}
	if l.InnerPx < 0 || l.OuterPx < 0 || l.BarHeightPx < 0 {
		return bad("negative layout spacing")
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "error":
	default:
		return bad("log level %q", c.Log.Level)
	}
	return nil
}
