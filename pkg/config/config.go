// Package config loads the optional .tmv.yaml configuration file:
// palette selection, label thresholds, layout depth, and extra ignore
// patterns. Configuration only shapes presentation and filtering; it
// never changes layout math or mutation semantics.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file tmv looks for.
const FileName = ".tmv.yaml"

// DefaultThemeName is used when neither flag nor config picks one.
const DefaultThemeName = "terrain"

// Config is the root of a .tmv.yaml file.
type Config struct {
	// Theme names the active palette (built-in or from Themes).
	Theme string `yaml:"theme,omitempty"`

	// LabelMinWidth is the block width in cells below which the
	// renderer draws no label.
	LabelMinWidth int `yaml:"label_min_width,omitempty"`

	// Depth limits the layout depth; zero descends to the leaves.
	Depth int `yaml:"depth,omitempty"`

	// Ignore adds glob patterns to the builders' ignore list.
	Ignore []string `yaml:"ignore,omitempty"`

	// Themes holds user-defined palettes, checked before the built-ins
	// so a user palette may shadow a built-in name.
	Themes []Palette `yaml:"themes,omitempty"`
}

// Palette is a named list of fill colors plus an accent used for the
// selection highlight.
type Palette struct {
	Name   string   `yaml:"name" json:"name"`
	Colors []string `yaml:"colors" json:"colors"`
	Accent string   `yaml:"accent,omitempty" json:"accent,omitempty"`
}

// ColorAt cycles the palette by depth and sibling index so neighboring
// blocks never share a fill. Renderers and exporters use the same rule,
// keeping terminal and image output consistent.
func (p Palette) ColorAt(depth, index int) string {
	if len(p.Colors) == 0 {
		return "#808080"
	}
	i := (depth + index) % len(p.Colors)
	if i < 0 {
		i += len(p.Colors)
	}
	return p.Colors[i]
}

// AccentColor returns the accent, falling back to white so a palette
// without one still highlights selections.
func (p Palette) AccentColor() string {
	if p.Accent == "" {
		return "#ffffff"
	}
	return p.Accent
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Theme:         DefaultThemeName,
		LabelMinWidth: 5,
	}
}

// BuiltinPalettes returns the palettes that ship with the program.
func BuiltinPalettes() []Palette {
	return []Palette{
		{
			Name:   "terrain",
			Colors: []string{"#2d6a4f", "#40916c", "#52b788", "#74c69d", "#95d5b2", "#b7e4c7"},
			Accent: "#ffb703",
		},
		{
			Name:   "ocean",
			Colors: []string{"#023e8a", "#0077b6", "#0096c7", "#00b4d8", "#48cae4", "#90e0ef"},
			Accent: "#ff6d00",
		},
		{
			Name:   "solarized",
			Colors: []string{"#268bd2", "#2aa198", "#859900", "#b58900", "#cb4b16", "#d33682", "#6c71c4"},
			Accent: "#dc322f",
		},
		{
			Name:   "greyscale",
			Colors: []string{"#3a3a3a", "#585858", "#767676", "#949494", "#b2b2b2"},
			Accent: "#ffffff",
		},
	}
}

// PaletteByName resolves a palette name against the user palettes
// first, then the built-ins.
func PaletteByName(name string, user []Palette) (Palette, bool) {
	for _, p := range user {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range BuiltinPalettes() {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}

// Load reads and validates a configuration file, merging it over the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Theme == "" {
		cfg.Theme = DefaultThemeName
	}
	if cfg.LabelMinWidth == 0 {
		cfg.LabelMinWidth = Default().LabelMinWidth
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the configuration for errors: negative depth or
// label width, malformed palettes, and an unknown theme name.
func (c *Config) Validate() error {
	if c.Depth < 0 {
		return fmt.Errorf("depth must not be negative, got %d", c.Depth)
	}
	if c.LabelMinWidth < 0 {
		return fmt.Errorf("label_min_width must not be negative, got %d", c.LabelMinWidth)
	}

	seen := make(map[string]bool)
	for i, p := range c.Themes {
		if p.Name == "" {
			return fmt.Errorf("themes[%d]: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("themes[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
		if len(p.Colors) == 0 {
			return fmt.Errorf("theme %q: palette has no colors", p.Name)
		}
		for _, color := range append(append([]string(nil), p.Colors...), p.Accent) {
			if color == "" {
				continue
			}
			if !validHexColor(color) {
				return fmt.Errorf("theme %q: invalid color %q", p.Name, color)
			}
		}
	}

	if c.Theme != "" {
		if _, ok := PaletteByName(c.Theme, c.Themes); !ok {
			return fmt.Errorf("unknown theme %q", c.Theme)
		}
	}
	return nil
}

func validHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}

// Discover searches for .tmv.yaml starting at dir and walking up to the
// user's home directory (or the filesystem root, whichever comes
// first). It returns os.ErrNotExist when no file is found.
func Discover(dir string) (string, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return "", err
		}
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	home, _ := os.UserHomeDir()

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		if dir == home {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}
