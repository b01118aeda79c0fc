package style

import (
	_ "embed"
	"sync"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef is an adaptive color in styles.yaml.
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is a style in styles.yaml.
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Underline    bool   `yaml:"underline,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Background   string `yaml:"background,omitempty"`
	MarginBottom int    `yaml:"marginBottom,omitempty"`
	MarginTop    int    `yaml:"marginTop,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
}

// Config is the parsed styles.yaml.
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedStyles []byte

var (
	mu       sync.RWMutex
	registry map[string]lipgloss.Style
)

func init() {
	if err := Load(embeddedStyles); err != nil {
		registry = map[string]lipgloss.Style{}
	}
}

// Load replaces the style registry with the styles defined in data.
func Load(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to parse styles")
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	styles := make(map[string]lipgloss.Style, len(config.Styles))
	for name, def := range config.Styles {
		styles[name] = build(def, colors)
	}

	mu.Lock()
	registry = styles
	mu.Unlock()
	return nil
}

func build(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	s := lipgloss.NewStyle()
	if def.Bold {
		s = s.Bold(true)
	}
	if def.Italic {
		s = s.Italic(true)
	}
	if def.Underline {
		s = s.Underline(true)
	}
	if c, ok := colors[def.Foreground]; ok {
		s = s.Foreground(c)
	}
	if c, ok := colors[def.Background]; ok {
		s = s.Background(c)
	}
	if def.MarginBottom > 0 {
		s = s.MarginBottom(def.MarginBottom)
	}
	if def.MarginTop > 0 {
		s = s.MarginTop(def.MarginTop)
	}
	if def.PaddingLeft > 0 {
		s = s.PaddingLeft(def.PaddingLeft)
	}
	return s
}

// Get returns the named style, or an empty style when it is not defined.
func Get(name string) lipgloss.Style {
	mu.RLock()
	defer mu.RUnlock()
	if s, ok := registry[name]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// Has reports whether name is defined.
func Has(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registry[name]
	return ok
}

// Paint renders s with the named style.
func Paint(name, s string) string {
	return Get(name).Render(s)
}
