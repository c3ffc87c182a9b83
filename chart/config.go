// ABOUTME: Engine tunables (layout constants, snap tolerance, animation timings, prompt text, default periods).
// ABOUTME: DefaultConfig holds the stock page layout; LoadConfig overlays an optional YAML file on top of it.
package chart

import (
	"fmt"
	"os"
	"time"

	"github.com/2389-research/youdrawit/series"
	"gopkg.in/yaml.v3"
)

// Margin is the space between the container edge and the plotting area.
type Margin struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// Config holds the engine settings shared by every chart on a page.
type Config struct {
	Height           float64         `yaml:"height"`
	Margin           Margin          `yaml:"margin"`
	MobileMargin     Margin          `yaml:"mobile_margin"`
	MobileBreakpoint float64         `yaml:"mobile_breakpoint"`
	SnapTolerance    float64         `yaml:"snap_tolerance"`
	RevealDuration   time.Duration   `yaml:"reveal_duration"`
	ResizeDebounce   time.Duration   `yaml:"resize_debounce"`
	PreviewLength    float64         `yaml:"preview_length"`
	DotRadius        float64         `yaml:"dot_radius"`
	YTickCount       int             `yaml:"y_ticks"`
	Prompt           string          `yaml:"prompt"`
	AutoReveal       bool            `yaml:"auto_reveal"`
	Periods          []series.Period `yaml:"periods"`
}

// DefaultConfig returns the stock desktop layout and timings.
func DefaultConfig() Config {
	return Config{
		Height:           400,
		Margin:           Margin{Top: 20, Right: 50, Bottom: 20, Left: 50},
		MobileMargin:     Margin{Top: 20, Right: 20, Bottom: 20, Left: 20},
		MobileBreakpoint: 760,
		SnapTolerance:    0.5,
		RevealDuration:   700 * time.Millisecond,
		ResizeDebounce:   500 * time.Millisecond,
		PreviewLength:    50,
		DotRadius:        4.5,
		YTickCount:       6,
		Prompt:           "Draw the line to the end",
		Periods: []series.Period{
			{Year: 2010, Style: series.StylePrimary, Title: "First term"},
			{Year: 2012, Style: series.StyleSecondary, Title: "Second term"},
			{Year: 2017, Style: series.StyleSecondary, Title: "Third term"},
		},
	}
}

// LoadConfig reads a YAML file and overlays it on DefaultConfig. Fields absent
// from the file keep their defaults. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.SnapTolerance <= 0 {
		return cfg, fmt.Errorf("snap_tolerance must be positive, got %v", cfg.SnapTolerance)
	}
	return cfg, nil
}

// PeriodsFor returns the dataset's own periods, falling back to the defaults.
func (c Config) PeriodsFor(d *series.Dataset) []series.Period {
	if len(d.Periods) > 0 {
		return d.Periods
	}
	return c.Periods
}
