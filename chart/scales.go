// ABOUTME: Derives the x (year) and y (value) scales plus the plotting box from data extent and layout.
// ABOUTME: Reserves headroom above the data for segment titles and picks narrow-viewport margins.
package chart

import (
	"errors"
	"fmt"
	"math"

	"github.com/2389-research/youdrawit/scale"
	"github.com/2389-research/youdrawit/series"
)

var (
	// ErrInsufficientData is returned for series too short to split into history and result.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrDegenerateLayout is returned when margins leave no room to plot.
	ErrDegenerateLayout = errors.New("degenerate layout")
)

// Layout describes the surface a chart is drawn into.
type Layout struct {
	// ContainerWidth is the width of the chart's placeholder element.
	ContainerWidth float64
	// ViewportWidth decides between desktop and mobile margins.
	ViewportWidth float64
}

// Scales is the derived geometry of one chart.
type Scales struct {
	X         scale.Linear
	Y         scale.Linear
	Margin    Margin
	Width     float64 // full container width
	Height    float64 // full container height
	ChartW    float64 // plotting width inside the margins
	ChartH    float64 // plotting height inside the margins
	Mobile    bool
	GraphMinY float64
	GraphMaxY float64
}

// BuildScales computes the scale pair for s. medianYear must carry a value
// in d because it sets the minimum headroom.
func BuildScales(s series.Series, d *series.Dataset, medianYear int, layout Layout, cfg Config) (Scales, error) {
	if len(s) < 2 {
		return Scales{}, fmt.Errorf("%w: %d points", ErrInsufficientData, len(s))
	}

	mobile := layout.ViewportWidth > 0 && layout.ViewportWidth < cfg.MobileBreakpoint
	margin := cfg.Margin
	if mobile {
		margin = cfg.MobileMargin
	}

	sc := Scales{
		Margin: margin,
		Width:  layout.ContainerWidth,
		Height: cfg.Height,
		ChartW: layout.ContainerWidth - (margin.Left + margin.Right),
		ChartH: cfg.Height - (margin.Top + margin.Bottom),
		Mobile: mobile,
	}
	if !(sc.ChartW > 0) || !(sc.ChartH > 0) || math.IsInf(sc.ChartW, 0) || math.IsInf(sc.ChartH, 0) {
		return Scales{}, fmt.Errorf("%w: plotting area %.0fx%.0f", ErrDegenerateLayout, sc.ChartW, sc.ChartH)
	}

	medianValue, ok := d.ValueAt(medianYear)
	if !ok {
		return Scales{}, fmt.Errorf("%w: no value for median year %d", ErrInsufficientData, medianYear)
	}

	minY, maxY := s.Extent()
	sc.GraphMinY = math.Min(minY, 0)
	sc.GraphMaxY = math.Max(medianValue*2, maxY+(maxY-sc.GraphMinY)*0.4)

	sc.X = scale.NewLinear(float64(s.MinYear()), float64(s.MaxYear()), 0, sc.ChartW)
	sc.Y = scale.NewLinear(sc.GraphMinY, sc.GraphMaxY, sc.ChartH, 0)
	return sc, nil
}
