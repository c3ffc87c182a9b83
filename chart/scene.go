// ABOUTME: Retained-mode scene description of one chart: grid, segments, labels, clip and interaction layers.
// ABOUTME: Surfaces (SVG/HTML, PNG, terminal) translate a Scene; the engine never touches an output API directly.
package chart

import (
	"time"

	"github.com/2389-research/youdrawit/series"
)

// Scene is a snapshot of everything needed to draw one chart. Scenes
// returned by Chart.Scene are copies and may be read without locking.
type Scene struct {
	Key    string  `json:"key"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
	ChartW float64 `json:"chart_width"`
	ChartH float64 `json:"chart_height"`
	Mobile bool    `json:"mobile"`

	MinYear    int     `json:"min_year"`
	MaxYear    int     `json:"max_year"`
	MedianYear int     `json:"median_year"`
	GraphMinY  float64 `json:"graph_min_y"`
	GraphMaxY  float64 `json:"graph_max_y"`

	// Data is the full actual series, for surfaces that plot values rather
	// than paths.
	Data series.Series `json:"data"`

	// Classes are the container's state classes ("drawn").
	Classes []string `json:"classes,omitempty"`

	Gradients []Gradient `json:"gradients"`
	Grid      Grid       `json:"grid"`
	Axis      []AxisTick `json:"axis"`
	Segments  []Segment  `json:"segments"`
	Dots      []Dot      `json:"dots"`
	Labels    []Label    `json:"labels"`
	Titles    []Title    `json:"titles"`

	DragArea   DragArea    `json:"drag_area"`
	Preview    Line        `json:"preview"`
	UserPath   string      `json:"user_path"`
	UserPoints []UserPoint `json:"user_points"`
	Prompt     Prompt      `json:"prompt"`
	ResultClip Clip        `json:"result_clip"`
	Result     ResultState `json:"result"`
}

// Gradient is a vertical fill gradient keyed by a style class.
type Gradient struct {
	ID    string `json:"id"`
	Class string `json:"class"`
}

// Grid holds background lines. XLines are vertical lines at year ticks,
// YLines horizontal lines at value ticks.
type Grid struct {
	XLines []GridLine `json:"x_lines"`
	YLines []GridLine `json:"y_lines"`
}

// GridLine is one background line at a pixel position.
type GridLine struct {
	Pos       float64 `json:"pos"`
	Value     float64 `json:"value"`
	Highlight bool    `json:"highlight,omitempty"`
}

// AxisTick is a labelled tick on the x axis.
type AxisTick struct {
	X     float64 `json:"x"`
	Year  int     `json:"year"`
	Label string  `json:"label"`
}

// Segment is the area and line of one period.
type Segment struct {
	Lower  int    `json:"lower"`
	Upper  int    `json:"upper"`
	Class  string `json:"class"`
	Fill   string `json:"fill"`
	Area   string `json:"area"`
	Line   string `json:"line"`
	ClipID string `json:"clip_id,omitempty"`
	Result bool   `json:"result,omitempty"`
}

// Dot is a marker circle at a labelled data point.
type Dot struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	R       float64 `json:"r"`
	Class   string  `json:"class"`
	Opacity float64 `json:"opacity"`
	Result  bool    `json:"result,omitempty"`
}

// Label is a positioned value label drawn over the chart.
type Label struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Year    int     `json:"year"`
	Text    string  `json:"text"`
	Class   string  `json:"class"`
	Edge    string  `json:"edge,omitempty"`
	Opacity float64 `json:"opacity"`
	Result  bool    `json:"result,omitempty"`
}

// Title spans the width of one period above the chart.
type Title struct {
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
	Text  string  `json:"text"`
}

// DragArea is the invisible rectangle accepting pointer input.
type DragArea struct {
	X      float64 `json:"x"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Active bool    `json:"active"`
}

// Line is a straight line in chart pixel space.
type Line struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Prompt is the call-to-action box shown over the drawing region.
type Prompt struct {
	Offset float64 `json:"offset"`
	Text   string  `json:"text"`
}

// Clip is the clip rectangle hiding the result segment until reveal.
type Clip struct {
	ID          string        `json:"id"`
	Width       float64       `json:"width"`
	Height      float64       `json:"height"`
	TargetWidth float64       `json:"target_width"`
	Duration    time.Duration `json:"duration"`
	Animating   bool          `json:"animating,omitempty"`
}

// ResultState drives the result section next to the chart. Completed
// enables the reveal control, Revealed is set the moment the reveal fires
// and Shown once its animation has finished.
type ResultState struct {
	Completed bool `json:"completed"`
	Revealed  bool `json:"revealed"`
	Shown     bool `json:"shown"`
}

// clone copies the slices that change after construction so callers can
// keep a snapshot while the chart keeps mutating.
func (s Scene) clone() Scene {
	out := s
	out.Classes = append([]string(nil), s.Classes...)
	out.Dots = append([]Dot(nil), s.Dots...)
	out.Labels = append([]Label(nil), s.Labels...)
	out.UserPoints = append([]UserPoint(nil), s.UserPoints...)
	return out
}
