// ABOUTME: Drag capture controller turning pointer positions into the user's drawn data points.
// ABOUTME: Runs the idle -> drawing -> completed state machine; completion requires every year to be drawn.
package chart

import (
	"math"

	"github.com/2389-research/youdrawit/scale"
	"github.com/2389-research/youdrawit/series"
)

// DrawState is the drag controller's state.
type DrawState int

const (
	StateIdle DrawState = iota
	StateDrawing
	StateCompleted
)

// String implements fmt.Stringer.
func (s DrawState) String() string {
	switch s {
	case StateDrawing:
		return "drawing"
	case StateCompleted:
		return "completed"
	default:
		return "idle"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s DrawState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UserPoint is one year of the user's prediction.
type UserPoint struct {
	Year    int     `json:"year"`
	Value   float64 `json:"value"`
	Defined bool    `json:"defined"`
}

// DragCapture owns the user's points for one chart instance. It is not
// safe for concurrent use; Chart serialises access.
type DragCapture struct {
	points  []UserPoint
	median  int
	maxYear int
	snap    float64
	x, y    scale.Linear
	state   DrawState
	defined func(UserPoint) float64
}

// NewDragCapture creates one user point per series year from medianYear
// onwards. The point at medianYear anchors the drawing with the true value.
func NewDragCapture(s series.Series, median int, sc Scales, snap float64) *DragCapture {
	var points []UserPoint
	for _, p := range s {
		if p.Year < median {
			continue
		}
		points = append(points, UserPoint{
			Year:    p.Year,
			Value:   p.Value,
			Defined: p.Year == median,
		})
	}
	return &DragCapture{
		points:  points,
		median:  median,
		maxYear: s.MaxYear(),
		snap:    snap,
		x:       sc.X,
		y:       sc.Y,
		defined: MustCompose[UserPoint]("defined"),
	}
}

// State returns the current state.
func (d *DragCapture) State() DrawState {
	return d.state
}

// Points returns a copy of the user's points.
func (d *DragCapture) Points() []UserPoint {
	return append([]UserPoint(nil), d.points...)
}

// Coverage is the share of user points already drawn, in [0, 1].
func (d *DragCapture) Coverage() float64 {
	return Mean(d.points, d.defined)
}

// Capture applies one drag or click at chart pixel (px, py). It reports
// whether the call completed the drawing; that happens at most once.
func (d *DragCapture) Capture(px, py float64) (completed bool) {
	if d.state == StateIdle {
		d.state = StateDrawing
	}

	year := scale.Clamp(float64(d.median), float64(d.maxYear), d.x.Invert(px))
	lo, hi := d.y.Domain()
	value := scale.Clamp(lo, hi, d.y.Invert(py))

	for i := range d.points {
		p := &d.points[i]
		if p.Year <= d.median {
			continue
		}
		if math.Abs(float64(p.Year)-year) < d.snap {
			p.Value = value
		}
		if float64(p.Year)-year < d.snap {
			p.Defined = true
		}
	}

	if d.state != StateCompleted && d.Coverage() == 1 {
		d.state = StateCompleted
		return true
	}
	return false
}

// Path draws the user's line through defined points only.
func (d *DragCapture) Path() string {
	fx := MustCompose[UserPoint]("year", d.x)
	fy := MustCompose[UserPoint]("value", d.y)

	pts := make([]pathPoint, len(d.points))
	for i, p := range d.points {
		pts[i] = pathPoint{x: fx(p), y: fy(p), defined: p.Defined}
	}
	return linePath(pts)
}
