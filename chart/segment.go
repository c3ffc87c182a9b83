// ABOUTME: Segment renderer: per-period area/line paths, grid lines, axis ticks, dots, labels and titles.
// ABOUTME: Points outside a segment's [lower, upper] window break the path instead of being interpolated across.
package chart

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/2389-research/youdrawit/series"
)

// pathPoint is a projected point plus whether it belongs to the current path.
type pathPoint struct {
	x, y    float64
	defined bool
}

// num formats a coordinate with at most three decimals for stable output.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// runs splits points into maximal runs of defined points.
func runs(points []pathPoint) [][]pathPoint {
	var out [][]pathPoint
	var cur []pathPoint
	for _, p := range points {
		if !p.defined {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, p)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// linePath draws straight segments through each run. A run of one point
// becomes a closed zero-length subpath so round line caps still show it.
func linePath(points []pathPoint) string {
	var b strings.Builder
	for _, run := range runs(points) {
		for i, p := range run {
			if i == 0 {
				b.WriteString("M")
			} else {
				b.WriteString("L")
			}
			b.WriteString(num(p.x) + "," + num(p.y))
		}
		if len(run) == 1 {
			b.WriteString("Z")
		}
	}
	return b.String()
}

// areaPath fills each run down to baseline.
func areaPath(points []pathPoint, baseline float64) string {
	var b strings.Builder
	for _, run := range runs(points) {
		for i, p := range run {
			if i == 0 {
				b.WriteString("M")
			} else {
				b.WriteString("L")
			}
			b.WriteString(num(p.x) + "," + num(p.y))
		}
		for i := len(run) - 1; i >= 0; i-- {
			b.WriteString("L" + num(run[i].x) + "," + num(baseline))
		}
		b.WriteString("Z")
	}
	return b.String()
}

// project maps the series through the scales, marking points inside [lower, upper].
func project(s series.Series, sc Scales, lower, upper int) []pathPoint {
	fx := MustCompose[series.Point]("year", sc.X)
	fy := MustCompose[series.Point]("value", sc.Y)

	out := make([]pathPoint, len(s))
	for i, p := range s {
		out[i] = pathPoint{
			x:       fx(p),
			y:       fy(p),
			defined: p.Year >= lower && p.Year <= upper,
		}
	}
	return out
}

// segmentBounds pairs each resolved period with its lower boundary.
func segmentBounds(periods []series.Period, minYear int) [][2]int {
	out := make([][2]int, len(periods))
	for i, p := range periods {
		lower := minYear
		if i > 0 {
			lower = periods[i-1].Year
		}
		out[i] = [2]int{lower, p.Year}
	}
	return out
}

// segmentBorders lists the years whose grid lines are highlighted.
func segmentBorders(periods []series.Period, minYear int) []int {
	borders := []int{minYear}
	for _, p := range periods {
		borders = append(borders, p.Year)
	}
	return borders
}

// gradientID names the fill gradient for a style class.
func gradientID(class string) string {
	return "gradient-" + class
}

// buildSegments draws every period and the dots/labels at their ends. The
// last segment is the result: clipped, with its end marker hidden.
func buildSegments(scene *Scene, d *series.Dataset, s series.Series, sc Scales, periods []series.Period, median int, cfg Config) {
	minYear, maxYear := s.MinYear(), s.MaxYear()
	bounds := segmentBounds(periods, minYear)

	for i, p := range periods {
		lower, upper := bounds[i][0], bounds[i][1]
		class := p.Style.Class()
		result := i == len(periods)-1

		svgClass := class
		if upper == median {
			svgClass += " median"
		}

		pts := project(s, sc, lower, upper)
		seg := Segment{
			Lower:  lower,
			Upper:  upper,
			Class:  svgClass,
			Fill:   fmt.Sprintf("url(#%s)", gradientID(class)),
			Area:   areaPath(pts, sc.ChartH),
			Line:   linePath(pts),
			Result: result,
		}
		if result {
			seg.ClipID = "result-clip-" + scene.Key
		}
		scene.Segments = append(scene.Segments, seg)

		if i == 0 && lower == minYear && lower != upper {
			addMarker(scene, d, sc, minYear, maxYear, lower, class, false, cfg)
		}
		addMarker(scene, d, sc, minYear, maxYear, upper, class, result, cfg)

		scene.Titles = append(scene.Titles, Title{
			Left:  sc.X.Map(float64(lower)),
			Width: sc.X.Map(float64(upper)) - sc.X.Map(float64(lower)),
			Text:  p.Title,
		})
	}
}

// addMarker appends the dot and label for one year. Years without a value
// in the dataset get no marker.
func addMarker(scene *Scene, d *series.Dataset, sc Scales, minYear, maxYear, year int, class string, result bool, cfg Config) {
	v, ok := d.ValueAt(year)
	if !ok {
		return
	}
	x := sc.X.Map(float64(year))
	y := sc.Y.Map(v)

	opacity := 1.0
	if result {
		opacity = 0
	}

	label := Label{
		X:       x,
		Y:       y,
		Year:    year,
		Text:    d.FormatValue(v),
		Class:   class,
		Opacity: opacity,
		Result:  result,
	}
	if sc.Mobile {
		switch year {
		case minYear:
			label.Edge = "edge-left"
		case maxYear:
			label.Edge = "edge-right"
		}
	}

	scene.Dots = append(scene.Dots, Dot{X: x, Y: y, R: cfg.DotRadius, Class: class, Opacity: opacity, Result: result})
	scene.Labels = append(scene.Labels, label)
}

// buildGrid adds year grid lines (highlighted at segment borders), value
// grid lines and the x axis ticks.
func buildGrid(scene *Scene, sc Scales, periods []series.Period, minYear, maxYear int, cfg Config) {
	borders := segmentBorders(periods, minYear)

	for _, tick := range sc.X.Ticks(maxYear - minYear) {
		year := int(tick)
		highlight := float64(year) == tick && slices.Contains(borders, year)
		scene.Grid.XLines = append(scene.Grid.XLines, GridLine{
			Pos:       sc.X.Map(tick),
			Value:     tick,
			Highlight: highlight,
		})
		scene.Axis = append(scene.Axis, AxisTick{
			X:     sc.X.Map(tick),
			Year:  year,
			Label: yearLabel(year),
		})
	}

	for _, tick := range sc.Y.Ticks(cfg.YTickCount) {
		scene.Grid.YLines = append(scene.Grid.YLines, GridLine{
			Pos:   sc.Y.Map(tick),
			Value: tick,
		})
	}
}

// yearLabel abbreviates a year as 'YY.
func yearLabel(year int) string {
	s := strconv.Itoa(year)
	if len(s) > 2 {
		s = s[2:]
	}
	return "'" + s
}
