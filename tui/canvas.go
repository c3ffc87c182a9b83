// ABOUTME: Rasterises a chart scene onto an ntcharts canvas, one cell per chart pixel.
// ABOUTME: The result segment is cut at the clip width so the answer stays hidden until revealed.
package tui

import (
	"math"
	"slices"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/youdrawit/chart"
	"github.com/2389-research/youdrawit/scale"
)

// Canvas is a fixed-size ntcharts canvas whose cells carry the lipgloss style
// of their class.
type Canvas struct {
	width, height int
	m             canvas.Model
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{width: width, height: height, m: canvas.New(width, height)}
	blank := canvas.Cell{Rune: ' ', Style: lipgloss.NewStyle()}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			c.m.SetCell(canvas.Point{X: col, Y: row}, blank)
		}
	}
	return c
}

func (c *Canvas) inside(p canvas.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < c.width && p.Y < c.height
}

// Set writes one cell; out of range positions are ignored.
func (c *Canvas) Set(col, row int, ch rune, class string) {
	p := canvas.Point{X: col, Y: row}
	if !c.inside(p) {
		return
	}
	c.m.SetCell(p, canvas.Cell{Rune: ch, Style: StyleForClass(class)})
}

// At returns the rune at a position, or 0 when out of range.
func (c *Canvas) At(col, row int) rune {
	p := canvas.Point{X: col, Y: row}
	if !c.inside(p) {
		return 0
	}
	return c.m.Cell(p).Rune
}

// Text writes s starting at col, shifted left to stay on the canvas.
func (c *Canvas) Text(col, row int, s, class string) {
	runes := []rune(s)
	if col+len(runes) > c.width {
		col = c.width - len(runes)
	}
	if col < 0 {
		col = 0
	}
	for i, r := range runes {
		c.Set(col+i, row, r, class)
	}
}

// Plain returns the canvas without styling, one string per row.
func (c *Canvas) Plain() []string {
	out := make([]string, c.height)
	for row := range out {
		var b strings.Builder
		for col := 0; col < c.width; col++ {
			b.WriteRune(c.At(col, row))
		}
		out[row] = b.String()
	}
	return out
}

// Render returns the styled canvas.
func (c *Canvas) Render() string {
	return c.m.View()
}

// sceneScales rebuilds the pixel scales from a scene.
func sceneScales(scene chart.Scene) (scale.Linear, scale.Linear) {
	x := scale.NewLinear(float64(scene.MinYear), float64(scene.MaxYear), 0, scene.ChartW)
	y := scale.NewLinear(scene.GraphMinY, scene.GraphMaxY, scene.ChartH, 0)
	return x, y
}

// Rasterize draws the scene. Chart pixels are offset by the scene margins.
func Rasterize(scene chart.Scene) *Canvas {
	cv := NewCanvas(int(scene.Width), int(scene.Height))
	x, y := sceneScales(scene)
	left, top := scene.Margin.Left, scene.Margin.Top
	cellOf := func(px, py float64) (int, int) {
		return int(math.Round(px + left)), int(math.Round(py + top))
	}

	for _, l := range scene.Grid.XLines {
		if !l.Highlight {
			continue
		}
		col, upper := cellOf(l.Pos, 0)
		_, lower := cellOf(l.Pos, scene.ChartH)
		for _, p := range graph.GetLinePoints(canvas.Point{X: col, Y: upper}, canvas.Point{X: col, Y: lower}) {
			cv.Set(p.X, p.Y, '┊', "grid")
		}
	}

	axisRow := int(math.Round(top+scene.ChartH)) + 1
	for _, t := range scene.Axis {
		col, _ := cellOf(t.X, 0)
		cv.Text(col-1, axisRow, t.Label, "axis")
	}

	clipCol := left + scene.ResultClip.Width
	for _, seg := range scene.Segments {
		class, _, _ := strings.Cut(seg.Class, " ")
		var pts [][2]float64
		for _, p := range scene.Data.Between(seg.Lower, seg.Upper) {
			pts = append(pts, [2]float64{x.Map(float64(p.Year)), y.Map(p.Value)})
		}
		limit := math.Inf(1)
		if seg.Result {
			limit = clipCol
		}
		drawPolyline(cv, pts, left, top, limit, '•', class)
	}

	var run [][2]float64
	for _, p := range scene.UserPoints {
		if !p.Defined {
			drawPolyline(cv, run, left, top, math.Inf(1), '•', "user")
			run = nil
			continue
		}
		run = append(run, [2]float64{x.Map(float64(p.Year)), y.Map(p.Value)})
	}
	drawPolyline(cv, run, left, top, math.Inf(1), '•', "user")

	for _, d := range scene.Dots {
		if d.Opacity == 0 {
			continue
		}
		col, row := cellOf(d.X, d.Y)
		cv.Set(col, row, '●', d.Class)
	}
	for _, l := range scene.Labels {
		if l.Opacity == 0 {
			continue
		}
		col, row := cellOf(l.X, l.Y)
		w := len([]rune(l.Text))
		switch l.Edge {
		case "edge-left":
		case "edge-right":
			col -= w - 1
		default:
			col -= w / 2
		}
		cv.Text(col, row-1, l.Text, "label")
	}

	if !slices.Contains(scene.Classes, "drawn") {
		p := scene.Preview
		drawPolyline(cv, [][2]float64{{p.X1, p.Y1}, {p.X2, p.Y2}}, left, top, math.Inf(1), '·', "user")
		col, _ := cellOf(p.X2, 0)
		_, row := cellOf(0, p.Y2)
		cv.Set(col, row, '▸', "user")
		if scene.Prompt.Text != "" {
			pc, pr := cellOf(scene.Prompt.Offset, 0)
			cv.Text(pc+1, pr, " "+scene.Prompt.Text+" ", "prompt")
		}
	}
	return cv
}

// drawPolyline joins consecutive points with ntcharts line points. A single
// point becomes a lone mark. Cells right of limit are dropped.
func drawPolyline(cv *Canvas, pts [][2]float64, left, top, limit float64, ch rune, class string) {
	cellOf := func(pt [2]float64) canvas.Point {
		return canvas.Point{X: int(math.Round(pt[0] + left)), Y: int(math.Round(pt[1] + top))}
	}
	plot := func(p canvas.Point) {
		if float64(p.X) > limit {
			return
		}
		cv.Set(p.X, p.Y, ch, class)
	}
	if len(pts) == 1 {
		plot(cellOf(pts[0]))
		return
	}
	for i := 1; i < len(pts); i++ {
		for _, p := range graph.GetLinePoints(cellOf(pts[i-1]), cellOf(pts[i])) {
			plot(p)
		}
	}
}
