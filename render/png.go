// ABOUTME: Rasterises a scene into a PNG share image with go-chart: one line per period plus the user's guess.
// ABOUTME: The result period only appears once it has been revealed so the image never spoils the answer.
package render

import (
	"bytes"
	"fmt"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/2389-research/youdrawit/chart"
)

// hexColor converts "#rrggbb" into a drawing color.
func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(hex[1:])
}

// PNG renders the scene as a static image sized to the scene.
func PNG(scene chart.Scene) ([]byte, error) {
	if len(scene.Data) < 2 {
		return nil, fmt.Errorf("png: scene %q has no data", scene.Key)
	}

	graph := gochart.Chart{
		Width:  int(scene.Width),
		Height: int(scene.Height),
		Background: gochart.Style{
			Padding: gochart.Box{
				Top:    int(scene.Margin.Top),
				Right:  int(scene.Margin.Right),
				Bottom: int(scene.Margin.Bottom),
				Left:   int(scene.Margin.Left),
			},
		},
		XAxis: gochart.XAxis{
			Ticks: yearTicks(scene),
			Range: &gochart.ContinuousRange{
				Min: float64(scene.MinYear),
				Max: float64(scene.MaxYear),
			},
			GridMajorStyle: gochart.Style{
				StrokeColor: hexColor(ColorGrid),
				StrokeWidth: 1,
			},
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{
				Min: scene.GraphMinY,
				Max: scene.GraphMaxY,
			},
		},
	}

	for _, seg := range scene.Segments {
		if seg.Result && !scene.Result.Revealed {
			continue
		}
		xs, ys := segmentValues(scene, seg.Lower, seg.Upper)
		if len(xs) < 2 {
			continue
		}
		graph.Series = append(graph.Series, gochart.ContinuousSeries{
			Name:    fmt.Sprintf("%d-%d", seg.Lower, seg.Upper),
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: hexColor(styleColor(segmentStyle(seg))),
				StrokeWidth: 3,
			},
		})
	}

	if xs, ys := userValues(scene); len(xs) >= 2 {
		graph.Series = append(graph.Series, gochart.ContinuousSeries{
			Name:    "guess",
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor:     hexColor(ColorUser),
				StrokeWidth:     3,
				StrokeDashArray: []float64{6, 4},
			},
		})
	}

	if len(graph.Series) == 0 {
		return nil, fmt.Errorf("png: scene %q has nothing to plot", scene.Key)
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("png: render %s: %w", scene.Key, err)
	}
	return buf.Bytes(), nil
}

// segmentStyle strips state classes such as "median" from a segment class.
func segmentStyle(seg chart.Segment) string {
	style, _, _ := strings.Cut(seg.Class, " ")
	return style
}

func segmentValues(scene chart.Scene, lower, upper int) ([]float64, []float64) {
	var xs, ys []float64
	for _, p := range scene.Data.Between(lower, upper) {
		xs = append(xs, float64(p.Year))
		ys = append(ys, p.Value)
	}
	return xs, ys
}

// userValues returns the user's drawn points up to the first gap.
func userValues(scene chart.Scene) ([]float64, []float64) {
	var xs, ys []float64
	for _, p := range scene.UserPoints {
		if !p.Defined {
			break
		}
		xs = append(xs, float64(p.Year))
		ys = append(ys, p.Value)
	}
	return xs, ys
}

func yearTicks(scene chart.Scene) []gochart.Tick {
	ticks := make([]gochart.Tick, 0, len(scene.Axis))
	for _, t := range scene.Axis {
		ticks = append(ticks, gochart.Tick{Value: float64(t.Year), Label: t.Label})
	}
	return ticks
}
