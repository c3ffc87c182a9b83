// ABOUTME: Writes a Scene as standalone SVG: gradients, result clip, grid, axis, segments, user line and drag area.
// ABOUTME: Output is deterministic for a given scene so it can be cached and compared in tests.
package render

import (
	"fmt"
	"html"
	"slices"
	"strconv"
	"strings"

	"github.com/2389-research/youdrawit/chart"
)

// coord formats a pixel coordinate with at most three decimals.
func coord(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// SVG renders the scene's vector layer.
func SVG(scene chart.Scene) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" class="you-draw-it-svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		coord(scene.Width), coord(scene.Height), coord(scene.Width), coord(scene.Height))

	writeDefs(&buf, scene)
	fmt.Fprintf(&buf, `  <g transform="translate(%s,%s)">`+"\n", coord(scene.Margin.Left), coord(scene.Margin.Top))
	writeGrid(&buf, scene)
	writeAxis(&buf, scene)
	writeSegments(&buf, scene)
	writeDots(&buf, scene)
	writeUserLayer(&buf, scene)
	buf.WriteString("  </g>\n</svg>\n")
	return buf.String()
}

func writeDefs(buf *strings.Builder, scene chart.Scene) {
	buf.WriteString("  <defs>\n")
	for _, g := range scene.Gradients {
		color := styleColor(g.Class)
		fmt.Fprintf(buf, `    <linearGradient id="%s" class="%s" x1="0" y1="0" x2="0" y2="1">`, g.ID, g.Class)
		fmt.Fprintf(buf, `<stop offset="0%%" stop-color="%s" stop-opacity="0.3"/>`, color)
		fmt.Fprintf(buf, `<stop offset="100%%" stop-color="%s" stop-opacity="0"/>`, color)
		buf.WriteString("</linearGradient>\n")
	}

	clip := scene.ResultClip
	fmt.Fprintf(buf, `    <clipPath id="%s"><rect x="0" y="0" width="%s" height="%s">`, clip.ID, coord(clip.Width), coord(clip.Height))
	if clip.Animating {
		fmt.Fprintf(buf, `<animate attributeName="width" from="%s" to="%s" dur="%dms" fill="freeze"/>`,
			coord(clip.Width), coord(clip.TargetWidth), clip.Duration.Milliseconds())
	}
	buf.WriteString("</rect></clipPath>\n")

	buf.WriteString(`    <marker id="preview-arrow" orient="auto" markerWidth="2" markerHeight="4" refX="0.1" refY="2">`)
	buf.WriteString(`<path d="M0,0 V4 L2,2 Z"/></marker>` + "\n")
	buf.WriteString("  </defs>\n")
}

func writeGrid(buf *strings.Builder, scene chart.Scene) {
	buf.WriteString(`    <g class="grid">` + "\n")
	for _, l := range scene.Grid.XLines {
		class, color := "grid-x", ColorGrid
		if l.Highlight {
			class, color = "grid-x highlight", ColorHighlight
		}
		fmt.Fprintf(buf, `      <line class="%s" x1="%s" y1="0" x2="%s" y2="%s" stroke="%s"/>`+"\n",
			class, coord(l.Pos), coord(l.Pos), coord(scene.ChartH), color)
	}
	for _, l := range scene.Grid.YLines {
		fmt.Fprintf(buf, `      <line class="grid-y" x1="0" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
			coord(l.Pos), coord(scene.ChartW), coord(l.Pos), ColorGrid)
	}
	buf.WriteString("    </g>\n")
}

func writeAxis(buf *strings.Builder, scene chart.Scene) {
	fmt.Fprintf(buf, `    <g class="x axis" transform="translate(0,%s)">`+"\n", coord(scene.ChartH))
	for _, t := range scene.Axis {
		fmt.Fprintf(buf, `      <text x="%s" y="16" text-anchor="middle">%s</text>`+"\n", coord(t.X), html.EscapeString(t.Label))
	}
	buf.WriteString("    </g>\n")
}

func writeSegments(buf *strings.Builder, scene chart.Scene) {
	for _, s := range scene.Segments {
		clip := ""
		if s.ClipID != "" {
			clip = fmt.Sprintf(` clip-path="url(#%s)"`, s.ClipID)
		}
		color := styleColor(segmentStyle(s))
		fmt.Fprintf(buf, `    <g class="segment %s"%s>`+"\n", s.Class, clip)
		fmt.Fprintf(buf, `      <path class="area" d="%s" fill="%s"/>`+"\n", s.Area, s.Fill)
		fmt.Fprintf(buf, `      <path class="line" d="%s" fill="none" stroke="%s" stroke-width="3" stroke-linecap="round"/>`+"\n", s.Line, color)
		buf.WriteString("    </g>\n")
	}
}

func writeDots(buf *strings.Builder, scene chart.Scene) {
	for _, d := range scene.Dots {
		fmt.Fprintf(buf, `    <circle class="dot %s" cx="%s" cy="%s" r="%s" fill="%s" opacity="%s"/>`+"\n",
			d.Class, coord(d.X), coord(d.Y), coord(d.R), styleColor(d.Class), coord(d.Opacity))
	}
}

func writeUserLayer(buf *strings.Builder, scene chart.Scene) {
	drawn := slices.Contains(scene.Classes, "drawn")
	if !drawn {
		p := scene.Preview
		fmt.Fprintf(buf, `    <line class="preview" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-dasharray="4 4" marker-end="url(#preview-arrow)"/>`+"\n",
			coord(p.X1), coord(p.Y1), coord(p.X2), coord(p.Y2), ColorUser)
	}
	if scene.UserPath != "" {
		fmt.Fprintf(buf, `    <path class="your-line" d="%s" fill="none" stroke="%s" stroke-width="3" stroke-dasharray="6 4" stroke-linecap="round"/>`+"\n",
			scene.UserPath, ColorUser)
	}
	if scene.DragArea.Active {
		a := scene.DragArea
		fmt.Fprintf(buf, `    <rect class="draggable" x="%s" y="0" width="%s" height="%s" fill="transparent"/>`+"\n",
			coord(a.X), coord(a.Width), coord(a.Height))
	}
}
