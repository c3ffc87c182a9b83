// ABOUTME: Wraps the SVG layer in an HTML fragment carrying the positioned labels, period titles and prompt.
// ABOUTME: Container classes mirror scene state so stylesheets can react to "drawn" and "shown".
package render

import (
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/2389-research/youdrawit/chart"
)

// HTML renders the full chart fragment for embedding in a page.
func HTML(scene chart.Scene) string {
	classes := append([]string{"you-draw-it"}, scene.Classes...)
	if scene.Mobile {
		classes = append(classes, "mobile")
	}
	if scene.Result.Shown {
		classes = append(classes, "shown")
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, `<div class="%s" data-key="%s" data-median="%d" data-completed="%t" style="position:relative;width:%spx;height:%spx">`+"\n",
		strings.Join(classes, " "), html.EscapeString(scene.Key), scene.MedianYear, scene.Result.Completed, coord(scene.Width), coord(scene.Height))

	buf.WriteString(`<div class="titles">` + "\n")
	for _, t := range scene.Titles {
		if t.Text == "" {
			continue
		}
		fmt.Fprintf(&buf, `  <div class="period-title" style="position:absolute;left:%spx;width:%spx">%s</div>`+"\n",
			coord(t.Left+scene.Margin.Left), coord(t.Width), html.EscapeString(t.Text))
	}
	buf.WriteString("</div>\n")

	buf.WriteString(SVG(scene))

	buf.WriteString(`<div class="labels">` + "\n")
	for _, l := range scene.Labels {
		class := strings.TrimSpace("data-label " + l.Class + " " + l.Edge)
		fmt.Fprintf(&buf, `  <div class="%s" data-year="%d" style="position:absolute;left:%spx;top:%spx;opacity:%s">%s</div>`+"\n",
			class, l.Year, coord(l.X+scene.Margin.Left), coord(l.Y+scene.Margin.Top), coord(l.Opacity), html.EscapeString(l.Text))
	}
	buf.WriteString("</div>\n")

	if !slices.Contains(scene.Classes, "drawn") && scene.Prompt.Text != "" {
		fmt.Fprintf(&buf, `<div class="draw-your-guess" style="position:absolute;left:%spx;top:%spx">%s</div>`+"\n",
			coord(scene.Prompt.Offset+scene.Margin.Left), coord(scene.Margin.Top), html.EscapeString(scene.Prompt.Text))
	}
	buf.WriteString("</div>\n")
	return buf.String()
}
