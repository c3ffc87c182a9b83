// ABOUTME: Tests for scene output: SVG structure, HTML overlays and PNG encoding before and after reveal.
package render

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/2389-research/youdrawit/chart"
	"github.com/2389-research/youdrawit/series"
)

type instantScheduler struct{}

func (instantScheduler) AfterFunc(_ time.Duration, f func()) { f() }

func newTestChart(t *testing.T) *chart.Chart {
	t.Helper()
	d := &series.Dataset{
		Key:   "unemployment",
		Data:  map[int]float64{2010: 5, 2011: 6, 2012: 7, 2013: 9, 2014: 12},
		Unit:  "%",
		Title: "Unemployment",
		Periods: []series.Period{
			{Year: 2010, Style: series.StylePrimary},
			{Year: 2012, Style: series.StyleSecondary, Title: "Second <term>"},
		},
	}
	c, err := chart.New(d, chart.DefaultConfig(), chart.Layout{ContainerWidth: 500, ViewportWidth: 1000},
		chart.WithScheduler(instantScheduler{}))
	if err != nil {
		t.Fatalf("chart.New: %v", err)
	}
	return c
}

func TestSVGStructure(t *testing.T) {
	svg := SVG(newTestChart(t).Scene())

	for _, want := range []string{
		`<linearGradient id="gradient-primary"`,
		`<linearGradient id="gradient-secondary"`,
		`<clipPath id="result-clip-unemployment"><rect x="0" y="0" width="200" height="360">`,
		`<marker id="preview-arrow"`,
		`clip-path="url(#result-clip-unemployment)"`,
		`class="segment secondary median"`,
		`class="grid-x highlight"`,
		`<rect class="draggable" x="200" y="0" width="200" height="360"`,
		`class="preview"`,
		`>&#39;12</text>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %s", want)
		}
	}
	if strings.Contains(svg, "your-line") {
		t.Error("undrawn chart should have no user line")
	}
}

func TestSVGIsDeterministic(t *testing.T) {
	c := newTestChart(t)
	if SVG(c.Scene()) != SVG(c.Scene()) {
		t.Error("same scene rendered differently")
	}
}

func TestSVGAfterDrawingAndReveal(t *testing.T) {
	c := newTestChart(t)
	c.Capture(400, 100)
	if _, err := c.Reveal(); err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	svg := SVG(c.Scene())

	if !strings.Contains(svg, `class="your-line"`) {
		t.Error("missing user line")
	}
	if strings.Contains(svg, `class="preview"`) || strings.Contains(svg, "draggable") {
		t.Error("preview and drag area should be gone after drawing and reveal")
	}
	if !strings.Contains(svg, `width="400" height="360"`) {
		t.Error("clip should be fully open once settled")
	}
}

func TestHTMLOverlay(t *testing.T) {
	c := newTestChart(t)
	out := HTML(c.Scene())

	for _, want := range []string{
		`class="you-draw-it"`,
		`data-key="unemployment"`,
		`data-median="2012"`,
		`Second &lt;term&gt;`,
		`class="data-label secondary" data-year="2012"`,
		`class="draw-your-guess"`,
		`>7 %</div>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %s", want)
		}
	}

	c.Capture(400, 100)
	c.Reveal()
	out = HTML(c.Scene())
	if !strings.Contains(out, `class="you-draw-it drawn shown"`) {
		t.Errorf("expected drawn and shown classes in %s", out[:120])
	}
	if strings.Contains(out, "draw-your-guess") {
		t.Error("prompt should disappear once drawn")
	}
}

func TestRenderFormats(t *testing.T) {
	scene := newTestChart(t).Scene()
	ctx := context.Background()

	png, err := Render(ctx, scene, FormatPNG)
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("png output lacks PNG signature")
	}

	svg, err := Render(ctx, scene, FormatSVG)
	if err != nil || !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg: %v", err)
	}

	if _, err := Render(ctx, scene, "gif"); err == nil {
		t.Error("expected error for unsupported format")
	}
	if ContentType(FormatPNG) != "image/png" {
		t.Errorf("ContentType(png) = %s", ContentType(FormatPNG))
	}
}

func TestPNGRequiresData(t *testing.T) {
	if _, err := PNG(chart.Scene{Key: "empty"}); err == nil {
		t.Error("expected error for empty scene")
	}
}
