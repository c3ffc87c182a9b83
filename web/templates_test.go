// ABOUTME: Tests for the embedded template engine and markdown rendering.
package web

import (
	"bytes"
	"strings"
	"testing"
)

func TestTemplateEngineRendersPage(t *testing.T) {
	engine, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine: %v", err)
	}

	var buf bytes.Buffer
	err = engine.RenderTo(&buf, "page.html", PageData{
		Title:  "Quiz",
		PageID: "p1",
		Charts: []ChartView{
			{Key: "debt", Question: "What about *debt*?", Fragment: "<div class=\"you-draw-it\"></div>"},
			{Key: "broken", Skipped: "insufficient data"},
		},
	})
	if err != nil {
		t.Fatalf("RenderTo: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"<title>Quiz</title>",
		`data-page="p1"`,
		"<em>debt</em>",
		`<div class="you-draw-it"></div>`,
		"insufficient data",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestTemplateEngineUnknownTemplate(t *testing.T) {
	engine, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine: %v", err)
	}
	if err := engine.RenderTo(&bytes.Buffer{}, "missing.html", nil); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestMarkdownToHTMLOmitsRawHTML(t *testing.T) {
	out := string(markdownToHTML("hi <script>alert(1)</script>"))
	if strings.Contains(out, "<script>") {
		t.Errorf("raw html leaked: %s", out)
	}
}
