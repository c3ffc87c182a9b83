// ABOUTME: Tests for the page orchestrator: skipping unbuildable charts and debounced redraws.
package chart

import (
	"errors"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/2389-research/youdrawit/series"
)

func newTestOrchestrator(t *testing.T, debounce time.Duration) *Orchestrator {
	t.Helper()
	repo := series.NewRepository(
		unemployment(),
		&series.Dataset{Key: "single", Data: map[int]float64{2010: 5}},
	)
	cfg := DefaultConfig()
	cfg.ResizeDebounce = debounce
	o := NewOrchestrator(repo, cfg)
	t.Cleanup(o.Close)
	return o
}

func TestDrawSkipsBrokenCharts(t *testing.T) {
	o := newTestOrchestrator(t, time.Second)
	report := o.Draw(1000, []Placeholder{
		{Key: "single", Width: 500},
		{Key: "unemployment", Width: 500},
		{Key: "missing", Width: 500},
	})

	if !slices.Equal(report.Drawn, []string{"unemployment"}) {
		t.Errorf("drawn = %v", report.Drawn)
	}
	if !errors.Is(report.Skipped["single"], ErrInsufficientData) {
		t.Errorf("single: %v", report.Skipped["single"])
	}
	if !errors.Is(report.Skipped["missing"], series.ErrUnknownDataset) {
		t.Errorf("missing: %v", report.Skipped["missing"])
	}
	if _, ok := o.Chart("unemployment"); !ok {
		t.Error("unemployment chart not registered")
	}
	if _, ok := o.Chart("single"); ok {
		t.Error("single chart should not be registered")
	}
}

func TestRedrawDiscardsDrawing(t *testing.T) {
	o := newTestOrchestrator(t, time.Second)
	o.Draw(1000, []Placeholder{{Key: "unemployment", Width: 500}})
	c, _ := o.Chart("unemployment")
	c.Capture(10_000, 100)

	o.Redraw()
	fresh, _ := o.Chart("unemployment")
	if fresh == c || fresh.State() != StateIdle {
		t.Errorf("redraw should build a fresh idle chart, state = %v", fresh.State())
	}
}

func TestResizeIsDebounced(t *testing.T) {
	o := newTestOrchestrator(t, 30*time.Millisecond)
	o.Draw(1000, []Placeholder{{Key: "unemployment", Width: 500}})

	var redraws atomic.Int32
	done := make(chan DrawReport, 4)
	o.OnRedraw(func(r DrawReport) {
		redraws.Add(1)
		done <- r
	})

	o.Resize(900, nil)
	o.Resize(600, []Placeholder{{Key: "unemployment", Width: 400}})
	o.Resize(500, nil)
	if !o.ResizePending() {
		t.Error("expected pending redraw")
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("redraw never ran")
	}
	time.Sleep(100 * time.Millisecond)
	if n := redraws.Load(); n != 1 {
		t.Errorf("redraws = %d, want 1", n)
	}

	c, _ := o.Chart("unemployment")
	sc := c.Scales()
	if !sc.Mobile || sc.Width != 400 {
		t.Errorf("redrawn layout = width %v mobile %v", sc.Width, sc.Mobile)
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var ran atomic.Bool
	d.Trigger(func() { ran.Store(true) })
	d.Stop()
	time.Sleep(60 * time.Millisecond)
	if ran.Load() || d.Pending() {
		t.Error("stopped debouncer still ran")
	}
}
