// ABOUTME: Page orchestrator that instantiates one chart per placeholder and rebuilds them on resize.
// ABOUTME: A chart that can not be built is skipped and logged without affecting its siblings.
package chart

import (
	"fmt"
	"log"
	"sync"

	"github.com/2389-research/youdrawit/series"
)

// Placeholder is an element on the page asking for a chart.
type Placeholder struct {
	Key   string  `json:"key"`
	Width float64 `json:"width"`
}

// DrawReport lists which placeholders received a chart.
type DrawReport struct {
	Drawn   []string
	Skipped map[string]error
}

// Orchestrator owns the charts of one page.
type Orchestrator struct {
	repo     *series.Repository
	opts     []Option
	debounce *Debouncer

	mu           sync.RWMutex
	cfg          Config
	charts       map[string]*Chart
	viewport     float64
	placeholders []Placeholder
	onRedraw     func(DrawReport)
}

// NewOrchestrator creates an orchestrator drawing datasets from repo. opts
// are applied to every chart it builds.
func NewOrchestrator(repo *series.Repository, cfg Config, opts ...Option) *Orchestrator {
	return &Orchestrator{
		repo:     repo,
		cfg:      cfg,
		opts:     opts,
		debounce: NewDebouncer(cfg.ResizeDebounce),
		charts:   make(map[string]*Chart),
	}
}

// OnRedraw registers a callback invoked after every debounced redraw.
func (o *Orchestrator) OnRedraw(f func(DrawReport)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onRedraw = f
}

// Config returns the engine settings.
func (o *Orchestrator) Config() Config {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.cfg
}

// Reconfigure replaces the engine settings used by the next draw. Surfaces
// whose pixel space changes with the layout, such as terminals, call it
// before redrawing.
func (o *Orchestrator) Reconfigure(cfg Config) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cfg = cfg
}

// Draw builds a fresh chart for every placeholder, replacing all previous
// charts. Unknown keys and unbuildable datasets are skipped.
func (o *Orchestrator) Draw(viewport float64, placeholders []Placeholder) DrawReport {
	report := DrawReport{Skipped: make(map[string]error)}
	charts := make(map[string]*Chart, len(placeholders))
	cfg := o.Config()

	for _, ph := range placeholders {
		c, err := o.build(ph, viewport, cfg)
		if err != nil {
			log.Printf("orchestrator: skip chart key=%s err=%v", ph.Key, err)
			report.Skipped[ph.Key] = err
			continue
		}
		charts[ph.Key] = c
		report.Drawn = append(report.Drawn, ph.Key)
	}

	o.mu.Lock()
	o.charts = charts
	o.viewport = viewport
	o.placeholders = append([]Placeholder(nil), placeholders...)
	o.mu.Unlock()

	log.Printf("orchestrator: drew charts=%d skipped=%d viewport=%v", len(report.Drawn), len(report.Skipped), viewport)
	return report
}

func (o *Orchestrator) build(ph Placeholder, viewport float64, cfg Config) (*Chart, error) {
	d, err := o.repo.Get(ph.Key)
	if err != nil {
		return nil, err
	}
	c, err := New(d, cfg, Layout{ContainerWidth: ph.Width, ViewportWidth: viewport}, o.opts...)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	return c, nil
}

// Resize records a new layout and schedules a full redraw once resizing
// has been quiet for the configured debounce interval. Placeholders may be
// nil to keep the current ones.
func (o *Orchestrator) Resize(viewport float64, placeholders []Placeholder) {
	o.mu.Lock()
	o.viewport = viewport
	if placeholders != nil {
		o.placeholders = append([]Placeholder(nil), placeholders...)
	}
	o.mu.Unlock()

	o.debounce.Trigger(func() {
		report := o.Redraw()
		o.mu.RLock()
		f := o.onRedraw
		o.mu.RUnlock()
		if f != nil {
			f(report)
		}
	})
}

// ResizePending reports whether a debounced redraw is waiting.
func (o *Orchestrator) ResizePending() bool {
	return o.debounce.Pending()
}

// Redraw rebuilds every chart with the last known layout. User drawings are
// discarded.
func (o *Orchestrator) Redraw() DrawReport {
	o.mu.RLock()
	viewport := o.viewport
	placeholders := append([]Placeholder(nil), o.placeholders...)
	o.mu.RUnlock()
	return o.Draw(viewport, placeholders)
}

// Chart returns the live chart for key.
func (o *Orchestrator) Chart(key string) (*Chart, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	c, ok := o.charts[key]
	return c, ok
}

// Placeholders returns the current placeholders in page order.
func (o *Orchestrator) Placeholders() []Placeholder {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]Placeholder(nil), o.placeholders...)
}

// Viewport returns the last known viewport width.
func (o *Orchestrator) Viewport() float64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.viewport
}

// Close cancels a pending redraw.
func (o *Orchestrator) Close() {
	o.debounce.Stop()
}
