// ABOUTME: Chart instance owning scales, scene, drag capture and reveal state for one dataset placeholder.
// ABOUTME: Every mutation runs to completion under the instance lock; hooks fire after the lock is released.
package chart

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/2389-research/youdrawit/scale"
	"github.com/2389-research/youdrawit/series"
)

// ErrNotCompleted is returned when a reveal is requested before the user
// has drawn every year.
var ErrNotCompleted = errors.New("drawing not completed")

// Option configures optional Chart behaviour.
type Option func(*Chart)

// WithScheduler replaces the timer used for the post-reveal callback.
func WithScheduler(s Scheduler) Option {
	return func(c *Chart) {
		c.sched = s
	}
}

// WithClock replaces time.Now for animation progress.
func WithClock(now func() time.Time) Option {
	return func(c *Chart) {
		c.now = now
	}
}

// WithOnComplete registers a hook fired once when the drawing is complete.
func WithOnComplete(f func(*Chart)) Option {
	return func(c *Chart) {
		c.onComplete = f
	}
}

// WithOnReveal registers a hook fired once when the result is revealed.
func WithOnReveal(f func(*Chart)) Option {
	return func(c *Chart) {
		c.onReveal = f
	}
}

// CaptureResult reports the outcome of one drag or click.
type CaptureResult struct {
	Applied   bool        `json:"applied"`
	Completed bool        `json:"completed"`
	State     DrawState   `json:"state"`
	Path      string      `json:"path"`
	Coverage  float64     `json:"coverage"`
	Points    []UserPoint `json:"points"`
}

// Chart is one you-draw-it instance.
type Chart struct {
	mu sync.Mutex

	key      string
	dataset  *series.Dataset
	cfg      Config
	series   series.Series
	periods  []series.Period
	median   int
	scales   Scales
	base     Scene
	drag     *DragCapture
	reveal   *Reveal
	previewY float64

	now        func() time.Time
	sched      Scheduler
	onComplete func(*Chart)
	onReveal   func(*Chart)
}

// New builds a chart for d laid out in layout. It fails for datasets with
// fewer than two points, periods that can not be resolved against the data,
// and layouts leaving no plotting area.
func New(d *series.Dataset, cfg Config, layout Layout, opts ...Option) (*Chart, error) {
	s := d.Series()
	if len(s) < 2 {
		return nil, fmt.Errorf("chart %s: %w: %d points", d.Key, ErrInsufficientData, len(s))
	}

	periods, err := series.ResolvePeriods(cfg.PeriodsFor(d), s.MinYear(), s.MaxYear())
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", d.Key, err)
	}
	median := series.MedianYear(periods)

	sc, err := BuildScales(s, d, median, layout, cfg)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", d.Key, err)
	}

	c := &Chart{
		key:     d.Key,
		dataset: d,
		cfg:     cfg,
		series:  s,
		periods: periods,
		median:  median,
		scales:  sc,
		now:     time.Now,
		sched:   timerScheduler{},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.base = c.buildScene()
	c.drag = NewDragCapture(s, median, sc, cfg.SnapTolerance)
	c.reveal = NewReveal(c.base.ResultClip.Width, sc.X.Map(float64(s.MaxYear())), cfg.RevealDuration)
	c.previewY = c.base.Preview.Y2
	return c, nil
}

func (c *Chart) buildScene() Scene {
	s, sc := c.series, c.scales
	minYear, maxYear := s.MinYear(), s.MaxYear()
	medianValue, _ := c.dataset.ValueAt(c.median)
	xMedian := sc.X.Map(float64(c.median))

	scene := Scene{
		Key:        c.key,
		Width:      sc.Width,
		Height:     sc.Height,
		Margin:     sc.Margin,
		ChartW:     sc.ChartW,
		ChartH:     sc.ChartH,
		Mobile:     sc.Mobile,
		MinYear:    minYear,
		MaxYear:    maxYear,
		MedianYear: c.median,
		GraphMinY:  sc.GraphMinY,
		GraphMaxY:  sc.GraphMaxY,
		Data:       s,
	}
	for _, st := range []series.Style{series.StylePrimary, series.StyleSecondary} {
		scene.Gradients = append(scene.Gradients, Gradient{ID: gradientID(st.Class()), Class: st.Class()})
	}

	buildGrid(&scene, sc, c.periods, minYear, maxYear, c.cfg)
	buildSegments(&scene, c.dataset, s, sc, c.periods, c.median, c.cfg)

	scene.DragArea = DragArea{
		X:      xMedian,
		Width:  sc.X.Map(float64(maxYear)) - xMedian,
		Height: sc.ChartH,
		Active: true,
	}
	scene.Preview = Line{
		X1: xMedian,
		Y1: sc.Y.Map(medianValue),
		X2: xMedian + c.cfg.PreviewLength,
		Y2: sc.Y.Map(medianValue),
	}
	scene.Prompt = Prompt{Offset: xMedian, Text: c.cfg.Prompt}

	hidden := xMedian - sc.X.Map(float64(minYear))
	scene.ResultClip = Clip{
		ID:          "result-clip-" + c.key,
		Width:       hidden,
		Height:      sc.ChartH,
		TargetWidth: hidden,
		Duration:    c.cfg.RevealDuration,
	}
	return scene
}

// Key returns the dataset key this chart renders.
func (c *Chart) Key() string {
	return c.key
}

// Dataset returns the chart's dataset.
func (c *Chart) Dataset() *series.Dataset {
	return c.dataset
}

// MedianYear returns the split between history and the drawing region.
func (c *Chart) MedianYear() int {
	return c.median
}

// Periods returns the resolved periods.
func (c *Chart) Periods() []series.Period {
	return append([]series.Period(nil), c.periods...)
}

// Scales returns the chart geometry.
func (c *Chart) Scales() Scales {
	return c.scales
}

// Series returns the full actual series.
func (c *Chart) Series() series.Series {
	return c.series
}

// State returns the drawing state.
func (c *Chart) State() DrawState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drag.State()
}

// UserPoints returns a copy of the user's points.
func (c *Chart) UserPoints() []UserPoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drag.Points()
}

// Revealed reports whether the result has been revealed.
func (c *Chart) Revealed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reveal.Shown()
}

// Capture handles a drag or click at chart pixel (px, py). Input after the
// reveal, or at a non-finite position, is ignored.
func (c *Chart) Capture(px, py float64) CaptureResult {
	c.mu.Lock()
	if c.reveal.Shown() || !finite(px) || !finite(py) {
		res := c.captureResultLocked(false, false)
		c.mu.Unlock()
		return res
	}

	completed := c.drag.Capture(px, py)
	autoReveal := false
	if completed && c.cfg.AutoReveal {
		autoReveal = c.startRevealLocked()
	}
	res := c.captureResultLocked(true, completed)
	c.mu.Unlock()

	if completed && c.onComplete != nil {
		c.onComplete(c)
	}
	if autoReveal {
		c.afterReveal()
	}
	return res
}

func (c *Chart) captureResultLocked(applied, completed bool) CaptureResult {
	return CaptureResult{
		Applied:   applied,
		Completed: completed,
		State:     c.drag.State(),
		Path:      c.drag.Path(),
		Coverage:  c.drag.Coverage(),
		Points:    c.drag.Points(),
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Move positions the preview guide at chart pixel py, clamped to the value
// domain. A non-finite py leaves the guide where it was.
func (c *Chart) Move(py float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !finite(py) {
		return c.previewY
	}

	top := c.scales.Y.Map(c.scales.GraphMaxY)
	bottom := c.scales.Y.Map(c.scales.GraphMinY)
	c.previewY = scale.Clamp(top, bottom, py)
	return c.previewY
}

// Reveal unclips the result segment. It returns false when the result was
// already revealed, and ErrNotCompleted while years are still undrawn.
func (c *Chart) Reveal() (bool, error) {
	c.mu.Lock()
	if c.drag.State() != StateCompleted {
		c.mu.Unlock()
		return false, ErrNotCompleted
	}
	fired := c.startRevealLocked()
	c.mu.Unlock()

	if fired {
		c.afterReveal()
	}
	return fired, nil
}

func (c *Chart) startRevealLocked() bool {
	return c.reveal.Start(c.now())
}

// afterReveal schedules the settle step and fires the reveal hook. It runs
// without the lock held so schedulers may call back synchronously.
func (c *Chart) afterReveal() {
	c.sched.AfterFunc(c.cfg.RevealDuration, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.reveal.Settle()
	})
	if c.onReveal != nil {
		c.onReveal(c)
	}
}

// ClipWidthAt returns the result clip width at time t, for surfaces that
// animate frame by frame.
func (c *Chart) ClipWidthAt(t time.Time) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reveal.WidthAt(t)
}

// Scene returns a snapshot of the chart's current scene.
func (c *Chart) Scene() Scene {
	c.mu.Lock()
	defer c.mu.Unlock()

	scene := c.base.clone()
	state := c.drag.State()
	if state != StateIdle {
		scene.Classes = append(scene.Classes, "drawn")
	}

	scene.UserPath = c.drag.Path()
	scene.UserPoints = c.drag.Points()
	scene.Preview.Y2 = c.previewY

	shown := c.reveal.Shown()
	settled := c.reveal.Settled()
	scene.DragArea.Active = !shown

	if shown {
		scene.ResultClip.TargetWidth = c.reveal.toWidth
		scene.ResultClip.Width = c.reveal.WidthAt(c.now())
		scene.ResultClip.Animating = !settled
	}
	if settled {
		for i := range scene.Labels {
			if scene.Labels[i].Result {
				scene.Labels[i].Opacity = 1
			}
		}
		for i := range scene.Dots {
			if scene.Dots[i].Result {
				scene.Dots[i].Opacity = 1
			}
		}
	}

	scene.Result = ResultState{
		Completed: state == StateCompleted,
		Revealed:  shown,
		Shown:     settled,
	}
	return scene
}
