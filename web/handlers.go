// ABOUTME: HTTP handlers for the page, chart fragments, pointer interaction, reveal, resize and guess statistics.
// ABOUTME: Pointer coordinates arrive in chart pixel space, already offset by the chart margins.
package web

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/2389-research/youdrawit/chart"
	"github.com/2389-research/youdrawit/render"
	"github.com/2389-research/youdrawit/series"
)

// ChartView is one dataset slot on the page.
type ChartView struct {
	Key      string
	Title    string
	Question string
	Result   string
	Fragment template.HTML
	Skipped  string
}

// handleHome creates a page session and renders every dataset's chart.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	viewport := queryFloat(r, "viewport", s.defaultViewport)
	width := queryFloat(r, "width", s.defaultWidth)

	var placeholders []chart.Placeholder
	for _, key := range s.repo.Keys() {
		placeholders = append(placeholders, chart.Placeholder{Key: key, Width: width})
	}
	page, report := s.pages.Create(viewport, placeholders)

	data := PageData{
		Title:      "You draw it",
		PageID:     page.ID,
		DebounceMs: s.engine.ResizeDebounce.Milliseconds(),
		RevealMs:   s.engine.RevealDuration.Milliseconds(),
	}
	for _, key := range s.repo.Keys() {
		d, err := s.repo.Get(key)
		if err != nil {
			continue
		}
		view := ChartView{Key: key, Title: d.Title, Question: d.Question, Result: d.Result}
		if err := report.Skipped[key]; err != nil {
			view.Skipped = err.Error()
		} else if c, ok := page.Orchestrator.Chart(key); ok {
			frag, err := s.cache.RenderScene(r.Context(), c.Scene(), render.FormatHTML)
			if err != nil {
				log.Printf("web: render fragment failed key=%s err=%v", key, err)
				view.Skipped = err.Error()
			} else {
				view.Fragment = template.HTML(frag)
			}
		}
		data.Charts = append(data.Charts, view)
	}

	if err := s.templates.Render(w, "page.html", data); err != nil {
		log.Printf("error rendering page: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// lookupChart resolves the page and chart named in the URL, writing a 404
// when either is unknown.
func (s *Server) lookupChart(w http.ResponseWriter, r *http.Request) (*chart.Chart, bool) {
	page, ok := s.pages.Get(chi.URLParam(r, "pageID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown page")
		return nil, false
	}
	c, ok := page.Orchestrator.Chart(chi.URLParam(r, "key"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown chart")
		return nil, false
	}
	return c, true
}

// handleChart returns the chart fragment for the current state.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookupChart(w, r)
	if !ok {
		return
	}
	s.writeScene(w, r, c.Scene(), render.FormatHTML)
}

// handleSharePNG returns a PNG of the chart in its current state.
func (s *Server) handleSharePNG(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookupChart(w, r)
	if !ok {
		return
	}
	s.writeScene(w, r, c.Scene(), render.FormatPNG)
}

func (s *Server) writeScene(w http.ResponseWriter, r *http.Request, scene chart.Scene, format string) {
	data, err := s.cache.RenderScene(r.Context(), scene, format)
	if err != nil {
		log.Printf("web: render failed key=%s format=%s err=%v", scene.Key, format, err)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", render.ContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type captureResponse struct {
	Applied   bool              `json:"applied"`
	Completed bool              `json:"completed"`
	Finished  bool              `json:"finished"`
	State     chart.DrawState   `json:"state"`
	Path      string            `json:"path"`
	Coverage  float64           `json:"coverage"`
	Points    []chart.UserPoint `json:"points"`
}

// handleCapture applies a drag or click at (x, y).
func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookupChart(w, r)
	if !ok {
		return
	}
	x, errX := formFloat(r, "x")
	y, errY := formFloat(r, "y")
	if errX != nil || errY != nil {
		writeError(w, http.StatusUnprocessableEntity, "x and y must be finite numbers")
		return
	}

	res := c.Capture(x, y)
	writeJSON(w, http.StatusOK, captureResponse{
		Applied:   res.Applied,
		Completed: res.State == chart.StateCompleted,
		Finished:  res.Completed,
		State:     res.State,
		Path:      res.Path,
		Coverage:  res.Coverage,
		Points:    res.Points,
	})
}

// handleMove positions the preview guide.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookupChart(w, r)
	if !ok {
		return
	}
	y, err := formFloat(r, "y")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "y must be a finite number")
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"y2": c.Move(y)})
}

// handleReveal unclips the result.
func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookupChart(w, r)
	if !ok {
		return
	}
	fired, err := c.Reveal()
	if errors.Is(err, chart.ErrNotCompleted) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	scene := c.Scene()
	writeJSON(w, http.StatusOK, map[string]any{
		"fired":      fired,
		"clipWidth":  scene.ResultClip.TargetWidth,
		"durationMs": scene.ResultClip.Duration.Milliseconds(),
	})
}

// handleResize records the client's layout and schedules a debounced
// rebuild of every chart on the page. Widths arrive as width.<key> fields.
func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	page, ok := s.pages.Get(chi.URLParam(r, "pageID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown page")
		return
	}
	viewport, err := formFloat(r, "viewport")
	if err != nil || !(viewport > 0) {
		writeError(w, http.StatusUnprocessableEntity, "viewport must be a positive number")
		return
	}

	placeholders := page.Orchestrator.Placeholders()
	for i, ph := range placeholders {
		raw := r.PostForm.Get("width." + ph.Key)
		if raw == "" {
			continue
		}
		width, err := parseFinite(raw)
		if err != nil || !(width > 0) {
			writeError(w, http.StatusUnprocessableEntity, "width."+ph.Key+" must be a positive number")
			return
		}
		placeholders[i].Width = width
	}

	page.Orchestrator.Resize(viewport, placeholders)
	writeJSON(w, http.StatusAccepted, map[string]int64{"debounceMs": s.engine.ResizeDebounce.Milliseconds()})
}

// handleStaticSVG renders a fresh, undrawn chart without creating a page.
func (s *Server) handleStaticSVG(w http.ResponseWriter, r *http.Request) {
	d, err := s.repo.Get(chi.URLParam(r, "key"))
	if errors.Is(err, series.ErrUnknownDataset) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	layout := chart.Layout{
		ContainerWidth: queryFloat(r, "width", s.defaultWidth),
		ViewportWidth:  queryFloat(r, "viewport", s.defaultViewport),
	}
	c, err := chart.New(d, s.engine, layout)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.writeScene(w, r, c.Scene(), render.FormatSVG)
}

// handleGuesses returns per-year averages of everyone's guesses.
func (s *Server) handleGuesses(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if _, err := s.repo.Get(key); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if s.guesses == nil {
		writeError(w, http.StatusNotFound, "guess storage disabled")
		return
	}

	count, err := s.guesses.CountGuesses(key)
	if err != nil {
		log.Printf("web: count guesses failed key=%s err=%v", key, err)
		writeError(w, http.StatusInternalServerError, "guess lookup failed")
		return
	}
	averages, err := s.guesses.AverageGuess(key)
	if err != nil {
		log.Printf("web: average guesses failed key=%s err=%v", key, err)
		writeError(w, http.StatusInternalServerError, "guess lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"dataset":  key,
		"count":    count,
		"averages": averages,
	})
}

var errNotFinite = errors.New("not a finite number")

func parseFinite(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", raw, errNotFinite)
	}
	return v, nil
}

func formFloat(r *http.Request, name string) (float64, error) {
	return parseFinite(r.FormValue(name))
}

func queryFloat(r *http.Request, name string, fallback float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := parseFinite(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
