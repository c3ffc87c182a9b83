// ABOUTME: HTTP server for the you-draw-it page: one chi router serving the page, chart fragments and interaction endpoints.
// ABOUTME: Pages hold per-reader orchestrators; completed guesses are recorded to an optional guess store.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/2389-research/youdrawit/chart"
	"github.com/2389-research/youdrawit/render"
	"github.com/2389-research/youdrawit/series"
	"github.com/2389-research/youdrawit/store"
)

// GuessStore persists completed drawings.
type GuessStore interface {
	RecordGuess(g *store.Guess) error
	AverageGuess(datasetKey string) ([]store.YearAverage, error)
	CountGuesses(datasetKey string) (int, error)
}

// ServerConfig holds the configuration for the web server.
type ServerConfig struct {
	Addr            string             // listen address (default: "127.0.0.1:2389")
	Repo            *series.Repository // datasets to draw
	Engine          chart.Config       // engine tunables
	Guesses         GuessStore         // optional guess persistence
	MaxPages        int                // live page cap (default: 500)
	PageTTL         time.Duration      // idle page lifetime (default: 2h)
	RenderTTL       time.Duration      // rendered fragment lifetime (default: 10m)
	DefaultWidth    float64            // chart width before the client reports one (default: 600)
	DefaultViewport float64            // viewport width before the client reports one (default: 1024)
}

// Server is the you-draw-it HTTP server.
type Server struct {
	repo            *series.Repository
	engine          chart.Config
	guesses         GuessStore
	pages           *PageStore
	templates       *TemplateEngine
	cache           *render.RenderCache
	router          chi.Router
	httpServer      *http.Server
	addr            string
	defaultWidth    float64
	defaultViewport float64
	stopCleanup     func()
}

// NewServer creates a new Server with the given configuration and sets up routing.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Repo == nil {
		return nil, fmt.Errorf("Repo must not be nil")
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:2389"
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 500
	}
	if cfg.PageTTL <= 0 {
		cfg.PageTTL = 2 * time.Hour
	}
	if cfg.RenderTTL <= 0 {
		cfg.RenderTTL = 10 * time.Minute
	}
	if cfg.DefaultWidth <= 0 {
		cfg.DefaultWidth = 600
	}
	if cfg.DefaultViewport <= 0 {
		cfg.DefaultViewport = 1024
	}

	tmpl, err := NewTemplateEngine()
	if err != nil {
		return nil, fmt.Errorf("initializing templates: %w", err)
	}

	s := &Server{
		repo:            cfg.Repo,
		engine:          cfg.Engine,
		guesses:         cfg.Guesses,
		templates:       tmpl,
		cache:           render.NewRenderCache(render.Render, cfg.RenderTTL),
		addr:            cfg.Addr,
		defaultWidth:    cfg.DefaultWidth,
		defaultViewport: cfg.DefaultViewport,
	}
	s.pages = NewPageStore(cfg.MaxPages, cfg.PageTTL, s.newOrchestrator)
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
	s.stopCleanup = startSweeper(time.Minute, s.sweep)
	return s, nil
}

// sweep drops idle pages and expired renders.
func (s *Server) sweep() {
	s.pages.Cleanup()
	if n := s.cache.Prune(); n > 0 {
		log.Printf("web: render cache pruned entries=%d remaining=%d", n, s.cache.Len())
	}
}

// startSweeper runs sweep on every tick until the returned stop function is called.
func startSweeper(interval time.Duration, sweep func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				sweep()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

// newOrchestrator wires a page's charts to guess recording.
func (s *Server) newOrchestrator(pageID string) *chart.Orchestrator {
	return chart.NewOrchestrator(s.repo, s.engine,
		chart.WithOnComplete(func(c *chart.Chart) {
			log.Printf("web: chart completed page=%s key=%s", pageID, c.Key())
			s.recordGuess(pageID, c)
		}),
		chart.WithOnReveal(func(c *chart.Chart) {
			log.Printf("web: chart revealed page=%s key=%s", pageID, c.Key())
		}),
	)
}

func (s *Server) recordGuess(pageID string, c *chart.Chart) {
	if s.guesses == nil {
		return
	}
	g := &store.Guess{DatasetKey: c.Key(), PageID: pageID}
	for _, p := range c.UserPoints() {
		if p.Year == c.MedianYear() {
			continue
		}
		g.Points = append(g.Points, store.GuessPoint{Year: p.Year, Value: p.Value})
	}
	if err := s.guesses.RecordGuess(g); err != nil {
		log.Printf("web: record guess failed page=%s key=%s err=%v", pageID, c.Key(), err)
	}
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on the configured address with
// timeouts that bound slow clients. It returns http.ErrServerClosed after
// Shutdown.
func (s *Server) ListenAndServe() error {
	log.Printf("web: listening addr=%s datasets=%d", s.addr, s.repo.Len())
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the sweeper and gracefully drains open connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Close()
	return s.httpServer.Shutdown(ctx)
}

// Close stops background page and render cache cleanup.
func (s *Server) Close() {
	s.stopCleanup()
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(webRequestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/health", s.handleHealth)

	staticFS, err := fs.Sub(StaticFS, "static")
	if err != nil {
		log.Printf("WARNING: failed to create static sub-FS: %v", err)
	} else {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Get("/charts/{key}.svg", s.handleStaticSVG)
	r.Get("/datasets/{key}/guesses", s.handleGuesses)

	r.Route("/pages/{pageID}", func(r chi.Router) {
		r.Post("/resize", s.handleResize)
		r.Route("/charts/{key}", func(r chi.Router) {
			r.Get("/", s.handleChart)
			r.Get("/share.png", s.handleSharePNG)
			r.Post("/drag", s.handleCapture)
			r.Post("/click", s.handleCapture)
			r.Post("/move", s.handleMove)
			r.Post("/reveal", s.handleReveal)
		})
	})

	return r
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "datasets": s.repo.Len(), "pages": s.pages.Len()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: encode response failed: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
