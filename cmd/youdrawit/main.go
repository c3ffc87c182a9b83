// ABOUTME: CLI entrypoint for youdrawit with server, terminal, export, stats, and validate modes.
// ABOUTME: Wires dataset loading, engine config, the guess store, the HTTP server, and signal handling.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/youdrawit/chart"
	"github.com/2389-research/youdrawit/render"
	"github.com/2389-research/youdrawit/series"
	"github.com/2389-research/youdrawit/store"
	"github.com/2389-research/youdrawit/tui"
	"github.com/2389-research/youdrawit/web"
)

var version = "dev"

// config holds all CLI configuration parsed from flags.
type config struct {
	serverMode   bool
	port         int
	validateOnly bool
	tuiKey       string
	exportKey    string
	statsKey     string
	format       string
	width        float64
	viewport     float64
	output       string
	dataDir      string
	dbPath       string
	configFile   string
	noStore      bool
	verbose      bool
	showVersion  bool
}

func main() {
	loadDotEnvAuto()

	cfg, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if cfg.showVersion {
		fmt.Printf("youdrawit %s\n", version)
		os.Exit(0)
	}

	os.Exit(run(cfg))
}

// parseArgs parses command-line flags and returns a populated config.
// Environment variables supply defaults for the data, db and config paths.
func parseArgs(args []string, stderr io.Writer) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("youdrawit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cfg.serverMode, "server", false, "Start HTTP server mode")
	fs.IntVar(&cfg.port, "port", 2389, "Server port (default: 2389)")
	fs.BoolVar(&cfg.validateOnly, "validate", false, "Check every dataset can be drawn")
	fs.StringVar(&cfg.tuiKey, "tui", "", "Draw the named dataset in the terminal")
	fs.StringVar(&cfg.exportKey, "export", "", "Write a static chart for the named dataset")
	fs.StringVar(&cfg.statsKey, "stats", "", "Print the average recorded guess for the named dataset")
	fs.StringVar(&cfg.format, "format", render.FormatSVG, "Export format: svg, html, png")
	fs.Float64Var(&cfg.width, "width", 600, "Chart width in pixels")
	fs.Float64Var(&cfg.viewport, "viewport", 1024, "Viewport width in pixels")
	fs.StringVar(&cfg.output, "o", "", "Export output file (default: stdout)")
	fs.StringVar(&cfg.dataDir, "data", envOr("YOUDRAWIT_DATA", "data"), "Dataset directory")
	fs.StringVar(&cfg.dbPath, "db", os.Getenv("YOUDRAWIT_DB"), "Guess database path")
	fs.StringVar(&cfg.configFile, "config", os.Getenv("YOUDRAWIT_CONFIG"), "Engine config YAML")
	fs.BoolVar(&cfg.noStore, "no-store", false, "Do not record guesses")
	fs.BoolVar(&cfg.verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		printHelp(stderr, version)
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// run dispatches to the appropriate mode based on the config.
// Returns an exit code: 0 for success, 1 for failure.
func run(cfg config) int {
	if cfg.tuiKey != "" && !cfg.verbose {
		// The alternate screen owns the terminal.
		log.SetOutput(io.Discard)
	}

	if cfg.statsKey != "" {
		return printStats(os.Stdout, cfg)
	}

	engine, err := chart.LoadConfig(resolveConfigPath(cfg.configFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if !cfg.serverMode && !cfg.validateOnly && cfg.tuiKey == "" && cfg.exportKey == "" {
		printHelp(os.Stderr, version)
		return 0
	}

	repo, err := series.LoadDir(cfg.dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if cfg.verbose {
		log.Printf("cli: loaded datasets=%d dir=%s", repo.Len(), cfg.dataDir)
	}

	switch {
	case cfg.validateOnly:
		return validateDatasets(os.Stdout, repo, engine, cfg)
	case cfg.exportKey != "":
		return exportChart(context.Background(), os.Stdout, repo, engine, cfg)
	case cfg.tuiKey != "":
		return runTUI(repo, engine, cfg)
	default:
		return runServer(repo, engine, cfg)
	}
}

// validateDatasets builds every dataset's chart at the configured layout and
// reports the ones that can not be drawn.
func validateDatasets(w io.Writer, repo *series.Repository, engine chart.Config, cfg config) int {
	layout := chart.Layout{ContainerWidth: cfg.width, ViewportWidth: cfg.viewport}
	keys := repo.Keys()
	if len(keys) == 0 {
		fmt.Fprintf(w, "No datasets found in %s.\n", cfg.dataDir)
		return 1
	}

	failed := 0
	for _, key := range keys {
		d, _ := repo.Get(key)
		c, err := chart.New(d, engine, layout)
		if err != nil {
			fmt.Fprintf(w, "[error] %s: %v\n", key, err)
			failed++
			continue
		}
		s := c.Series()
		fmt.Fprintf(w, "[ok] %s: %d-%d, drawing from %d over %d periods\n",
			key, s.MinYear(), s.MaxYear(), c.MedianYear(), len(c.Periods()))
	}

	if failed > 0 {
		fmt.Fprintf(w, "Validation failed: %d of %d datasets.\n", failed, len(keys))
		return 1
	}
	fmt.Fprintln(w, "All datasets are valid.")
	return 0
}

// exportChart renders the untouched chart for one dataset. Output goes to
// cfg.output when set, otherwise to w.
func exportChart(ctx context.Context, w io.Writer, repo *series.Repository, engine chart.Config, cfg config) int {
	d, err := repo.Get(cfg.exportKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	c, err := chart.New(d, engine, chart.Layout{ContainerWidth: cfg.width, ViewportWidth: cfg.viewport})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	out, err := render.Render(ctx, c.Scene(), cfg.format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if cfg.output != "" {
		if err := os.WriteFile(cfg.output, out, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		if cfg.verbose {
			log.Printf("cli: exported key=%s format=%s file=%s bytes=%d", cfg.exportKey, cfg.format, cfg.output, len(out))
		}
		return 0
	}
	if _, err := w.Write(out); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// runTUI draws one chart in the terminal with mouse support.
func runTUI(repo *series.Repository, engine chart.Config, cfg config) int {
	model, err := tui.NewAppModel(repo, engine, cfg.tuiKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// openGuessStore opens the guess database unless recording is disabled.
func openGuessStore(cfg config) (*store.SqliteStore, error) {
	if cfg.noStore {
		return nil, nil
	}
	path, err := resolveDBPath(cfg.dbPath)
	if err != nil {
		return nil, err
	}
	return store.OpenSqlite(path)
}

// runServer starts the HTTP server and shuts it down on SIGINT or SIGTERM.
func runServer(repo *series.Repository, engine chart.Config, cfg config) int {
	db, err := openGuessStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	var guesses web.GuessStore
	if db != nil {
		defer db.Close()
		guesses = db
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.port)
	server, err := web.NewServer(web.ServerConfig{
		Addr:            addr,
		Repo:            repo,
		Engine:          engine,
		Guesses:         guesses,
		DefaultWidth:    cfg.width,
		DefaultViewport: cfg.viewport,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer server.Close()

	// Set up context with signal handling for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("cli: shutdown failed err=%v", err)
		}
	}()

	fmt.Fprintf(os.Stderr, "listening on http://%s (datasets: %d)\n", addr, repo.Len())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// printStats prints the per-year mean of all recorded guesses for a dataset.
func printStats(w io.Writer, cfg config) int {
	path, err := resolveDBPath(cfg.dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	db, err := store.OpenSqlite(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer db.Close()

	count, err := db.CountGuesses(cfg.statsKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	averages, err := db.AverageGuess(cfg.statsKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	fmt.Fprintf(w, "%s: %d guesses\n", cfg.statsKey, count)
	if count == 0 {
		return 0
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "YEAR\tMEAN\tGUESSES")
	for _, a := range averages {
		fmt.Fprintf(tw, "%d\t%.2f\t%d\n", a.Year, a.Mean, a.Count)
	}
	tw.Flush()
	return 0
}
