// ABOUTME: Tests for the youdrawit CLI entrypoint covering flag parsing, validation, export,
// ABOUTME: guess statistics, and mode dispatch.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/2389-research/youdrawit/chart"
	"github.com/2389-research/youdrawit/series"
	"github.com/2389-research/youdrawit/store"
)

const unemploymentYAML = `title: Unemployment
unit: "%"
data:
  2010: 5
  2011: 6
  2012: 7
  2013: 9
  2014: 12
`

// writeDataDir creates a dataset directory with the given files.
func writeDataDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func loadRepo(t *testing.T, dir string) *series.Repository {
	t.Helper()
	repo, err := series.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	return repo
}

// --- parseArgs tests ---

func TestParseArgsDefaults(t *testing.T) {
	t.Setenv("YOUDRAWIT_DATA", "")
	t.Setenv("YOUDRAWIT_DB", "")
	t.Setenv("YOUDRAWIT_CONFIG", "")

	cfg, err := parseArgs(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.port != 2389 {
		t.Errorf("port = %d, want 2389", cfg.port)
	}
	if cfg.format != "svg" {
		t.Errorf("format = %q, want svg", cfg.format)
	}
	if cfg.width != 600 || cfg.viewport != 1024 {
		t.Errorf("layout = %vx%v, want 600 in a 1024 viewport", cfg.width, cfg.viewport)
	}
	if cfg.dataDir != "data" {
		t.Errorf("dataDir = %q, want data", cfg.dataDir)
	}
	if cfg.serverMode || cfg.validateOnly || cfg.noStore {
		t.Error("mode flags should default to false")
	}
}

func TestParseArgsFlags(t *testing.T) {
	cfg, err := parseArgs([]string{
		"-server", "-port", "8080", "-data", "/tmp/q", "-db", "/tmp/g.db",
		"-export", "unemployment", "-format", "png", "-width", "400", "-o", "out.png", "-no-store",
	}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if !cfg.serverMode || cfg.port != 8080 {
		t.Errorf("server = %v port = %d", cfg.serverMode, cfg.port)
	}
	if cfg.dataDir != "/tmp/q" || cfg.dbPath != "/tmp/g.db" {
		t.Errorf("paths = %q %q", cfg.dataDir, cfg.dbPath)
	}
	if cfg.exportKey != "unemployment" || cfg.format != "png" || cfg.width != 400 || cfg.output != "out.png" {
		t.Errorf("export config = %+v", cfg)
	}
	if !cfg.noStore {
		t.Error("noStore not set")
	}
}

func TestParseArgsEnvironmentDefaults(t *testing.T) {
	t.Setenv("YOUDRAWIT_DATA", "/srv/questions")
	t.Setenv("YOUDRAWIT_DB", "/srv/guesses.db")

	cfg, err := parseArgs(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.dataDir != "/srv/questions" || cfg.dbPath != "/srv/guesses.db" {
		t.Errorf("paths = %q %q", cfg.dataDir, cfg.dbPath)
	}

	cfg, _ = parseArgs([]string{"-data", "local"}, &bytes.Buffer{})
	if cfg.dataDir != "local" {
		t.Errorf("flag should override environment, got %q", cfg.dataDir)
	}
}

func TestParseArgsHelp(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseArgs([]string{"-help"}, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("err = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Error("help output missing usage")
	}
}

func TestParseArgsUnknownFlag(t *testing.T) {
	if _, err := parseArgs([]string{"-bogus"}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown flag")
	}
}

// --- validate tests ---

func TestValidateDatasets(t *testing.T) {
	dir := writeDataDir(t, map[string]string{"unemployment.yml": unemploymentYAML})
	var out bytes.Buffer

	code := validateDatasets(&out, loadRepo(t, dir), chart.DefaultConfig(), config{width: 600, viewport: 1024, dataDir: dir})
	if code != 0 {
		t.Fatalf("exit code = %d, output:\n%s", code, out.String())
	}
	if !strings.Contains(out.String(), "[ok] unemployment: 2010-2014, drawing from 2012 over 3 periods") {
		t.Errorf("output = %q", out.String())
	}
}

func TestValidateDatasetsReportsBrokenCharts(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		"unemployment.yml": unemploymentYAML,
		"single.yml":       "data:\n  2010: 5\n",
	})
	var out bytes.Buffer

	code := validateDatasets(&out, loadRepo(t, dir), chart.DefaultConfig(), config{width: 600, viewport: 1024, dataDir: dir})
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(out.String(), "[error] single") {
		t.Errorf("output missing broken dataset:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "1 of 2 datasets") {
		t.Errorf("output missing summary:\n%s", out.String())
	}
}

func TestValidateDatasetsEmptyDir(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	if code := validateDatasets(&out, loadRepo(t, dir), chart.DefaultConfig(), config{width: 600, viewport: 1024, dataDir: dir}); code != 1 {
		t.Errorf("exit code = %d, want 1 for an empty directory", code)
	}
}

// --- export tests ---

func TestExportChartSVGToWriter(t *testing.T) {
	dir := writeDataDir(t, map[string]string{"unemployment.yml": unemploymentYAML})
	var out bytes.Buffer

	cfg := config{exportKey: "unemployment", format: "svg", width: 600, viewport: 1024}
	if code := exportChart(context.Background(), &out, loadRepo(t, dir), chart.DefaultConfig(), cfg); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(out.String(), "<svg") {
		t.Errorf("output does not start with <svg: %.40q", out.String())
	}
}

func TestExportChartPNGToFile(t *testing.T) {
	dir := writeDataDir(t, map[string]string{"unemployment.yml": unemploymentYAML})
	path := filepath.Join(t.TempDir(), "chart.png")

	cfg := config{exportKey: "unemployment", format: "png", width: 600, viewport: 1024, output: path}
	if code := exportChart(context.Background(), &bytes.Buffer{}, loadRepo(t, dir), chart.DefaultConfig(), cfg); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(raw, []byte("\x89PNG")) {
		t.Error("exported file is not a PNG")
	}
}

func TestExportChartErrors(t *testing.T) {
	dir := writeDataDir(t, map[string]string{"unemployment.yml": unemploymentYAML})
	repo := loadRepo(t, dir)

	tests := []struct {
		name string
		cfg  config
	}{
		{"unknown key", config{exportKey: "missing", format: "svg", width: 600, viewport: 1024}},
		{"unknown format", config{exportKey: "unemployment", format: "gif", width: 600, viewport: 1024}},
		{"degenerate width", config{exportKey: "unemployment", format: "svg", width: 50, viewport: 1024}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := exportChart(context.Background(), &bytes.Buffer{}, repo, chart.DefaultConfig(), tt.cfg); code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
		})
	}
}

// --- stats tests ---

func TestPrintStats(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "guesses.db")
	db, err := store.OpenSqlite(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []float64{8, 10} {
		g := &store.Guess{DatasetKey: "unemployment", PageID: "p", Points: []store.GuessPoint{{Year: 2013, Value: v}}}
		if err := db.RecordGuess(g); err != nil {
			t.Fatal(err)
		}
	}
	db.Close()

	var out bytes.Buffer
	if code := printStats(&out, config{statsKey: "unemployment", dbPath: dbPath}); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "unemployment: 2 guesses") {
		t.Errorf("output = %q", out.String())
	}
	if !strings.Contains(out.String(), "2013") || !strings.Contains(out.String(), "9.00") {
		t.Errorf("output missing the 2013 mean:\n%s", out.String())
	}
}

// --- run tests ---

func TestRunWithoutModePrintsHelp(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if code := run(config{dataDir: t.TempDir()}); code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
}

func TestRunMissingDataDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := config{validateOnly: true, dataDir: filepath.Join(t.TempDir(), "nope"), width: 600, viewport: 1024}
	if code := run(cfg); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRunBadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("snap_tolerance: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if code := run(config{validateOnly: true, configFile: path, dataDir: t.TempDir()}); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}
