// ABOUTME: Tests for XDG-based data and config directory resolution.
package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultDataDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	dir, err := defaultDataDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-data", "youdrawit"); dir != want {
		t.Errorf("got %q, want %q", dir, want)
	}
}

func TestDefaultDataDirFallsBackToHome(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	dir, err := defaultDataDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join(".local", "share", "youdrawit")) {
		t.Errorf("got %q, want suffix .local/share/youdrawit", dir)
	}
}

func TestDefaultConfigDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	dir, err := defaultConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-config", "youdrawit"); dir != want {
		t.Errorf("got %q, want %q", dir, want)
	}
}

func TestResolveDBPath(t *testing.T) {
	if got, _ := resolveDBPath("/explicit/guesses.db"); got != "/explicit/guesses.db" {
		t.Errorf("override ignored: %q", got)
	}

	xdg := t.TempDir()
	t.Setenv("XDG_DATA_HOME", xdg)
	got, err := resolveDBPath("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(xdg, "youdrawit", "guesses.db"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Dir(got)); err != nil {
		t.Errorf("data dir not created: %v", err)
	}
}

func TestResolveConfigPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	if got := resolveConfigPath(""); got != "" {
		t.Errorf("missing config file should give defaults, got %q", got)
	}

	path := filepath.Join(xdg, "youdrawit", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("height: 300\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := resolveConfigPath(""); got != path {
		t.Errorf("got %q, want %q", got, path)
	}
	if got := resolveConfigPath("other.yaml"); got != "other.yaml" {
		t.Errorf("override ignored: %q", got)
	}
}
