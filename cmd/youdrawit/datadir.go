// ABOUTME: XDG-based data and config directory resolution for the youdrawit CLI.
// ABOUTME: Checks XDG_DATA_HOME / XDG_CONFIG_HOME, falls back to ~/.local/share/youdrawit and ~/.config/youdrawit.
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultDataDir returns the directory holding the guess database.
// It checks XDG_DATA_HOME first, then falls back to ~/.local/share/youdrawit.
func defaultDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "youdrawit"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, ".local", "share", "youdrawit"), nil
}

// defaultConfigDir returns the directory searched for config.yaml.
// It checks XDG_CONFIG_HOME first, then falls back to ~/.config/youdrawit.
func defaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "youdrawit"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, ".config", "youdrawit"), nil
}

// resolveDBPath returns the guess database path, preferring an explicit
// override. The default directory is created on demand.
func resolveDBPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	dir, err := defaultDataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return filepath.Join(dir, "guesses.db"), nil
}

// resolveConfigPath returns the engine config path. Without an override the
// XDG config file is used when it exists; otherwise defaults apply.
func resolveConfigPath(override string) string {
	if override != "" {
		return override
	}
	dir, err := defaultConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
