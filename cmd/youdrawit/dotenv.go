// ABOUTME: Loads environment variables from .env files at startup using godotenv.
// ABOUTME: Variables already present in the environment are never overwritten.
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// loadDotEnv loads one .env file. Missing files are silently ignored.
func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("dotenv: skip file=%s err=%v", path, err)
	}
}

// loadDotEnvAuto loads .env files from common locations. Search order:
//  1. .env in current directory and its parents
//  2. .env next to the current executable
//
// Earlier files win because godotenv never clobbers.
func loadDotEnvAuto() {
	seen := map[string]bool{}

	addPath := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		loadDotEnv(p)
	}

	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for {
			addPath(filepath.Join(dir, ".env"))
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	if exe, err := os.Executable(); err == nil {
		addPath(filepath.Join(filepath.Dir(exe), ".env"))
	}
}

// envOr returns the named variable or def when unset.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
