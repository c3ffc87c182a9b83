// ABOUTME: Tests for .env loading: plain and quoted values, comments, missing files, and no-clobber behavior.
package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempEnv(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// unset clears a variable for the duration of the test.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadDotEnvSetsVariables(t *testing.T) {
	path := writeTempEnv(t, "# comment\nTEST_YDI_A=hello\n\nexport TEST_YDI_B=\"quoted value\"\n")
	unset(t, "TEST_YDI_A")
	unset(t, "TEST_YDI_B")

	loadDotEnv(path)

	if got := os.Getenv("TEST_YDI_A"); got != "hello" {
		t.Errorf("TEST_YDI_A = %q, want hello", got)
	}
	if got := os.Getenv("TEST_YDI_B"); got != "quoted value" {
		t.Errorf("TEST_YDI_B = %q, want quoted value", got)
	}
}

func TestLoadDotEnvNoClobber(t *testing.T) {
	path := writeTempEnv(t, "TEST_YDI_C=from-file\n")
	t.Setenv("TEST_YDI_C", "from-env")

	loadDotEnv(path)

	if got := os.Getenv("TEST_YDI_C"); got != "from-env" {
		t.Errorf("TEST_YDI_C = %q, existing value was overwritten", got)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	loadDotEnv(filepath.Join(t.TempDir(), "nope.env"))
}

func TestEnvOr(t *testing.T) {
	t.Setenv("TEST_YDI_D", "set")
	if got := envOr("TEST_YDI_D", "def"); got != "set" {
		t.Errorf("envOr = %q, want set", got)
	}
	unset(t, "TEST_YDI_E")
	if got := envOr("TEST_YDI_E", "def"); got != "def" {
		t.Errorf("envOr = %q, want def", got)
	}
}
