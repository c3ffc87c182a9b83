// ABOUTME: Tests for the help output and environment status helper.
package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintHelpSections(t *testing.T) {
	var buf bytes.Buffer
	printHelp(&buf, "1.2.3")
	out := buf.String()

	for _, want := range []string{
		"youdrawit 1.2.3",
		"Usage:",
		"Data Flags:",
		"Server Flags:",
		"Export Flags:",
		"-tui <key>",
		"-validate",
		"Environment:",
		"YOUDRAWIT_DATA",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestEnvStatus(t *testing.T) {
	t.Setenv("TEST_YDI_STATUS", "x")
	if got := envStatus("TEST_YDI_STATUS"); got != "[set]" {
		t.Errorf("envStatus = %q, want [set]", got)
	}
	t.Setenv("TEST_YDI_STATUS", "")
	if got := envStatus("TEST_YDI_STATUS"); got != "[not set]" {
		t.Errorf("envStatus = %q, want [not set]", got)
	}
}
