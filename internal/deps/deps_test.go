package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unconfigured", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected status for unconfigured command: %#v", results[2])
	}
}

func TestMissingRequiredSkipsOptional(t *testing.T) {
	statuses := []Status{
		{Name: "FFmpeg", Available: false},
		{Name: "FFprobe", Available: false, Optional: true},
		{Name: "Other", Available: true},
	}
	missing := MissingRequired(statuses)
	if len(missing) != 1 || missing[0] != "FFmpeg" {
		t.Fatalf("unexpected missing list: %v", missing)
	}
}
