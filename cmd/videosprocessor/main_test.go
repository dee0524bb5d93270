package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func setTempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output %q does not contain %q", haystack, needle)
	}
}

func TestConfigInitCreatesSample(t *testing.T) {
	setTempHome(t)
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	requireContains(t, string(data), "[paths]")

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("second init without --overwrite must fail")
	}
	if _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("init with --overwrite: %v", err)
	}
}

func TestConfigValidateWithDefaults(t *testing.T) {
	setTempHome(t)

	out, err := runCLI(t, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "defaults were used")
}

func TestConfigShowPrintsEffectiveTOML(t *testing.T) {
	setTempHome(t)

	out, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[encoding]")
	requireContains(t, out, "audio_bitrate")
	requireContains(t, out, "18k")
}

func TestConfigPathReportsMissingFile(t *testing.T) {
	home := setTempHome(t)

	out, err := runCLI(t, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	requireContains(t, out, filepath.Join(home, ".config", "videosprocessor", "config.toml"))
	requireContains(t, out, "not created yet")
}

func TestHistoryEmptyJournal(t *testing.T) {
	setTempHome(t)

	out, err := runCLI(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded yet")
}

func TestRootAcceptsSessionFlags(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"skip-audio", "skip-video", "debug-program"} {
		if root.Flags().Lookup(name) == nil {
			t.Errorf("root command missing --%s", name)
		}
	}

	run, _, err := root.Find([]string{"run"})
	if err != nil {
		t.Fatalf("find run command: %v", err)
	}
	for _, name := range []string{"skip-audio", "skip-video", "debug-program"} {
		if run.Flags().Lookup(name) == nil {
			t.Errorf("run command missing --%s", name)
		}
	}
}

func TestEnsureConfigLoadsOnce(t *testing.T) {
	setTempHome(t)

	flag := ""
	ctx := newCommandContext(&flag)

	first, err := ctx.ensureConfig()
	if err != nil {
		t.Fatalf("ensureConfig: %v", err)
	}
	if first == nil {
		t.Fatal("expected a loaded config")
	}
	second, err := ctx.ensureConfig()
	if err != nil {
		t.Fatalf("ensureConfig again: %v", err)
	}
	if first != second {
		t.Fatal("config must be loaded once and cached")
	}
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := renderTable(
		[]string{"Name", "Count"},
		[][]string{{"audio", "2"}, {"video", "17"}},
		2,
	)
	requireContains(t, out, "Name")
	requireContains(t, out, "17")
	if len(strings.Split(out, "\n")) < 4 {
		t.Fatalf("table output too small:\n%s", out)
	}
}
