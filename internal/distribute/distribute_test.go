package distribute_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mahmoud-drwsh/VideosProcessor/internal/distribute"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/naming"
)

func setup(t *testing.T) (string, naming.Artifacts) {
	t.Helper()
	layout := naming.Layout{
		WorkDir:       t.TempDir(),
		OriginalsDir:  filepath.Join(t.TempDir(), "originals"),
		CompressedDir: t.TempDir(),
		AudioDir:      t.TempDir(),
	}
	if err := os.MkdirAll(layout.OriginalsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	art := layout.Plan("20240105 Talk", ".mkv", time.Date(2024, 7, 15, 0, 0, 0, 0, time.Local))

	source := filepath.Join(t.TempDir(), "recording.mkv")
	if err := os.WriteFile(source, []byte("original frames"), 0o644); err != nil {
		t.Fatal(err)
	}
	return source, art
}

func TestStageOriginal(t *testing.T) {
	source, art := setup(t)
	stage := distribute.New(nil)

	if err := stage.StageOriginal(source, art); err != nil {
		t.Fatalf("StageOriginal: %v", err)
	}
	data, err := os.ReadFile(art.WorkOriginal)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "original frames" {
		t.Fatalf("unexpected staged content: %q", data)
	}

	// Second call is a no-op.
	if err := stage.StageOriginal(source, art); err != nil {
		t.Fatalf("re-run StageOriginal: %v", err)
	}
}

func TestDistributeAllArtifacts(t *testing.T) {
	source, art := setup(t)
	if err := os.WriteFile(art.WorkAudio, []byte("opus"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(art.WorkVideo, []byte("h265"), 0o644); err != nil {
		t.Fatal(err)
	}

	stage := distribute.New(nil)
	report, err := stage.Distribute(source, art, false, false)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}

	if report.Original != distribute.OutcomeCopied {
		t.Fatalf("original outcome = %v", report.Original)
	}
	if report.Audio != distribute.OutcomeCopied || report.Video != distribute.OutcomeCopied {
		t.Fatalf("artifact outcomes = %+v", report)
	}

	for _, path := range []string{art.FinalOriginal, art.FinalAudio, art.FinalVideo} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %q to exist: %v", path, err)
		}
	}
	// Dated folder is named after the run date.
	if filepath.Base(art.DatedDir) != "2024-07-15" {
		t.Fatalf("unexpected dated folder: %q", art.DatedDir)
	}
}

func TestDistributeNeverOverwrites(t *testing.T) {
	source, art := setup(t)
	if err := os.WriteFile(art.WorkAudio, []byte("opus"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(art.DatedDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(art.FinalAudio, []byte("prior audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(art.FinalOriginal, []byte("prior original"), 0o644); err != nil {
		t.Fatal(err)
	}

	stage := distribute.New(nil)
	report, err := stage.Distribute(source, art, false, true)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if report.Original != distribute.OutcomeAlreadyDone {
		t.Fatalf("original outcome = %v", report.Original)
	}
	if report.Audio != distribute.OutcomeAlreadyDone {
		t.Fatalf("audio outcome = %v", report.Audio)
	}

	data, err := os.ReadFile(art.FinalAudio)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "prior audio" {
		t.Fatalf("existing destination overwritten: %q", data)
	}
}

func TestDistributeSkipFlags(t *testing.T) {
	source, art := setup(t)
	stage := distribute.New(nil)

	report, err := stage.Distribute(source, art, true, true)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if report.Audio != distribute.OutcomeSkipped || report.Video != distribute.OutcomeSkipped {
		t.Fatalf("expected skipped outcomes, got %+v", report)
	}
	if _, err := os.Stat(art.FinalAudio); !os.IsNotExist(err) {
		t.Fatal("skip-audio must not copy audio")
	}
}

func TestDistributeMissingArtifactIsReported(t *testing.T) {
	source, art := setup(t)
	stage := distribute.New(nil)

	// Neither work artifact exists (encodes failed); distribution continues.
	report, err := stage.Distribute(source, art, false, false)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if report.Audio != distribute.OutcomeMissing || report.Video != distribute.OutcomeMissing {
		t.Fatalf("expected missing outcomes, got %+v", report)
	}
	if report.Original != distribute.OutcomeCopied {
		t.Fatalf("original must still be filed, got %v", report.Original)
	}
}
