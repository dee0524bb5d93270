package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mahmoud-drwsh/VideosProcessor/internal/config"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/distribute"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/encode"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/journal"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/media/ffprobe"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/services"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/services/ffmpeg"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/titlegate"
)

type fakeGate struct {
	outcome titlegate.Outcome
	err     error
}

func (f *fakeGate) Await(_ context.Context, _ titlegate.ConfirmRequest) (titlegate.Outcome, error) {
	return f.outcome, f.err
}

type fakePicker struct {
	path   string
	picked bool
}

func (f *fakePicker) Pick(_ context.Context, _ string) (string, bool, error) {
	return f.path, f.picked, nil
}

type fakeClient struct {
	audioCalls int
	videoCalls int
	failAudio  bool
}

func (f *fakeClient) ExtractAudio(_ context.Context, req ffmpeg.AudioRequest) error {
	f.audioCalls++
	if f.failAudio {
		return errors.New("encoder exploded")
	}
	return os.WriteFile(req.Output, []byte("opus"), 0o644)
}

func (f *fakeClient) CompressVideo(_ context.Context, req ffmpeg.VideoRequest) error {
	f.videoCalls++
	return os.WriteFile(req.Output, []byte("x265"), 0o644)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(root, "work")
	cfg.Paths.OriginalsDir = filepath.Join(root, "originals")
	cfg.Paths.CompressedDir = filepath.Join(root, "compressed")
	cfg.Paths.AudioDir = filepath.Join(root, "audio")
	cfg.Paths.SourceDir = filepath.Join(root, "source")
	cfg.Paths.TitleFile = filepath.Join(root, "title.txt")
	cfg.Paths.LogDir = filepath.Join(root, "logs")
	cfg.Journal.Path = filepath.Join(root, "journal.db")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	return &cfg
}

func writeSource(t *testing.T, cfg *config.Config, name string) string {
	t.Helper()
	path := filepath.Join(cfg.Paths.SourceDir, name)
	if err := os.WriteFile(path, []byte("recording"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func stubWaits(t *testing.T) {
	t.Helper()
	prevWait, prevInspect := waitUnlocked, inspectMedia
	waitUnlocked = func(context.Context, string, time.Duration) error { return nil }
	inspectMedia = func(context.Context, string, string) (ffprobe.Result, error) {
		return ffprobe.Result{}, errors.New("no ffprobe in tests")
	}
	t.Cleanup(func() {
		waitUnlocked = prevWait
		inspectMedia = prevInspect
	})
}

func newTestPipeline(cfg *config.Config, gate TitleGate, picker FilePicker, client ffmpeg.Client, store *journal.Store) *Pipeline {
	p := New(cfg, gate, picker,
		encode.New(client, "Stream Title", nil),
		distribute.New(nil),
		store, nil)
	p.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	return p
}

func TestRunHappyPath(t *testing.T) {
	stubWaits(t)
	cfg := testConfig(t)
	source := writeSource(t, cfg, "rec.mkv")

	gate := &fakeGate{outcome: titlegate.Outcome{Record: titlegate.Record{Title: "Friday Lesson", Artist: "Lecturer"}}}
	client := &fakeClient{}
	p := newTestPipeline(cfg, gate, &fakePicker{path: source, picked: true}, client, nil)

	if err := p.Run(context.Background(), Flags{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	base := "20240315 Friday Lesson"
	wantFiles := []string{
		filepath.Join(cfg.Paths.WorkDir, base+".mkv"),
		filepath.Join(cfg.Paths.WorkDir, base+".opus"),
		filepath.Join(cfg.Paths.WorkDir, base+".mp4"),
		filepath.Join(cfg.Paths.OriginalsDir, "2024-03-15", base+".mkv"),
		filepath.Join(cfg.Paths.AudioDir, base+".opus"),
		filepath.Join(cfg.Paths.CompressedDir, base+".mp4"),
	}
	for _, path := range wantFiles {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing artifact %s: %v", path, err)
		}
	}
	if client.audioCalls != 1 || client.videoCalls != 1 {
		t.Fatalf("encoder calls audio=%d video=%d, want 1/1", client.audioCalls, client.videoCalls)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	stubWaits(t)
	cfg := testConfig(t)
	source := writeSource(t, cfg, "rec.mkv")

	gate := &fakeGate{outcome: titlegate.Outcome{Record: titlegate.Record{Title: "Friday Lesson", Artist: "Lecturer"}}}
	client := &fakeClient{}
	p := newTestPipeline(cfg, gate, &fakePicker{path: source, picked: true}, client, nil)

	for i := 0; i < 2; i++ {
		if err := p.Run(context.Background(), Flags{}); err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
	}
	if client.audioCalls != 1 || client.videoCalls != 1 {
		t.Fatalf("second run must not re-encode: audio=%d video=%d", client.audioCalls, client.videoCalls)
	}
}

func TestRunPickerCancellation(t *testing.T) {
	stubWaits(t)
	cfg := testConfig(t)

	gate := &fakeGate{outcome: titlegate.Outcome{Record: titlegate.Record{Title: "T", Artist: "A"}}}
	p := newTestPipeline(cfg, gate, &fakePicker{picked: false}, &fakeClient{}, nil)

	err := p.Run(context.Background(), Flags{})
	if !services.IsCancellation(err) {
		t.Fatalf("want cancellation, got %v", err)
	}
}

func TestRunGateCancellation(t *testing.T) {
	stubWaits(t)
	cfg := testConfig(t)

	gate := &fakeGate{err: services.Wrap(services.ErrGateCancelled, "titlegate", "confirm", "declined", nil)}
	client := &fakeClient{}
	p := newTestPipeline(cfg, gate, &fakePicker{picked: true}, client, nil)

	err := p.Run(context.Background(), Flags{})
	if !services.IsCancellation(err) {
		t.Fatalf("want cancellation, got %v", err)
	}
	if client.audioCalls != 0 || client.videoCalls != 0 {
		t.Fatal("cancelled run must not touch the encoder")
	}
}

func TestRunDebugModeSkipsDistribution(t *testing.T) {
	stubWaits(t)
	cfg := testConfig(t)
	source := writeSource(t, cfg, "rec.mp4")

	gate := &fakeGate{outcome: titlegate.Outcome{Record: titlegate.Record{Title: "T", Artist: "A"}}}
	p := newTestPipeline(cfg, gate, &fakePicker{path: source, picked: true}, &fakeClient{}, nil)

	if err := p.Run(context.Background(), Flags{DebugMode: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	entries, err := os.ReadDir(cfg.Paths.AudioDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatal("debug mode must not copy into destinations")
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.WorkDir, "20240315 T.opus")); err != nil {
		t.Fatalf("debug mode still encodes into the work area: %v", err)
	}
}

func TestRunMergesSkipFlags(t *testing.T) {
	stubWaits(t)
	cfg := testConfig(t)
	source := writeSource(t, cfg, "rec.mkv")

	gate := &fakeGate{outcome: titlegate.Outcome{
		Record:    titlegate.Record{Title: "T", Artist: "A"},
		SkipAudio: true,
	}}
	client := &fakeClient{}
	p := newTestPipeline(cfg, gate, &fakePicker{path: source, picked: true}, client, nil)

	if err := p.Run(context.Background(), Flags{SkipVideo: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if client.audioCalls != 0 {
		t.Fatal("skip choice from the dialog must disable audio")
	}
	if client.videoCalls != 0 {
		t.Fatal("skip flag from the command line must disable video")
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OriginalsDir, "2024-03-15", "20240315 T.mkv")); err != nil {
		t.Fatalf("original still distributed when encodes are skipped: %v", err)
	}
}

func TestRunContinuesPastEncoderFailure(t *testing.T) {
	stubWaits(t)
	cfg := testConfig(t)
	source := writeSource(t, cfg, "rec.mkv")

	gate := &fakeGate{outcome: titlegate.Outcome{Record: titlegate.Record{Title: "T", Artist: "A"}}}
	client := &fakeClient{failAudio: true}
	p := newTestPipeline(cfg, gate, &fakePicker{path: source, picked: true}, client, nil)

	if err := p.Run(context.Background(), Flags{}); err != nil {
		t.Fatalf("encoder failure must not abort the run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.CompressedDir, "20240315 T.mp4")); err != nil {
		t.Fatalf("video must still be produced and distributed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.AudioDir, "20240315 T.opus")); err == nil {
		t.Fatal("failed audio must not appear in the destination")
	}
}

func TestRunRecordsJournal(t *testing.T) {
	stubWaits(t)
	cfg := testConfig(t)
	source := writeSource(t, cfg, "rec.mkv")

	store, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer store.Close()

	gate := &fakeGate{outcome: titlegate.Outcome{Record: titlegate.Record{Title: "Friday Lesson", Artist: "Lecturer"}}}
	p := newTestPipeline(cfg, gate, &fakePicker{path: source, picked: true}, &fakeClient{}, store)

	if err := p.Run(context.Background(), Flags{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	runs, err := store.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("want 1 journal row, got %d", len(runs))
	}
	run := runs[0]
	if run.Status != journal.StatusCompleted {
		t.Fatalf("status = %s, want completed", run.Status)
	}
	if run.Title != "Friday Lesson" || run.BaseName != "20240315 Friday Lesson" {
		t.Fatalf("journal row incomplete: %+v", run)
	}
	if run.AudioOutcome != string(encode.OutcomeDone) || run.VideoOutcome != string(encode.OutcomeDone) {
		t.Fatalf("outcomes not recorded: %+v", run)
	}
}
