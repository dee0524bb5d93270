package titlegate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"
	"golang.org/x/text/unicode/norm"

	"github.com/mahmoud-drwsh/VideosProcessor/internal/logging"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/naming"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/services"
)

// Record is the confirmed title/artist pair. Both fields are non-empty and
// whitespace-trimmed once the gate passes.
type Record struct {
	Title  string
	Artist string
}

// ConfirmRequest carries the tentative record and skip-flag defaults to the
// human-input provider.
type ConfirmRequest struct {
	Title     string
	Artist    string
	SkipAudio bool
	SkipVideo bool
}

// ConfirmResult is the provider's answer: either an accepted (possibly
// edited) record with skip choices, or an explicit cancellation.
type ConfirmResult struct {
	Accepted  bool
	Title     string
	Artist    string
	SkipAudio bool
	SkipVideo bool
}

// Provider is the external human-input collaborator, modeled as a blocking
// call that returns a result or a cancellation.
type Provider interface {
	Confirm(ctx context.Context, req ConfirmRequest) (ConfirmResult, error)
}

// Outcome is what a passed gate hands to the pipeline.
type Outcome struct {
	Record    Record
	SkipAudio bool
	SkipVideo bool
}

// Gate polls the title file until it holds two non-blank lines, asks the
// provider for confirmation, and persists the confirmed record back.
type Gate struct {
	path     string
	interval time.Duration
	provider Provider
	logger   *slog.Logger
}

// New constructs a gate over the given title file. interval is the polling
// fallback cadence; filesystem change notifications shorten the wait when
// available.
func New(path string, interval time.Duration, provider Provider, logger *slog.Logger) *Gate {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Gate{
		path:     path,
		interval: interval,
		provider: provider,
		logger:   logging.WithComponent(logger, "titlegate"),
	}
}

// Await blocks until the title file is ready and the human has confirmed the
// record, then rewrites the file with the confirmed values. A cancellation
// from the provider surfaces as services.ErrGateCancelled. The read-confirm-
// rewrite sequence runs under an advisory lock so two concurrent runs cannot
// both claim the same handshake.
func (g *Gate) Await(ctx context.Context, defaults ConfirmRequest) (Outcome, error) {
	if err := g.waitForTwoLines(ctx); err != nil {
		return Outcome{}, err
	}

	lock := flock.New(g.path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return Outcome{}, services.Wrap(services.ErrConfiguration, "titlegate", "lock", "acquire title lock", err)
	}
	if !locked {
		return Outcome{}, services.Wrap(services.ErrConfiguration, "titlegate", "lock", "another run owns the title file", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	// Re-read under the lock; the file may have changed since the poll saw it.
	record, ready, err := ParseFile(g.path)
	if err != nil {
		return Outcome{}, err
	}
	if !ready {
		return Outcome{}, services.Wrap(services.ErrTransient, "titlegate", "reread", "title file no longer has two lines", nil)
	}

	g.logger.Info("title file ready, confirming", "title", record.Title, "artist", record.Artist)

	result, err := g.provider.Confirm(ctx, ConfirmRequest{
		Title:     record.Title,
		Artist:    record.Artist,
		SkipAudio: defaults.SkipAudio,
		SkipVideo: defaults.SkipVideo,
	})
	if err != nil {
		return Outcome{}, err
	}
	if !result.Accepted {
		return Outcome{}, services.Wrap(services.ErrGateCancelled, "titlegate", "confirm", "", nil)
	}

	confirmed := Record{
		Title:  naming.NormalizeLeadingDate(strings.TrimSpace(result.Title)),
		Artist: strings.TrimSpace(result.Artist),
	}
	if confirmed.Title == "" || confirmed.Artist == "" {
		return Outcome{}, services.Wrap(services.ErrConfiguration, "titlegate", "confirm", "title and artist must be non-empty", nil)
	}

	if err := Persist(g.path, confirmed); err != nil {
		return Outcome{}, err
	}
	g.logger.Info("title confirmed", "title", confirmed.Title, "artist", confirmed.Artist)

	return Outcome{Record: confirmed, SkipAudio: result.SkipAudio, SkipVideo: result.SkipVideo}, nil
}

// waitForTwoLines blocks until ParseFile reports the file ready. Change
// events on the containing directory wake the loop early; the fixed interval
// bounds the wait in case notifications are unavailable.
func (g *Gate) waitForTwoLines(ctx context.Context) error {
	var events chan fsnotify.Event
	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		defer watcher.Close()
		if addErr := watcher.Add(filepath.Dir(g.path)); addErr == nil {
			events = watcher.Events
		} else {
			g.logger.Debug("watch unavailable, polling only", logging.Error(addErr))
		}
	} else {
		g.logger.Debug("fsnotify unavailable, polling only", logging.Error(err))
	}

	logged := false
	for {
		_, ready, err := ParseFile(g.path)
		if err != nil {
			return err
		}
		if ready {
			return nil
		}
		if !logged {
			g.logger.Info("waiting for two lines", "path", g.path)
			logged = true
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(g.interval):
		case event := <-events:
			if event.Name != g.path {
				continue
			}
		}
	}
}

// ParseFile reads the title file and extracts the tentative record from its
// first two non-blank lines, trimmed and NFC-normalized. A missing file is
// simply not ready. Trailing content beyond the second non-blank line is
// ignored.
func ParseFile(path string) (Record, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, false, nil
		}
		return Record{}, false, services.Wrap(services.ErrConfiguration, "titlegate", "read", fmt.Sprintf("read %s", path), err)
	}

	var valid []string
	for _, line := range strings.Split(norm.NFC.String(string(data)), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		valid = append(valid, line)
		if len(valid) == 2 {
			break
		}
	}
	if len(valid) < 2 {
		return Record{}, false, nil
	}
	return Record{Title: valid[0], Artist: valid[1]}, true, nil
}

// Persist rewrites the title file as exactly two newline-terminated lines,
// making the confirmed record durable for any external re-read.
func Persist(path string, record Record) error {
	content := record.Title + "\n" + record.Artist + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return services.Wrap(services.ErrConfiguration, "titlegate", "persist", fmt.Sprintf("write %s", path), err)
	}
	return nil
}
