package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mahmoud-drwsh/VideosProcessor/internal/services"
)

var commandContext = exec.CommandContext

// Settings holds the tunables of the two fixed encodes.
type Settings struct {
	AudioBitrate     string
	AudioApplication string
	VideoCRF         int
	VideoPreset      string
	VideoHeight      int
	VideoFPSCap      int
}

// AudioRequest describes one audio extraction.
type AudioRequest struct {
	Input       string
	Output      string
	MetaTitle   string
	AlbumArtist string
}

// VideoRequest describes one video compression.
type VideoRequest struct {
	Input     string
	Output    string
	MetaTitle string
}

// Client defines the transcoder behaviour the encode stage consumes.
type Client interface {
	ExtractAudio(ctx context.Context, req AudioRequest) error
	CompressVideo(ctx context.Context, req VideoRequest) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default ffmpeg binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the ffmpeg command-line transcoder. Outputs are written to a
// partial name next to the target and renamed into place only after ffmpeg
// exits cleanly, so an interrupted encode never leaves a truncated file at
// the final path.
type CLI struct {
	binary   string
	settings Settings
}

// NewCLI constructs a CLI client with the given encode settings.
func NewCLI(settings Settings, opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg", settings: settings}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// ExtractAudio encodes the first audio stream of the input to a low-bitrate
// voice-optimized opus track with fresh metadata.
func (c *CLI) ExtractAudio(ctx context.Context, req AudioRequest) error {
	if err := validateRequest(req.Input, req.Output); err != nil {
		return err
	}
	return c.run(ctx, "audio", req.Output, func(partial string) []string {
		return AudioArgs(c.settings, req, partial)
	})
}

// CompressVideo scales the input to the configured height, re-encodes with
// libx265, and passes audio, subtitle, and chapter streams through untouched.
func (c *CLI) CompressVideo(ctx context.Context, req VideoRequest) error {
	if err := validateRequest(req.Input, req.Output); err != nil {
		return err
	}
	return c.run(ctx, "video", req.Output, func(partial string) []string {
		return VideoArgs(c.settings, req, partial)
	})
}

func (c *CLI) run(ctx context.Context, operation, output string, buildArgs func(partial string) []string) error {
	if _, err := exec.LookPath(c.binary); err != nil {
		return services.Wrap(services.ErrNotFound, "ffmpeg", operation, fmt.Sprintf("binary %q not found", c.binary), err)
	}

	partial := PartialPath(output)
	args := buildArgs(partial)

	var stderr bytes.Buffer
	cmd := commandContext(ctx, c.binary, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		_ = os.Remove(partial)
		return services.Wrap(services.ErrExternalTool, "ffmpeg", operation, tail(stderr.String(), 6), err)
	}

	if err := os.Rename(partial, output); err != nil {
		_ = os.Remove(partial)
		return services.Wrap(services.ErrExternalTool, "ffmpeg", operation, "finalize output", err)
	}
	return nil
}

// PartialPath returns the in-progress name for an encode target, keeping the
// original extension so ffmpeg still infers the container format.
func PartialPath(output string) string {
	dir := filepath.Dir(output)
	base := filepath.Base(output)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+".partial"+ext)
}

func validateRequest(input, output string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("input path required")
	}
	if strings.TrimSpace(output) == "" {
		return errors.New("output path required")
	}
	return nil
}

func tail(s string, lines int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "ffmpeg reported no output"
	}
	parts := strings.Split(s, "\n")
	if len(parts) > lines {
		parts = parts[len(parts)-lines:]
	}
	return strings.Join(parts, " | ")
}

var _ Client = (*CLI)(nil)
