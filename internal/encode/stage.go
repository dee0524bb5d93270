package encode

import (
	"context"
	"log/slog"

	"github.com/mahmoud-drwsh/VideosProcessor/internal/fileutil"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/logging"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/naming"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/services/ffmpeg"
)

// Outcome classifies how a sub-stage ended.
type Outcome string

const (
	// OutcomeDone means the transcoder produced the artifact in this run.
	OutcomeDone Outcome = "done"
	// OutcomeSkipped means the user's skip flag disabled the sub-stage.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeAlreadyDone means the artifact existed before this run.
	OutcomeAlreadyDone Outcome = "already-done"
	// OutcomeFailed means the transcoder failed; the absence of the output
	// file is the durable failure signal and the next run retries.
	OutcomeFailed Outcome = "failed"
)

// Result is the report of one sub-stage.
type Result struct {
	Outcome Outcome
	Err     error
}

// Produced reports whether the artifact exists after the sub-stage, whether
// from this run or a previous one.
func (r Result) Produced() bool {
	return r.Outcome == OutcomeDone || r.Outcome == OutcomeAlreadyDone
}

// Stage issues the two independent transcoder invocations against one source
// recording. Each sub-stage is gated by its skip flag and by target
// existence, so a re-run after a crash only re-does missing outputs. A
// transcoder failure is reported, not propagated: later stages must not be
// blocked by an unrelated encode failing.
type Stage struct {
	client    ffmpeg.Client
	metaTitle string
	logger    *slog.Logger
}

// New constructs an encode stage. metaTitle is the fixed stream title written
// into both encodes.
func New(client ffmpeg.Client, metaTitle string, logger *slog.Logger) *Stage {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Stage{
		client:    client,
		metaTitle: metaTitle,
		logger:    logging.WithComponent(logger, "encode"),
	}
}

// Audio extracts the voice track into the work area.
func (s *Stage) Audio(ctx context.Context, source string, art naming.Artifacts, albumArtist string, skip bool) Result {
	if skip {
		s.logger.Info("audio skipped by user choice")
		return Result{Outcome: OutcomeSkipped}
	}
	if fileutil.Exists(art.WorkAudio) {
		s.logger.Info("audio already exists, skipping", "output", art.WorkAudio)
		return Result{Outcome: OutcomeAlreadyDone}
	}

	s.logger.Info("extracting audio", "source", source, "output", art.WorkAudio)
	err := s.client.ExtractAudio(ctx, ffmpeg.AudioRequest{
		Input:       source,
		Output:      art.WorkAudio,
		MetaTitle:   s.metaTitle,
		AlbumArtist: albumArtist,
	})
	if err != nil {
		s.logger.Error("audio extraction failed, continuing", logging.Error(err))
		return Result{Outcome: OutcomeFailed, Err: err}
	}
	return Result{Outcome: OutcomeDone}
}

// Video compresses the recording into the work area.
func (s *Stage) Video(ctx context.Context, source string, art naming.Artifacts, skip bool) Result {
	if skip {
		s.logger.Info("video re-encode skipped by user choice")
		return Result{Outcome: OutcomeSkipped}
	}
	if fileutil.Exists(art.WorkVideo) {
		s.logger.Info("compressed video already exists, skipping", "output", art.WorkVideo)
		return Result{Outcome: OutcomeAlreadyDone}
	}

	s.logger.Info("re-encoding video", "source", source, "output", art.WorkVideo)
	err := s.client.CompressVideo(ctx, ffmpeg.VideoRequest{
		Input:     source,
		Output:    art.WorkVideo,
		MetaTitle: s.metaTitle,
	})
	if err != nil {
		s.logger.Error("video re-encode failed, continuing", logging.Error(err))
		return Result{Outcome: OutcomeFailed, Err: err}
	}
	return Result{Outcome: OutcomeDone}
}
