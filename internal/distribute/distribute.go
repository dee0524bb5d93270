package distribute

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mahmoud-drwsh/VideosProcessor/internal/fileutil"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/logging"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/naming"
)

// CopyOutcome classifies one destination copy.
type CopyOutcome string

const (
	// OutcomeCopied means the file was copied in this run.
	OutcomeCopied CopyOutcome = "copied"
	// OutcomeAlreadyDone means the destination already existed; proof the
	// step completed earlier.
	OutcomeAlreadyDone CopyOutcome = "already-done"
	// OutcomeSkipped means a skip flag disabled the copy.
	OutcomeSkipped CopyOutcome = "skipped"
	// OutcomeMissing means the work-area artifact was never produced, so
	// there is nothing to copy. The next run retries the whole chain.
	OutcomeMissing CopyOutcome = "missing"
	// OutcomeFailed means the copy itself errored.
	OutcomeFailed CopyOutcome = "failed"
)

// Report summarizes the destination copies of one run.
type Report struct {
	Original CopyOutcome
	Audio    CopyOutcome
	Video    CopyOutcome
}

// Stage copies finished artifacts into their destination trees. Every copy is
// gated by destination existence: nothing is ever overwritten, and an
// existing destination file means the step already completed. Copy failures
// are recorded per sub-copy rather than aborting, matching the encode
// stage's best-effort policy.
type Stage struct {
	logger *slog.Logger
}

// New constructs a distribution stage.
func New(logger *slog.Logger) *Stage {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Stage{logger: logging.WithComponent(logger, "distribute")}
}

// StageOriginal copies the source recording into the work area if it is not
// already there. Runs before the encodes so the work area holds everything a
// run touches.
func (s *Stage) StageOriginal(source string, art naming.Artifacts) error {
	copied, err := fileutil.CopyFileIfMissing(source, art.WorkOriginal)
	if err != nil {
		return fmt.Errorf("stage original: %w", err)
	}
	if copied {
		s.logger.Info("original copied to work area", "destination", art.WorkOriginal)
	} else {
		s.logger.Info("original already in work area, skipping")
	}
	return nil
}

// Distribute files the original into its dated folder and copies the audio
// and video artifacts to their flat destinations. The dated folder is
// created if absent; a failure to create it is a setup error and aborts.
func (s *Stage) Distribute(source string, art naming.Artifacts, skipAudio, skipVideo bool) (Report, error) {
	if err := os.MkdirAll(art.DatedDir, 0o755); err != nil {
		return Report{}, fmt.Errorf("create dated folder %q: %w", art.DatedDir, err)
	}

	report := Report{
		Original: s.copy("original", source, art.FinalOriginal),
		Audio:    OutcomeSkipped,
		Video:    OutcomeSkipped,
	}

	if skipAudio {
		s.logger.Info("audio copy skipped by user choice")
	} else {
		report.Audio = s.copyArtifact("audio", art.WorkAudio, art.FinalAudio)
	}

	if skipVideo {
		s.logger.Info("compressed video copy skipped by user choice")
	} else {
		report.Video = s.copyArtifact("compressed video", art.WorkVideo, art.FinalVideo)
	}

	return report, nil
}

// copyArtifact is copy plus a work-area existence check: a missing artifact
// means its encode failed or was interrupted, and the copy is reported as
// missing instead of erroring.
func (s *Stage) copyArtifact(label, src, dst string) CopyOutcome {
	if !fileutil.Exists(src) {
		s.logger.Warn(label+" artifact missing, nothing to copy", "source", src)
		return OutcomeMissing
	}
	return s.copy(label, src, dst)
}

func (s *Stage) copy(label, src, dst string) CopyOutcome {
	copied, err := fileutil.CopyFileIfMissing(src, dst)
	if err != nil {
		s.logger.Error(label+" copy failed, continuing", "destination", dst, logging.Error(err))
		return OutcomeFailed
	}
	if copied {
		s.logger.Info(label+" copied", "destination", dst)
		return OutcomeCopied
	}
	s.logger.Info(label + " already in destination, skipping")
	return OutcomeAlreadyDone
}
