package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/mahmoud-drwsh/VideosProcessor/internal/config"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/distribute"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/encode"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/journal"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/lockwait"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/logging"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/media/ffprobe"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/naming"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/services"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/titlegate"
)

// Test hooks for the two external waits.
var (
	waitUnlocked = lockwait.WaitUntilUnlocked
	inspectMedia = ffprobe.Inspect
)

// TitleGate is the handshake dependency of the pipeline. *titlegate.Gate
// satisfies it.
type TitleGate interface {
	Await(ctx context.Context, defaults titlegate.ConfirmRequest) (titlegate.Outcome, error)
}

// FilePicker selects the recording to process. The bool reports whether a
// file was chosen; declining is a cancellation, not an error.
type FilePicker interface {
	Pick(ctx context.Context, dir string) (string, bool, error)
}

// Flags are the per-run switches from the command line. Skip flags merge
// with the choices made during title confirmation: either side may disable
// a sub-stage.
type Flags struct {
	SkipAudio bool
	SkipVideo bool
	DebugMode bool
}

// Pipeline runs one capture session end to end: title handshake, recording
// selection, lock wait, the two encodes, and distribution. Stage order is
// fixed; every stage is idempotent against existing outputs so an
// interrupted run can be repeated safely.
type Pipeline struct {
	cfg         *config.Config
	gate        TitleGate
	picker      FilePicker
	encoder     *encode.Stage
	distributor *distribute.Stage
	store       *journal.Store
	logger      *slog.Logger
	now         func() time.Time
}

// New wires a pipeline from its stages. store may be nil when the journal is
// disabled.
func New(cfg *config.Config, gate TitleGate, picker FilePicker, encoder *encode.Stage, distributor *distribute.Stage, store *journal.Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		cfg:         cfg,
		gate:        gate,
		picker:      picker,
		encoder:     encoder,
		distributor: distributor,
		store:       store,
		logger:      logging.WithComponent(logger, "pipeline"),
		now:         time.Now,
	}
}

// Run executes one session. A cancellation from the handshake or the picker
// returns an error satisfying services.IsCancellation; the caller maps that
// to a clean exit. Encoder failures do not abort the run: the missing output
// is the retry signal for the next session.
func (p *Pipeline) Run(ctx context.Context, flags Flags) error {
	runID := p.journalBegin(ctx, flags)

	outcome, err := p.gate.Await(ctx, titlegate.ConfirmRequest{
		SkipAudio: flags.SkipAudio,
		SkipVideo: flags.SkipVideo,
	})
	if err != nil {
		p.journalFinish(ctx, runID, err)
		return err
	}
	skipAudio := flags.SkipAudio || outcome.SkipAudio
	skipVideo := flags.SkipVideo || outcome.SkipVideo

	source, picked, err := p.picker.Pick(ctx, p.cfg.Paths.SourceDir)
	if err != nil {
		err = services.Wrap(services.ErrConfiguration, "pick", "list", "listing recordings failed", err)
		p.journalFinish(ctx, runID, err)
		return err
	}
	if !picked {
		err = services.Wrap(services.ErrGateCancelled, "pick", "select", "no recording selected", nil)
		p.journalFinish(ctx, runID, err)
		return err
	}
	p.logger.Info("recording selected", "source", source)

	interval := time.Duration(p.cfg.Workflow.LockPollMillis) * time.Millisecond
	if err := waitUnlocked(ctx, source, interval); err != nil {
		err = fmt.Errorf("waiting for recorder to release %s: %w", source, err)
		p.journalFinish(ctx, runID, err)
		return err
	}

	p.probe(ctx, source)

	today := p.now()
	baseName := naming.DeriveBaseName(outcome.Record.Title, today)
	layout := naming.Layout{
		WorkDir:       p.cfg.Paths.WorkDir,
		OriginalsDir:  p.cfg.Paths.OriginalsDir,
		CompressedDir: p.cfg.Paths.CompressedDir,
		AudioDir:      p.cfg.Paths.AudioDir,
	}
	art := layout.Plan(baseName, filepath.Ext(source), today)
	p.logger.Info("run planned",
		"base_name", art.BaseName,
		"title", outcome.Record.Title,
		"artist", outcome.Record.Artist,
		"skip_audio", skipAudio,
		"skip_video", skipVideo,
		"debug_mode", flags.DebugMode)
	p.journalDescribe(ctx, runID, outcome.Record, art.BaseName, source)

	if !flags.DebugMode {
		if err := p.distributor.StageOriginal(source, art); err != nil {
			p.journalFinish(ctx, runID, err)
			return err
		}
	}

	audio := p.encoder.Audio(ctx, source, art, outcome.Record.Artist, skipAudio)
	video := p.encoder.Video(ctx, source, art, skipVideo)
	p.journalOutcomes(ctx, runID, audio, video)

	if flags.DebugMode {
		p.logger.Info("debug mode: outputs kept in work area", "work_dir", p.cfg.Paths.WorkDir)
		p.journalFinish(ctx, runID, nil)
		return nil
	}

	report, err := p.distributor.Distribute(source, art, skipAudio, skipVideo)
	if err != nil {
		p.journalFinish(ctx, runID, err)
		return err
	}
	p.logger.Info("run finished",
		"original", string(report.Original),
		"audio", string(report.Audio),
		"video", string(report.Video))
	p.journalFinish(ctx, runID, nil)
	return nil
}

// probe logs basic stream facts about the recording. Failures only dim the
// log output, never the run.
func (p *Pipeline) probe(ctx context.Context, source string) {
	result, err := inspectMedia(ctx, p.cfg.FFprobeBinary(), source)
	if err != nil {
		p.logger.Debug("probe unavailable", logging.Error(err))
		return
	}
	p.logger.Info("recording probed",
		"duration_s", result.DurationSeconds(),
		"size_bytes", result.SizeBytes(),
		"audio_streams", result.AudioStreamCount(),
		"fps", result.AvgFrameRate())
}

// Journal writes are best effort: a broken journal must never block a run.

func (p *Pipeline) journalBegin(ctx context.Context, flags Flags) string {
	if p.store == nil {
		return ""
	}
	id, err := p.store.Begin(ctx, flags.SkipAudio, flags.SkipVideo, flags.DebugMode)
	if err != nil {
		p.logger.Debug("journal begin failed", logging.Error(err))
		return ""
	}
	return id
}

func (p *Pipeline) journalDescribe(ctx context.Context, id string, record titlegate.Record, baseName, source string) {
	if p.store == nil || id == "" {
		return
	}
	if err := p.store.Describe(ctx, id, record.Title, record.Artist, baseName, source); err != nil {
		p.logger.Debug("journal describe failed", logging.Error(err))
	}
}

func (p *Pipeline) journalOutcomes(ctx context.Context, id string, audio, video encode.Result) {
	if p.store == nil || id == "" {
		return
	}
	if err := p.store.SetOutcomes(ctx, id, string(audio.Outcome), string(video.Outcome)); err != nil {
		p.logger.Debug("journal outcomes failed", logging.Error(err))
	}
}

func (p *Pipeline) journalFinish(ctx context.Context, id string, runErr error) {
	if p.store == nil || id == "" {
		return
	}
	status := journal.StatusCompleted
	switch {
	case services.IsCancellation(runErr):
		status = journal.StatusCancelled
	case runErr != nil:
		status = journal.StatusFailed
	}
	if err := p.store.Finish(ctx, id, status); err != nil {
		p.logger.Debug("journal finish failed", logging.Error(err))
	}
}
