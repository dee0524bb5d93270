package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mahmoud-drwsh/VideosProcessor/internal/config"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/deps"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/distribute"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/encode"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/journal"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/logging"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/pipeline"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/prompt"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/services"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/services/ffmpeg"
	"github.com/mahmoud-drwsh/VideosProcessor/internal/titlegate"
)

// sessionFlags are the per-run switches, registered on both the root command
// and the run subcommand so the bare invocation honors them too.
type sessionFlags struct {
	skipAudio bool
	skipVideo bool
	debugMode bool
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.skipAudio, "skip-audio", false, "Skip the audio extraction")
	cmd.Flags().BoolVar(&f.skipVideo, "skip-video", false, "Skip the video re-encode")
	cmd.Flags().BoolVar(&f.debugMode, "debug-program", false, "Encode into the work area without touching the library")
}

func (f *sessionFlags) pipelineFlags() pipeline.Flags {
	return pipeline.Flags{
		SkipAudio: f.skipAudio,
		SkipVideo: f.skipVideo,
		DebugMode: f.debugMode,
	}
}

func newRunCommand(ctx *commandContext, flags *sessionFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process one capture session end to end",
		Long: "Waits for the title file, asks for confirmation, waits for the recorder\n" +
			"to release the file, extracts audio, compresses video, and files the\n" +
			"outputs into the library. Every step is safe to repeat.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runSession(cmd.Context(), cfg, flags.pipelineFlags())
		},
	}

	flags.register(cmd)
	return cmd
}

func runSession(parent context.Context, cfg *config.Config, flags pipeline.Flags) error {
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	statuses := deps.CheckBinaries(deps.Required(cfg))
	if missing := deps.MissingRequired(statuses); len(missing) > 0 {
		return fmt.Errorf("missing required dependencies: %s (run `videosprocessor deps`)", strings.Join(missing, ", "))
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	terminal := prompt.NewTerminal(os.Stdin, os.Stdout)
	gate := titlegate.New(
		cfg.Paths.TitleFile,
		time.Duration(cfg.Workflow.TitlePollMillis)*time.Millisecond,
		terminal,
		logger,
	)
	client := ffmpeg.NewCLI(ffmpeg.Settings{
		AudioBitrate:     cfg.Encoding.AudioBitrate,
		AudioApplication: cfg.Encoding.AudioApplication,
		VideoCRF:         cfg.Encoding.VideoCRF,
		VideoPreset:      cfg.Encoding.VideoPreset,
		VideoHeight:      cfg.Encoding.VideoHeight,
		VideoFPSCap:      cfg.Encoding.VideoFPSCap,
	}, ffmpeg.WithBinary(cfg.FFmpegBinary()))
	encoder := encode.New(client, cfg.Encoding.MetaTitle, logger)
	distributor := distribute.New(logger)

	var store *journal.Store
	if cfg.Journal.Enabled {
		opened, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			logger.Warn("run journal unavailable, continuing without it", logging.Error(err))
		} else {
			store = opened
			defer store.Close()
		}
	}

	pipe := pipeline.New(cfg, gate, terminal, encoder, distributor, store, logger)
	if err := pipe.Run(ctx, flags); err != nil {
		if services.IsCancellation(err) {
			logger.Info("run cancelled, nothing to do")
			return nil
		}
		return err
	}
	return nil
}
