package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEncoding()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return c.normalizeJournal()
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		name  string
		value *string
	}{
		{"paths.work_dir", &c.Paths.WorkDir},
		{"paths.originals_dir", &c.Paths.OriginalsDir},
		{"paths.compressed_dir", &c.Paths.CompressedDir},
		{"paths.audio_dir", &c.Paths.AudioDir},
		{"paths.title_file", &c.Paths.TitleFile},
		{"paths.source_dir", &c.Paths.SourceDir},
		{"paths.log_dir", &c.Paths.LogDir},
	}
	for _, field := range fields {
		expanded, err := expandPath(*field.value)
		if err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
		*field.value = expanded
	}
	return nil
}

func (c *Config) normalizeEncoding() {
	if strings.TrimSpace(c.Encoding.AudioBitrate) == "" {
		c.Encoding.AudioBitrate = defaultAudioBitrate
	}
	if strings.TrimSpace(c.Encoding.AudioApplication) == "" {
		c.Encoding.AudioApplication = defaultAudioApplication
	}
	if strings.TrimSpace(c.Encoding.VideoPreset) == "" {
		c.Encoding.VideoPreset = defaultVideoPreset
	}
	if c.Encoding.VideoHeight == 0 {
		c.Encoding.VideoHeight = defaultVideoHeight
	}
	if c.Encoding.VideoCRF == 0 {
		c.Encoding.VideoCRF = defaultVideoCRF
	}
	if c.Encoding.VideoFPSCap == 0 {
		c.Encoding.VideoFPSCap = defaultVideoFPSCap
	}
	if strings.TrimSpace(c.Encoding.MetaTitle) == "" {
		c.Encoding.MetaTitle = defaultMetaTitle
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.TitlePollMillis == 0 {
		c.Workflow.TitlePollMillis = defaultTitlePollMillis
	}
	if c.Workflow.LockPollMillis == 0 {
		c.Workflow.LockPollMillis = defaultLockPollMillis
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}

func (c *Config) normalizeJournal() error {
	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = defaultJournalPath
	}
	expanded, err := expandPath(c.Journal.Path)
	if err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	c.Journal.Path = expanded
	return nil
}
