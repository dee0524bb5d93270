package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	required := map[string]string{
		"paths.work_dir":       c.Paths.WorkDir,
		"paths.originals_dir":  c.Paths.OriginalsDir,
		"paths.compressed_dir": c.Paths.CompressedDir,
		"paths.audio_dir":      c.Paths.AudioDir,
		"paths.title_file":     c.Paths.TitleFile,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must be set", name)
		}
	}
	return nil
}

func (c *Config) validateEncoding() error {
	if c.Encoding.VideoCRF < 0 || c.Encoding.VideoCRF > 51 {
		return errors.New("encoding.video_crf must be between 0 and 51")
	}
	if c.Encoding.VideoHeight < 0 {
		return errors.New("encoding.video_height must be positive")
	}
	if c.Encoding.VideoFPSCap < 0 {
		return errors.New("encoding.video_fps_cap must be positive")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.TitlePollMillis < 0 {
		return errors.New("workflow.title_poll_ms must be positive")
	}
	if c.Workflow.LockPollMillis < 0 {
		return errors.New("workflow.lock_poll_ms must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
