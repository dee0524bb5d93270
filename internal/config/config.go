package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the directory layout the pipeline distributes into plus the
// title-file handshake location.
type Paths struct {
	WorkDir       string `toml:"work_dir"`
	OriginalsDir  string `toml:"originals_dir"`
	CompressedDir string `toml:"compressed_dir"`
	AudioDir      string `toml:"audio_dir"`
	TitleFile     string `toml:"title_file"`
	SourceDir     string `toml:"source_dir"`
	LogDir        string `toml:"log_dir"`
}

// Encoding contains the fixed transcoder profile for both encodes.
type Encoding struct {
	AudioBitrate     string `toml:"audio_bitrate"`
	AudioApplication string `toml:"audio_application"`
	VideoCRF         int    `toml:"video_crf"`
	VideoPreset      string `toml:"video_preset"`
	VideoHeight      int    `toml:"video_height"`
	VideoFPSCap      int    `toml:"video_fps_cap"`
	MetaTitle        string `toml:"meta_title"`
}

// Workflow contains the polling cadences of the two blocking waits.
type Workflow struct {
	TitlePollMillis int `toml:"title_poll_ms"`
	LockPollMillis  int `toml:"lock_poll_ms"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Journal contains configuration for the run-history database.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Config encapsulates all configuration values for the processor.
//
// Configuration sections by subsystem:
//   - Paths: work/staging area, destination roots, title file, source dir
//   - Encoding: opus and x265 profile knobs plus fixed stream metadata
//   - Workflow: polling intervals for the title and recording waits
//   - Logging: log format and level
//   - Journal: run-history SQLite database
type Config struct {
	Paths    Paths    `toml:"paths"`
	Encoding Encoding `toml:"encoding"`
	Workflow Workflow `toml:"workflow"`
	Logging  Logging  `toml:"logging"`
	Journal  Journal  `toml:"journal"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/videosprocessor/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("videosprocessor.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the work area, the three destination roots, the
// source directory, and the log and journal directories before any pipeline
// step runs.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.WorkDir, c.Paths.OriginalsDir, c.Paths.CompressedDir, c.Paths.AudioDir, c.Paths.SourceDir, c.Paths.LogDir}
	if c.Journal.Enabled && strings.TrimSpace(c.Journal.Path) != "" {
		dirs = append(dirs, filepath.Dir(c.Journal.Path))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the transcoder executable name.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the probe executable name.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
