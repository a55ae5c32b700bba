// Package config loads runtime settings from an optional YAML file and
// command-line flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Quality presets for audio resolution
type QualityPreset string

const (
	QualityAudio  QualityPreset = "audio"
	QualityMedium QualityPreset = "medium"
)

// Default values
const (
	DefaultScanDuration   = 5 * time.Second
	DefaultConnectTimeout = 20 * time.Second
	DefaultTempBasename   = "audio"
	DefaultQualityPreset  = QualityAudio
	DefaultFFmpegPath     = "ffmpeg"
	DefaultFFprobePath    = "ffprobe"
	DefaultLogLevel       = "info"
	DefaultInstallYTDLP   = true
)

// MaxScanAttempts bounds the scan retry loop of the entry menu.
const MaxScanAttempts = 3

// Bounds applied by the getters
const (
	MinScanDuration   = 1 * time.Second
	MaxScanDuration   = 60 * time.Second
	MinConnectTimeout = 1 * time.Second
	MaxConnectTimeout = 120 * time.Second
)

// Settings manages application configuration
type Settings struct {
	ScanDuration   time.Duration `yaml:"scan_duration"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	DownloadDir    string        `yaml:"download_dir"`
	TempBasename   string        `yaml:"temp_basename"`
	QualityPreset  QualityPreset `yaml:"quality_preset"`
	FFmpegPath     string        `yaml:"ffmpeg_path"`
	FFprobePath    string        `yaml:"ffprobe_path"`
	LogLevel       string        `yaml:"log_level"`
	InstallYTDLP   *bool         `yaml:"install_ytdlp"`
}

// NewSettings creates settings holding only defaults
func NewSettings() *Settings {
	install := DefaultInstallYTDLP
	return &Settings{
		ScanDuration:   DefaultScanDuration,
		ConnectTimeout: DefaultConnectTimeout,
		DownloadDir:    os.TempDir(),
		TempBasename:   DefaultTempBasename,
		QualityPreset:  DefaultQualityPreset,
		FFmpegPath:     DefaultFFmpegPath,
		FFprobePath:    DefaultFFprobePath,
		LogLevel:       DefaultLogLevel,
		InstallYTDLP:   &install,
	}
}

// LoadFile overlays values from a YAML file onto s. Keys absent from the file
// keep their current value.
func (s *Settings) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// RegisterFlags binds flags to s using the current values as defaults. Call
// after LoadFile so flags override file values.
func (s *Settings) RegisterFlags(fs *flag.FlagSet) {
	fs.DurationVar(&s.ScanDuration, "scan-duration", s.ScanDuration, "How long one discovery pass listens for advertisements")
	fs.DurationVar(&s.ConnectTimeout, "connect-timeout", s.ConnectTimeout, "Timeout for each device connection attempt")
	fs.StringVar(&s.DownloadDir, "download-dir", s.DownloadDir, "Directory for temporary audio files")
	fs.StringVar(&s.FFmpegPath, "ffmpeg", s.FFmpegPath, "Path to the ffmpeg executable")
	fs.StringVar(&s.FFprobePath, "ffprobe", s.FFprobePath, "Path to the ffprobe executable")
	fs.StringVar(&s.LogLevel, "log-level", s.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&s.TempBasename, "temp-basename", s.TempBasename, "Base name of the temporary audio files")
	fs.Func("quality", fmt.Sprintf("Audio quality preset: %s or %s (default %q)", QualityAudio, QualityMedium, s.GetQualityPreset()), func(v string) error {
		preset := QualityPreset(strings.ToLower(strings.TrimSpace(v)))
		if preset != QualityAudio && preset != QualityMedium {
			return fmt.Errorf("unknown quality preset %q", v)
		}
		s.QualityPreset = preset
		return nil
	})
	fs.BoolFunc("install-ytdlp", fmt.Sprintf("Install the yt-dlp binary when missing (default %t)", s.GetInstallYTDLP()), func(v string) error {
		install, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		s.InstallYTDLP = &install
		return nil
	})
}

// GetScanDuration returns the scan window clamped to the allowed range
func (s *Settings) GetScanDuration() time.Duration {
	return clamp(s.ScanDuration, DefaultScanDuration, MinScanDuration, MaxScanDuration)
}

// GetConnectTimeout returns the connection timeout clamped to the allowed range
func (s *Settings) GetConnectTimeout() time.Duration {
	return clamp(s.ConnectTimeout, DefaultConnectTimeout, MinConnectTimeout, MaxConnectTimeout)
}

// GetDownloadDirectory returns the configured temp directory
func (s *Settings) GetDownloadDirectory() string {
	if s.DownloadDir == "" {
		return os.TempDir()
	}
	return s.DownloadDir
}

// GetTempBasename returns the fixed base name used for temporary audio files
func (s *Settings) GetTempBasename() string {
	if s.TempBasename == "" {
		return DefaultTempBasename
	}
	return s.TempBasename
}

// GetQualityPreset returns the configured quality preset
func (s *Settings) GetQualityPreset() QualityPreset {
	switch s.QualityPreset {
	case QualityAudio, QualityMedium:
		return s.QualityPreset
	}
	return DefaultQualityPreset
}

// GetFFmpegPath returns the ffmpeg executable
func (s *Settings) GetFFmpegPath() string {
	if s.FFmpegPath == "" {
		return DefaultFFmpegPath
	}
	return s.FFmpegPath
}

// GetFFprobePath returns the ffprobe executable
func (s *Settings) GetFFprobePath() string {
	if s.FFprobePath == "" {
		return DefaultFFprobePath
	}
	return s.FFprobePath
}

// GetLogLevel returns the normalized log level name
func (s *Settings) GetLogLevel() string {
	level := strings.ToLower(strings.TrimSpace(s.LogLevel))
	if level == "" {
		return DefaultLogLevel
	}
	return level
}

// GetInstallYTDLP reports whether the yt-dlp binary should be installed on demand
func (s *Settings) GetInstallYTDLP() bool {
	if s.InstallYTDLP == nil {
		return DefaultInstallYTDLP
	}
	return *s.InstallYTDLP
}

func clamp(v, def, lo, hi time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
