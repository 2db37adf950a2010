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

	"cuesmith/internal/alignment"
	"cuesmith/internal/fileutil"
	"cuesmith/internal/subtitles"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains data and log directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Server contains HTTP API configuration.
type Server struct {
	Bind           string `toml:"bind"`
	Token          string `toml:"token"`
	MaxBodyMiB     int    `toml:"max_body_mib"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Subtitles contains cue layout defaults. Requests may override them.
type Subtitles struct {
	MaxCharsPerLine   int     `toml:"max_chars_per_line"`
	MaxLines          int     `toml:"max_lines"`
	MinCueDurationSec float64 `toml:"min_cue_duration_sec"`
	MaxCueDurationSec float64 `toml:"max_cue_duration_sec"`
	MaxCPS            float64 `toml:"max_cps"`
	MinGapSec         float64 `toml:"min_gap_sec"`
	PauseSplitSec     float64 `toml:"pause_split_sec"`
}

// Alignment contains script alignment tuning and the strict gate.
type Alignment struct {
	// Strict rejects requests whose alignment falls below MinCoverage or
	// leaves any script token unmatched. Requests may turn it off.
	Strict                 bool    `toml:"strict"`
	MinCoverage            float64 `toml:"min_coverage"`
	LCSCellLimit           int     `toml:"lcs_cell_limit"`
	GreedyLookahead        int     `toml:"greedy_lookahead"`
	UnusedWhisperWarnRatio float64 `toml:"unused_whisper_warn_ratio"`
	CoverageWarnThreshold  float64 `toml:"coverage_warn_threshold"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for cuesmith.
//
// Configuration sections by subsystem:
//   - Paths: run log database, lock file, and log directory
//   - Server: HTTP API bind address and bearer token
//   - Subtitles: default cue layout options
//   - Alignment: script alignment limits and strictness
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Server    Server    `toml:"server"`
	Subtitles Subtitles `toml:"subtitles"`
	Alignment Alignment `toml:"alignment"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded. The second result is the resolved path
// and the third reports whether that file exists.
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
		decoder.DisallowUnknownFields()
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

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
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

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// RunLogPath returns the SQLite database holding runs, events, and webinar subtitles.
func (c *Config) RunLogPath() string {
	return filepath.Join(c.Paths.DataDir, runLogFileName)
}

// LockPath returns the lock file that keeps one server per data directory.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, lockFileName)
}

// SubtitleOptions converts the [subtitles] section into pipeline options.
func (c *Config) SubtitleOptions() subtitles.Options {
	return subtitles.Options{
		MaxCharsPerLine:   c.Subtitles.MaxCharsPerLine,
		MaxLines:          c.Subtitles.MaxLines,
		MinCueDurationSec: c.Subtitles.MinCueDurationSec,
		MaxCueDurationSec: c.Subtitles.MaxCueDurationSec,
		MaxCPS:            c.Subtitles.MaxCPS,
		MinGapSec:         c.Subtitles.MinGapSec,
		PauseSplitSec:     c.Subtitles.PauseSplitSec,
	}
}

// AlignmentOptions converts the [alignment] section into aligner options.
func (c *Config) AlignmentOptions() alignment.Options {
	return alignment.Options{
		LCSCellLimit:           c.Alignment.LCSCellLimit,
		GreedyLookahead:        c.Alignment.GreedyLookahead,
		UnusedWhisperWarnRatio: c.Alignment.UnusedWhisperWarnRatio,
		CoverageWarnThreshold:  c.Alignment.CoverageWarnThreshold,
	}
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
	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
