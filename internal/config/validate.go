package config

import (
	"errors"
	"fmt"
	"net"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	if err := c.validateAlignment(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	if _, _, err := net.SplitHostPort(c.Server.Bind); err != nil {
		return fmt.Errorf("server.bind %q must be host:port: %w", c.Server.Bind, err)
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	s := c.Subtitles
	if s.MaxCharsPerLine < 1 {
		return errors.New("subtitles.max_chars_per_line must be at least 1")
	}
	if s.MaxLines < 1 {
		return errors.New("subtitles.max_lines must be at least 1")
	}
	if s.MinCueDurationSec <= 0 {
		return errors.New("subtitles.min_cue_duration_sec must be positive")
	}
	if s.MaxCueDurationSec < s.MinCueDurationSec {
		return errors.New("subtitles.max_cue_duration_sec must not be below min_cue_duration_sec")
	}
	if s.MaxCPS <= 0 {
		return errors.New("subtitles.max_cps must be positive")
	}
	if s.MinGapSec < 0 {
		return errors.New("subtitles.min_gap_sec must not be negative")
	}
	if s.PauseSplitSec <= 0 {
		return errors.New("subtitles.pause_split_sec must be positive")
	}
	return nil
}

func (c *Config) validateAlignment() error {
	a := c.Alignment
	if a.MinCoverage < 0 || a.MinCoverage > 1 {
		return errors.New("alignment.min_coverage must be between 0 and 1")
	}
	if a.CoverageWarnThreshold < 0 || a.CoverageWarnThreshold > 1 {
		return errors.New("alignment.coverage_warn_threshold must be between 0 and 1")
	}
	if a.LCSCellLimit < 1 || a.LCSCellLimit > maxLCSCellLimit {
		return fmt.Errorf("alignment.lcs_cell_limit must be between 1 and %d", maxLCSCellLimit)
	}
	if a.GreedyLookahead < 1 {
		return errors.New("alignment.greedy_lookahead must be at least 1")
	}
	if a.UnusedWhisperWarnRatio <= 0 {
		return errors.New("alignment.unused_whisper_warn_ratio must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}
