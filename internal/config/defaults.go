package config

import (
	"cuesmith/internal/alignment"
	"cuesmith/internal/subtitles"
)

const (
	defaultConfigPath  = "~/.config/cuesmith/config.toml"
	projectConfigName  = "cuesmith.toml"
	defaultDataDir     = "~/.local/share/cuesmith"
	defaultLogDir      = "~/.local/share/cuesmith/logs"
	defaultBind        = "127.0.0.1:7490"
	defaultMaxBodyMiB  = 32
	defaultReqTimeout  = 120
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultMinCoverage = 0.97
	runLogFileName     = "cuesmith.db"
	lockFileName       = "cuesmith.lock"

	// maxLCSCellLimit keeps the alignment table within a few hundred MiB.
	maxLCSCellLimit = 100_000_000

	// TokenEnvVar supplies server.token when the file leaves it empty.
	TokenEnvVar = "CUESMITH_API_TOKEN"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Server: Server{
			Bind:           defaultBind,
			MaxBodyMiB:     defaultMaxBodyMiB,
			RequestTimeout: defaultReqTimeout,
		},
		Subtitles: Subtitles{
			MaxCharsPerLine:   subtitles.DefaultMaxCharsPerLine,
			MaxLines:          subtitles.DefaultMaxLines,
			MinCueDurationSec: subtitles.DefaultMinCueDurationSec,
			MaxCueDurationSec: subtitles.DefaultMaxCueDurationSec,
			MaxCPS:            subtitles.DefaultMaxCPS,
			MinGapSec:         subtitles.DefaultMinGapSec,
			PauseSplitSec:     subtitles.DefaultPauseSplitSec,
		},
		Alignment: Alignment{
			Strict:                 true,
			MinCoverage:            defaultMinCoverage,
			LCSCellLimit:           alignment.DefaultLCSCellLimit,
			GreedyLookahead:        alignment.DefaultGreedyLookahead,
			UnusedWhisperWarnRatio: alignment.DefaultUnusedWhisperWarnRatio,
			CoverageWarnThreshold:  alignment.DefaultCoverageWarnThreshold,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
