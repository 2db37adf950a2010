// Package logging assembles structured slog loggers and formatting helpers used
// across cuesmith.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so host code can tag log lines
// with run IDs, webinar IDs, and pipeline stages. StageEvent bridges the
// subtitle pipeline's hook events into slog so console output mirrors the run
// log. The package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
