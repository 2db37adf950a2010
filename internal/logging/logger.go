package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cuesmith/internal/config"
)

// LogFileName is the file written under paths.log_dir.
const LogFileName = "cuesmith.log"

// Options describes logger construction parameters. Outputs accepts
// "stdout", "stderr" or file paths; it defaults to stderr.
type Options struct {
	Level       string
	Format      string
	Outputs     []string
	Development bool
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)
	w, err := openOutputs(opts.Outputs)
	if err != nil {
		return nil, err
	}
	return build(w, opts.Format, level, opts.Development || level <= slog.LevelDebug)
}

// NewWriter builds a logger that writes to w. The CLI uses it to keep stdout
// free for subtitle output.
func NewWriter(w io.Writer, format, level string) (*slog.Logger, error) {
	return build(w, format, parseLevel(level), false)
}

// NewFromConfig logs to stderr and to cuesmith.log under paths.log_dir.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "console"})
	}
	outputs := []string{"stderr"}
	if cfg.Paths.LogDir != "" {
		outputs = append(outputs, filepath.Join(cfg.Paths.LogDir, LogFileName))
	}
	return New(Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Outputs: outputs,
	})
}

func build(w io.Writer, format string, level slog.Level, addSource bool) (*slog.Logger, error) {
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "console":
		handler = newPrettyHandler(w, levelVar, addSource)
	case "json":
		handler = newJSONHandler(w, levelVar, addSource)
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", format)
	}
	return slog.New(handler), nil
}

func openOutputs(paths []string) (io.Writer, error) {
	seen := make(map[string]bool, len(paths))
	var writers []io.Writer
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true

		switch path {
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, fmt.Errorf("ensure log directory: %w", err)
			}
			file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
			if err != nil {
				return nil, fmt.Errorf("open log file %s: %w", path, err)
			}
			writers = append(writers, file)
		}
	}

	switch len(writers) {
	case 0:
		return os.Stderr, nil
	case 1:
		return writers[0], nil
	default:
		return io.MultiWriter(writers...), nil
	}
}
