package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cuesmith/internal/config"
	"cuesmith/internal/logging"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.Format = "json"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello from config")

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, logging.LogFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), `"msg":"hello from config"`) {
		t.Fatalf("unexpected log content: %q", content)
	}
}

func TestConsoleLoggerCaller(t *testing.T) {
	tests := []struct {
		level      string
		wantCaller bool
	}{
		{"info", false},
		{"debug", true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logPath := filepath.Join(t.TempDir(), "console.log")
			logger, err := logging.New(logging.Options{
				Format:  "console",
				Level:   tt.level,
				Outputs: []string{logPath},
			})
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			logger.Info("message")

			content, err := os.ReadFile(logPath)
			if err != nil {
				t.Fatalf("read log file: %v", err)
			}
			if got := strings.Contains(string(content), ".go:"); got != tt.wantCaller {
				t.Fatalf("caller present = %v, want %v: %q", got, tt.wantCaller, content)
			}
		})
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestConsoleHeaderShowsRunAndStage(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWriter(&buf, "console", "info")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	logger = logging.NewComponentLogger(logger, "generation")
	logger.Info("layout complete",
		logging.RunID("1a2b3c4d-5e6f"),
		logging.Stage("layout"),
		logging.Int("cues", 4),
		logging.Float64("coverage_ratio", 0.975),
		logging.String("source_path", "/tmp/x"),
	)

	out := buf.String()
	for _, want := range []string{"INFO [generation] Run 1a2b3c4d (layout) – layout complete", "- Cues: 4", "- Coverage: 97.5%", "+ 1 more field hidden"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := logging.WithRunID(context.Background(), "run-123")
	ctx = logging.WithWebinarID(ctx, "web-9")
	ctx = logging.WithRequestID(ctx, "req-xyz")
	ctx = logging.WithWebinarID(ctx, "  ")

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logging.WithContext(ctx, logger).Info("contextual log")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	want := map[string]string{
		logging.FieldRunID:         "run-123",
		logging.FieldWebinarID:     "web-9",
		logging.FieldCorrelationID: "req-xyz",
	}
	for key, value := range want {
		if record[key] != value {
			t.Errorf("field %s = %v, want %q", key, record[key], value)
		}
	}
}

func TestStageEvent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWriter(&buf, "json", "info")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	logging.StageEvent(logger, "debug", "normalize", "skipped", nil)
	if buf.Len() != 0 {
		t.Fatalf("debug event should be filtered at info level: %q", buf.String())
	}

	logging.StageEvent(logger, "warn", "layout", "cps overflow", map[string]any{"cps_overflows": 2, "cues": 5})
	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if record["level"] != "warn" || record["stage"] != "layout" || record["msg"] != "cps overflow" {
		t.Fatalf("unexpected record: %v", record)
	}
	if record["cps_overflows"] != float64(2) {
		t.Fatalf("expected data attrs, got %v", record)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logging.WarnWithContext(logger, "low coverage", "alignment_low_coverage", logging.Impact("run rejected"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if record[logging.FieldEventType] != "alignment_low_coverage" {
		t.Fatalf("missing event type: %v", record)
	}
	if record[logging.FieldImpact] != "run rejected" {
		t.Fatalf("impact should not be overwritten: %v", record)
	}
	if record[logging.FieldErrorHint] == nil {
		t.Fatalf("expected default hint: %v", record)
	}
}
