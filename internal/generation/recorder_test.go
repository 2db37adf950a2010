package generation

import (
	"errors"
	"log/slog"
	"testing"

	"cuesmith/internal/logging"
)

func TestEventRecorderCapturesRecords(t *testing.T) {
	rec := newEventRecorder()
	logger := slog.New(rec).With(logging.RunID("run-1"))

	logging.StageEvent(logger, "debug", "segment", "segmented cue drafts", map[string]any{"drafts": 3})
	logger.Warn("plain warning", logging.Error(errors.New("boom")), logging.Group("g", logging.Int("n", 1)))

	events := rec.drain()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	first := events[0]
	if first.Stage != "segment" || first.Level != "debug" || first.Data["drafts"] != int64(3) {
		t.Fatalf("unexpected first event: %+v", first)
	}
	if _, ok := first.Data[logging.FieldRunID]; ok {
		t.Fatal("logger attrs should not leak into event data")
	}
	second := events[1]
	if second.Stage != serviceStage || second.Level != "warn" || second.Data["error"] != "boom" {
		t.Fatalf("unexpected second event: %+v", second)
	}
	if group, ok := second.Data["g"].(map[string]any); !ok || group["n"] != int64(1) {
		t.Fatalf("unexpected group data: %#v", second.Data["g"])
	}
	if len(rec.drain()) != 0 {
		t.Fatal("drain should reset the buffer")
	}
}
