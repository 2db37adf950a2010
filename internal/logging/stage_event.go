package logging

import (
	"context"
	"log/slog"
	"sort"
)

// StageEvent writes one pipeline event to logger. Data keys are emitted in
// sorted order after the stage attribute.
func StageEvent(logger *slog.Logger, level, stage, msg string, data map[string]any) {
	if logger == nil {
		return
	}
	lvl := parseLevel(level)
	ctx := context.Background()
	if !logger.Enabled(ctx, lvl) {
		return
	}
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys)+1)
	attrs = append(attrs, slog.String(FieldStage, stage))
	for _, key := range keys {
		attrs = append(attrs, slog.Any(key, data[key]))
	}
	logger.LogAttrs(ctx, lvl, msg, attrs...)
}
