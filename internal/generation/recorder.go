package generation

import (
	"context"
	"log/slog"
	"sync"

	"cuesmith/internal/logging"
	"cuesmith/internal/runlog"
)

// serviceStage labels events logged by the service itself rather than a pipeline stage.
const serviceStage = "service"

// eventRecorder is a slog.Handler that captures a run's log records as run
// log events. Attributes attached with With (run id, component) are dropped;
// only the record's own attributes become event data.
type eventRecorder struct {
	mu     *sync.Mutex
	events *[]runlog.Event
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{mu: &sync.Mutex{}, events: new([]runlog.Event)}
}

func (r *eventRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *eventRecorder) Handle(_ context.Context, record slog.Record) error {
	event := runlog.Event{
		Time:    record.Time,
		Stage:   serviceStage,
		Level:   logging.LevelName(record.Level),
		Message: record.Message,
	}
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == logging.FieldStage {
			event.Stage = attr.Value.String()
			return true
		}
		if event.Data == nil {
			event.Data = make(map[string]any, record.NumAttrs())
		}
		event.Data[attr.Key] = attrValue(attr.Value)
		return true
	})

	r.mu.Lock()
	*r.events = append(*r.events, event)
	r.mu.Unlock()
	return nil
}

func (r *eventRecorder) WithAttrs([]slog.Attr) slog.Handler { return r }

func (r *eventRecorder) WithGroup(string) slog.Handler { return r }

// drain returns the captured events and resets the buffer.
func (r *eventRecorder) drain() []runlog.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := *r.events
	*r.events = nil
	return events
}

func attrValue(v slog.Value) any {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		group := make(map[string]any, len(v.Group()))
		for _, attr := range v.Group() {
			group[attr.Key] = attrValue(attr.Value)
		}
		return group
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return v.Any()
	default:
		return v.Any()
	}
}
