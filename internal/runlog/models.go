package runlog

import (
	"encoding/json"
	"time"

	"cuesmith/internal/subtitles"
)

// Status represents the lifecycle state of a generation run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	// StatusRejected marks runs stopped by the strict alignment gate.
	StatusRejected Status = "rejected"
)

// IsTerminal reports whether no further transitions are expected.
func (s Status) IsTerminal() bool {
	return s != StatusRunning
}

// Run is one generation request as recorded in the run log.
type Run struct {
	ID           string          `json:"id"`
	WebinarID    string          `json:"webinarId,omitempty"`
	Status       Status          `json:"status"`
	IsCJK        bool            `json:"isCjk"`
	HasScript    bool            `json:"hasScript"`
	Strict       bool            `json:"strict"`
	Options      json.RawMessage `json:"options,omitempty"`
	CueCount     int             `json:"cueCount"`
	IssueCount   int             `json:"issueCount"`
	Metrics      json.RawMessage `json:"metrics,omitempty"`
	Alignment    json.RawMessage `json:"alignment,omitempty"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	FinishedAt   *time.Time      `json:"finishedAt,omitempty"`
}

// NewRun describes a run at creation time.
type NewRun struct {
	ID        string
	WebinarID string
	IsCJK     bool
	HasScript bool
	Strict    bool
	Options   any
}

// Outcome is recorded when a run finishes.
type Outcome struct {
	Status       Status
	CueCount     int
	IssueCount   int
	Metrics      any
	Alignment    any
	ErrorMessage string
}

// Event is one pipeline event in emission order.
type Event struct {
	Seq     int            `json:"seq"`
	Time    time.Time      `json:"ts"`
	Stage   string         `json:"stage"`
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// ListFilter narrows ListRuns. Zero values match everything.
type ListFilter struct {
	WebinarID string
	Status    Status
	Limit     int
}

// WebinarSubtitles is the latest saved generation for a webinar.
type WebinarSubtitles struct {
	WebinarID   string          `json:"webinarId"`
	RunID       string          `json:"runId"`
	Language    string          `json:"language,omitempty"`
	IsCJK       bool            `json:"isCjk"`
	Cues        []subtitles.Cue `json:"cues"`
	GeneratedAt time.Time       `json:"generatedAt"`
}
