package runlog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// timeLayout has a fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(timeLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableJSON(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if raw, ok := value.(json.RawMessage); ok {
		if len(raw) == 0 {
			return nil, nil
		}
		return string(raw), nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal json column: %w", err)
	}
	if string(data) == "null" {
		return nil, nil
	}
	return string(data), nil
}

func rawJSON(value sql.NullString) json.RawMessage {
	if !value.Valid || value.String == "" {
		return nil
	}
	return json.RawMessage(value.String)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

const runColumns = "id, webinar_id, status, is_cjk, has_script, strict, options_json, cue_count, issue_count, metrics_json, alignment_json, error_message, created_at, finished_at"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run         Run
		webinarID   sql.NullString
		status      string
		isCJK       int
		hasScript   int
		strict      int
		options     sql.NullString
		metrics     sql.NullString
		alignment   sql.NullString
		errorMsg    sql.NullString
		createdRaw  string
		finishedRaw sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&webinarID,
		&status,
		&isCJK,
		&hasScript,
		&strict,
		&options,
		&run.CueCount,
		&run.IssueCount,
		&metrics,
		&alignment,
		&errorMsg,
		&createdRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}
	run.WebinarID = webinarID.String
	run.Status = Status(status)
	run.IsCJK = isCJK != 0
	run.HasScript = hasScript != 0
	run.Strict = strict != 0
	run.Options = rawJSON(options)
	run.Metrics = rawJSON(metrics)
	run.Alignment = rawJSON(alignment)
	run.ErrorMessage = errorMsg.String
	if created, err := parseTimeString(createdRaw); err == nil {
		run.CreatedAt = created
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return &run, nil
}
