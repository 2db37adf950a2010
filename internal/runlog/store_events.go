package runlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// AppendEvents appends events to a run, numbering them after any events
// already stored. Event times default to now.
func (s *Store) AppendEvents(ctx context.Context, runID string, events []Event) error {
	if len(events) == 0 {
		return nil
	}
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		return s.appendEventsTx(ctx, runID, events)
	})
}

func (s *Store) appendEventsTx(ctx context.Context, runID string, events []Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin events tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM run_events WHERE run_id = ?`, runID,
	).Scan(&next); err != nil {
		return fmt.Errorf("read event sequence: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_events (run_id, seq, ts, stage, level, message, data_json) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare event insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, event := range events {
		next++
		ts := event.Time
		if ts.IsZero() {
			ts = now
		}
		var data any
		if len(event.Data) > 0 {
			if data, err = nullableJSON(event.Data); err != nil {
				return err
			}
		}
		if _, err := stmt.ExecContext(ctx, runID, next, formatTime(ts), event.Stage, event.Level, event.Message, data); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit events: %w", err)
	}
	return nil
}

// Events returns a run's events in emission order.
func (s *Store) Events(ctx context.Context, runID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT seq, ts, stage, level, message, data_json FROM run_events WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			event Event
			tsRaw string
			data  sql.NullString
		)
		if err := rows.Scan(&event.Seq, &tsRaw, &event.Stage, &event.Level, &event.Message, &data); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if ts, err := parseTimeString(tsRaw); err == nil {
			event.Time = ts
		}
		if data.Valid && data.String != "" {
			if err := json.Unmarshal([]byte(data.String), &event.Data); err != nil {
				return nil, fmt.Errorf("decode event %d data: %w", event.Seq, err)
			}
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
