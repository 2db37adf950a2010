package runlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	defaultListLimit = 50
	maxListLimit     = 1000
)

// CreateRun inserts a run in the running state.
func (s *Store) CreateRun(ctx context.Context, run NewRun) (*Run, error) {
	if strings.TrimSpace(run.ID) == "" {
		return nil, errors.New("run id is required")
	}
	options, err := nullableJSON(run.Options)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	_, err = s.execWithRetry(
		ctx,
		`INSERT INTO runs (id, webinar_id, status, is_cjk, has_script, strict, options_json, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		nullableString(run.WebinarID),
		StatusRunning,
		boolToInt(run.IsCJK),
		boolToInt(run.HasScript),
		boolToInt(run.Strict),
		options,
		formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return s.GetRun(ctx, run.ID)
}

// FinishRun records the verdict of a running run. Finishing a run twice is an error.
func (s *Store) FinishRun(ctx context.Context, runID string, outcome Outcome) error {
	if outcome.Status == "" || !outcome.Status.IsTerminal() {
		return fmt.Errorf("finish run %s: status %q is not terminal", runID, outcome.Status)
	}
	metrics, err := nullableJSON(outcome.Metrics)
	if err != nil {
		return err
	}
	alignment, err := nullableJSON(outcome.Alignment)
	if err != nil {
		return err
	}
	res, err := s.execWithRetry(
		ctx,
		`UPDATE runs
         SET status = ?, cue_count = ?, issue_count = ?, metrics_json = ?, alignment_json = ?,
             error_message = ?, finished_at = ?
         WHERE id = ? AND status = ?`,
		outcome.Status,
		outcome.CueCount,
		outcome.IssueCount,
		metrics,
		alignment,
		nullableString(outcome.ErrorMessage),
		formatTime(time.Now()),
		runID,
		StatusRunning,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run %s: not found or already finished", runID)
	}
	return nil
}

// GetRun fetches a run by identifier. It returns nil, nil when the run does not exist.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+runColumns+` FROM runs WHERE id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// ListRuns returns runs newest first.
func (s *Store) ListRuns(ctx context.Context, filter ListFilter) ([]Run, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	var (
		clauses []string
		args    []any
	)
	if id := strings.TrimSpace(filter.WebinarID); id != "" {
		clauses = append(clauses, "webinar_id = ?")
		args = append(args, id)
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	query := `SELECT ` + runColumns + ` FROM runs`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// Stats returns a count of runs grouped by status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `SELECT status, COUNT(1) FROM runs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("run stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// PruneRuns deletes finished runs created before cutoff along with their
// events. Webinar subtitle records are kept.
func (s *Store) PruneRuns(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx = ensureContext(ctx)
	var removed int64
	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin prune tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		args := []any{formatTime(cutoff), StatusRunning}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM run_events WHERE run_id IN (SELECT id FROM runs WHERE created_at < ? AND status != ?)`, args...,
		); err != nil {
			return fmt.Errorf("prune events: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE created_at < ? AND status != ?`, args...)
		if err != nil {
			return fmt.Errorf("prune runs: %w", err)
		}
		if removed, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("prune rows affected: %w", err)
		}
		return tx.Commit()
	})
	return removed, err
}
