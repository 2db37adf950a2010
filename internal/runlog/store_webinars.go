package runlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cuesmith/internal/subtitles"
)

// SaveWebinarSubtitles upserts the subtitles for a webinar. A later save replaces the earlier one.
func (s *Store) SaveWebinarSubtitles(ctx context.Context, record WebinarSubtitles) error {
	if strings.TrimSpace(record.WebinarID) == "" {
		return errors.New("webinar id is required")
	}
	cues := record.Cues
	if cues == nil {
		cues = make([]subtitles.Cue, 0)
	}
	payload, err := json.Marshal(cues)
	if err != nil {
		return fmt.Errorf("marshal cues: %w", err)
	}
	generated := record.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	_, err = s.execWithRetry(ctx,
		`INSERT INTO webinar_subtitles (webinar_id, run_id, language, is_cjk, cue_count, cues_json, generated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(webinar_id) DO UPDATE SET
             run_id = excluded.run_id,
             language = excluded.language,
             is_cjk = excluded.is_cjk,
             cue_count = excluded.cue_count,
             cues_json = excluded.cues_json,
             generated_at = excluded.generated_at`,
		record.WebinarID,
		record.RunID,
		nullableString(record.Language),
		boolToInt(record.IsCJK),
		len(cues),
		string(payload),
		formatTime(generated),
	)
	if err != nil {
		return fmt.Errorf("save webinar subtitles: %w", err)
	}
	return nil
}

// WebinarSubtitles loads the saved subtitles for a webinar, or nil when none exist.
func (s *Store) WebinarSubtitles(ctx context.Context, webinarID string) (*WebinarSubtitles, error) {
	var (
		record       WebinarSubtitles
		language     sql.NullString
		isCJK        int
		cuesRaw      string
		generatedRaw string
	)
	err := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT webinar_id, run_id, language, is_cjk, cues_json, generated_at FROM webinar_subtitles WHERE webinar_id = ?`,
		webinarID,
	).Scan(&record.WebinarID, &record.RunID, &language, &isCJK, &cuesRaw, &generatedRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get webinar subtitles: %w", err)
	}
	record.Language = language.String
	record.IsCJK = isCJK != 0
	if err := json.Unmarshal([]byte(cuesRaw), &record.Cues); err != nil {
		return nil, fmt.Errorf("decode webinar cues: %w", err)
	}
	if ts, err := parseTimeString(generatedRaw); err == nil {
		record.GeneratedAt = ts
	}
	return &record, nil
}
