package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"cuesmith/internal/alignment"
	"cuesmith/internal/config"
	"cuesmith/internal/language"
	"cuesmith/internal/logging"
	"cuesmith/internal/runlog"
	"cuesmith/internal/subtitles"
	"cuesmith/internal/textutil"
	"cuesmith/internal/transcript"
)

// Service executes generation requests against the run log.
type Service struct {
	logger      *slog.Logger
	store       *runlog.Store
	subtitles   subtitles.Options
	alignment   alignment.Options
	strict      bool
	minCoverage float64
	newID       func() string
	now         func() time.Time
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithIDGenerator replaces the uuid run id generator.
func WithIDGenerator(fn func() string) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithClock replaces the clock used for persistence timestamps.
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewService builds a Service from configuration. store may be nil, in which
// case nothing is recorded and persistence requests fail validation.
func NewService(cfg *config.Config, store *runlog.Store, logger *slog.Logger, opts ...ServiceOption) *Service {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	svc := &Service{
		logger:      logging.NewComponentLogger(logger, "generation"),
		store:       store,
		subtitles:   cfg.SubtitleOptions(),
		alignment:   cfg.AlignmentOptions(),
		strict:      cfg.Alignment.Strict,
		minCoverage: cfg.Alignment.MinCoverage,
		newID:       uuid.NewString,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// SubtitleOptions returns the base options requests are layered on.
func (s *Service) SubtitleOptions() subtitles.Options {
	return s.subtitles
}

// Generate runs one request. A rejected alignment returns the response along
// with an error wrapping ErrAlignmentRejected; validation problems return
// ErrValidation and no run is recorded. Other errors carry the run id in the
// response when one was allocated.
func (s *Service) Generate(ctx context.Context, req Request) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := req.Validate(s.subtitles); err != nil {
		return nil, Wrap(ErrValidation, "generation", "validate request", "", err)
	}
	if req.Persist && s.store == nil {
		return nil, Wrap(ErrValidation, "generation", "validate request", "persistence needs a run log", nil)
	}

	runID := s.newID()
	ctx = logging.WithRunID(ctx, runID)
	ctx = logging.WithWebinarID(ctx, req.WebinarID)
	recorder := newEventRecorder()
	logger := logging.TeeLogger(logging.WithContext(ctx, s.logger), recorder)

	strict := s.strict
	if req.StrictAlignment != nil {
		strict = *req.StrictAlignment
	}
	isCJK := s.resolveCJK(req, logger)

	resp := &Response{
		RunID:  runID,
		IsCJK:  isCJK,
		Strict: strict,
		Cues:   []subtitles.Cue{},
		Issues: []subtitles.Issue{},
	}

	if s.store != nil {
		if _, err := s.store.CreateRun(ctx, runlog.NewRun{
			ID:        runID,
			WebinarID: req.WebinarID,
			IsCJK:     isCJK,
			HasScript: req.HasScript(),
			Strict:    strict,
			Options:   req.Options,
		}); err != nil {
			return resp, Wrap(ErrStorage, "runlog", "create run", "", err)
		}
	}

	tr := req.Transcript
	if req.HasScript() {
		aligned, err := s.align(req, isCJK, strict, logger, resp)
		if err != nil {
			return resp, s.finish(ctx, recorder, runID, err, runlog.Outcome{
				Status:       runlog.StatusRejected,
				Alignment:    resp.Alignment,
				ErrorMessage: err.Error(),
			})
		}
		tr = aligned
	}

	result := subtitles.GenerateWith(tr, s.subtitles, req.Options, subtitles.Hooks{
		OnLog: func(e subtitles.Event) {
			logging.StageEvent(logger, e.Level, e.Stage, e.Message, e.Data)
		},
	})
	resp.Cues = result.Cues
	resp.Issues = result.Issues
	resp.Metrics = &result.Metrics

	status := runlog.StatusSucceeded
	var message string
	if result.HasErrors() {
		status = runlog.StatusFailed
		message = firstError(result.Issues)
		logging.ErrorWithContext(logger, "subtitle generation produced errors", "generation_failed",
			logging.String(logging.FieldErrorCode, message),
			logging.Hint("check that the transcript contains timed words"))
	}

	if req.Persist && strings.TrimSpace(req.WebinarID) != "" {
		if result.HasErrors() {
			logging.WarnWithContext(logger, "skipping webinar persistence", "persist_skipped",
				logging.Impact("existing webinar subtitles were kept"))
		} else if err := s.persist(ctx, req, runID, isCJK, result.Cues); err != nil {
			wrapped := Wrap(ErrStorage, "runlog", "save webinar subtitles", "", err)
			return resp, s.finish(ctx, recorder, runID, wrapped, runlog.Outcome{
				Status:       runlog.StatusFailed,
				CueCount:     len(result.Cues),
				IssueCount:   len(result.Issues),
				Metrics:      result.Metrics,
				Alignment:    resp.Alignment,
				ErrorMessage: wrapped.Error(),
			})
		} else {
			resp.Persisted = true
			logger.Info("webinar subtitles saved", logging.Int("cues", len(result.Cues)))
		}
	}

	return resp, s.finish(ctx, recorder, runID, nil, runlog.Outcome{
		Status:       status,
		CueCount:     len(result.Cues),
		IssueCount:   len(result.Issues),
		Metrics:      result.Metrics,
		Alignment:    resp.Alignment,
		ErrorMessage: message,
	})
}

func (s *Service) resolveCJK(req Request, logger *slog.Logger) bool {
	if req.IsCJK != nil {
		return *req.IsCJK
	}
	sample := req.ScriptText
	if strings.TrimSpace(sample) == "" && len(req.ScriptTokens) > 0 {
		sample = strings.Join(req.ScriptTokens, "")
	}
	source := "script"
	if strings.TrimSpace(sample) == "" {
		if code := req.Transcript.Language; code != "" && language.ToISO2(code) != "" {
			detected := language.IsCJK(code)
			logger.Debug("script mode detected",
				logging.Bool("is_cjk", detected),
				logging.String("source", "transcript_language"),
				logging.String("language", language.DisplayName(code)))
			return detected
		}
		sample = req.Transcript.Text()
		source = "transcript_text"
	}
	detected := textutil.LooksCJK(sample)
	logger.Debug("script mode detected", logging.Bool("is_cjk", detected), logging.String("source", source))
	return detected
}

// align runs the script aligner and applies the strict gate. On success it
// returns the aligned tokens repackaged as a single-segment transcript.
func (s *Service) align(req Request, isCJK, strict bool, logger *slog.Logger, resp *Response) (transcript.Transcript, error) {
	result := alignment.Align(alignment.Request{
		ScriptTokens: req.ScriptTokens,
		ScriptText:   req.ScriptText,
		Words:        req.Transcript.Words(),
		IsCJK:        isCJK,
	}, s.alignment)
	resp.Alignment = &result

	stats := result.Stats
	logging.StageEvent(logger, subtitles.LevelInfo, "alignment", "script aligned", map[string]any{
		"method":                       string(stats.Method),
		"script_tokens":                stats.ScriptTokens,
		"coverage_ratio":               stats.CoverageRatio,
		"unmatched_core_script_tokens": stats.UnmatchedCoreScriptTokens,
		"unused_whisper_chars":         stats.UnusedWhisperChars,
	})
	for _, warning := range result.Warnings {
		logging.StageEvent(logger, subtitles.LevelWarn, "alignment", warning, map[string]any{
			logging.FieldErrorCode: alignment.WarningCode(warning),
		})
	}

	if strict && (stats.CoverageRatio < s.minCoverage || stats.UnmatchedCoreScriptTokens > 0) {
		msg := fmt.Sprintf("coverage %.3f (minimum %.3f), %d unmatched script tokens",
			stats.CoverageRatio, s.minCoverage, stats.UnmatchedCoreScriptTokens)
		logging.WarnWithContext(logger, "alignment rejected by strict gate", "alignment_rejected",
			logging.Stage("alignment"),
			logging.String("reason", msg),
			logging.Hint("fix the script or resend with strictAlignment=false"),
			logging.Impact("no subtitles were generated"))
		return transcript.Transcript{}, Wrap(ErrAlignmentRejected, "alignment", "strict gate", msg, nil)
	}

	if len(result.Tokens) == 0 {
		logging.WarnWithContext(logger, "script produced no tokens; using recognizer text", "alignment_empty",
			logging.Stage("alignment"),
			logging.Impact("cues follow the recognizer transcript"))
		return req.Transcript, nil
	}
	return syntheticTranscript(result.Tokens, isCJK, req.Transcript.Language), nil
}

// syntheticTranscript packs aligned tokens into one segment whose words carry
// the alignment confidence as probability.
func syntheticTranscript(tokens []alignment.TimedToken, isCJK bool, language string) transcript.Transcript {
	words := make([]transcript.Word, len(tokens))
	for i, tok := range tokens {
		words[i] = transcript.Word{
			Word:        tok.Text,
			Start:       tok.Start,
			End:         tok.End,
			Probability: transcript.Float64(tok.Confidence),
		}
	}
	seg := transcript.Segment{
		Text:  alignment.JoinTokens(tokens, isCJK),
		Words: words,
	}
	if len(tokens) > 0 {
		seg.Start = tokens[0].Start
		seg.End = tokens[len(tokens)-1].End
	}
	return transcript.Transcript{Language: language, Segments: []transcript.Segment{seg}}
}

func (s *Service) persist(ctx context.Context, req Request, runID string, isCJK bool, cues []subtitles.Cue) error {
	return s.store.SaveWebinarSubtitles(ctx, runlog.WebinarSubtitles{
		WebinarID:   req.WebinarID,
		RunID:       runID,
		Language:    normalizedLanguage(req.Transcript.Language),
		IsCJK:       isCJK,
		Cues:        cues,
		GeneratedAt: s.now(),
	})
}

// finish flushes recorded events and closes the run. It returns cause, or a
// storage error when cause is nil and recording failed.
func (s *Service) finish(ctx context.Context, recorder *eventRecorder, runID string, cause error, outcome runlog.Outcome) error {
	if cause != nil {
		outcome.Status = FailureStatus(cause)
	}
	if s.store == nil {
		recorder.drain()
		return cause
	}
	// The run log must be written even when the request context was cancelled.
	ctx = context.WithoutCancel(ctx)
	if err := s.store.AppendEvents(ctx, runID, recorder.drain()); err != nil {
		s.logger.Error("append run events failed", logging.RunID(runID), logging.Error(err))
		if cause == nil {
			cause = Wrap(ErrStorage, "runlog", "append events", "", err)
			outcome.Status = runlog.StatusFailed
			outcome.ErrorMessage = cause.Error()
		}
	}
	if err := s.store.FinishRun(ctx, runID, outcome); err != nil {
		s.logger.Error("finish run failed", logging.RunID(runID), logging.Error(err))
		if cause == nil {
			cause = Wrap(ErrStorage, "runlog", "finish run", "", err)
		}
	}
	return cause
}

// normalizedLanguage stores ISO 639-1 codes when the recognizer code is known.
func normalizedLanguage(code string) string {
	if iso := language.ToISO2(code); iso != "" {
		return iso
	}
	return strings.TrimSpace(code)
}

func firstError(issues []subtitles.Issue) string {
	for _, issue := range issues {
		if issue.Severity == subtitles.SeverityError {
			return issue.Code
		}
	}
	return ""
}
