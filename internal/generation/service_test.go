package generation_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cuesmith/internal/generation"
	"cuesmith/internal/runlog"
	"cuesmith/internal/subtitles"
	"cuesmith/internal/testsupport"
	"cuesmith/internal/transcript"
)

func newService(t *testing.T, runID string) (*generation.Service, *runlog.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	svc := generation.NewService(cfg, store, nil, generation.WithIDGenerator(func() string { return runID }))
	return svc, store
}

func boolPtr(v bool) *bool { return &v }

func TestGenerateWithoutScript(t *testing.T) {
	svc, store := newService(t, "run-1")
	ctx := context.Background()

	resp, err := svc.Generate(ctx, generation.Request{
		Transcript: testsupport.TimedTranscript("Hello there. This is a short test.", 0, 0.4),
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if resp.RunID != "run-1" || resp.Alignment != nil || resp.IsCJK {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(resp.Cues) == 0 || resp.Metrics == nil {
		t.Fatalf("expected cues and metrics, got %+v", resp)
	}

	run, err := store.GetRun(ctx, "run-1")
	if err != nil || run == nil {
		t.Fatalf("GetRun: %v %#v", err, run)
	}
	if run.Status != runlog.StatusSucceeded || run.CueCount != len(resp.Cues) || run.HasScript {
		t.Fatalf("unexpected run: %#v", run)
	}

	events, err := store.Events(ctx, "run-1")
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	var stages []string
	for _, e := range events {
		if e.Stage != "service" {
			stages = append(stages, e.Stage)
		}
	}
	want := []string{"pipeline", "normalize", "segment", "layout", "pipeline"}
	if strings.Join(stages, ",") != strings.Join(want, ",") {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
}

func TestGenerateAlignsCJKScript(t *testing.T) {
	svc, store := newService(t, "run-cjk")

	resp, err := svc.Generate(context.Background(), generation.Request{
		Transcript: testsupport.CharTranscript("本益比可能十到十五倍", 1, 0.2),
		ScriptText: "本益比可能十到十五倍。",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !resp.IsCJK {
		t.Fatal("expected CJK detection from the script")
	}
	if resp.Alignment == nil || resp.Alignment.Stats.CoverageRatio != 1 || resp.Alignment.Stats.UnmatchedCoreScriptTokens != 0 {
		t.Fatalf("unexpected alignment: %+v", resp.Alignment)
	}
	if len(resp.Cues) != 1 || resp.Cues[0].Text != "本益比可能十到十五倍。" {
		t.Fatalf("unexpected cues: %+v", resp.Cues)
	}
	if resp.Cues[0].Start != 1 {
		t.Fatalf("cue should start at the first aligned character, got %v", resp.Cues[0].Start)
	}

	run, _ := store.GetRun(context.Background(), "run-cjk")
	if run == nil || !run.HasScript || !run.IsCJK || len(run.Alignment) == 0 {
		t.Fatalf("unexpected run: %#v", run)
	}
}

func TestGenerateStrictGate(t *testing.T) {
	svc, store := newService(t, "run-strict")
	ctx := context.Background()
	req := generation.Request{
		Transcript: testsupport.TimedTranscript("hello world", 0, 0.5),
		ScriptText: "hello big world",
	}

	resp, err := svc.Generate(ctx, req)
	if !errors.Is(err, generation.ErrAlignmentRejected) {
		t.Fatalf("expected ErrAlignmentRejected, got %v", err)
	}
	if resp == nil || resp.Alignment == nil || len(resp.Cues) != 0 {
		t.Fatalf("rejected response should carry alignment only: %+v", resp)
	}
	if resp.Alignment.Stats.UnmatchedCoreScriptTokens != 1 {
		t.Fatalf("expected one unmatched token, got %+v", resp.Alignment.Stats)
	}

	run, _ := store.GetRun(ctx, "run-strict")
	if run == nil || run.Status != runlog.StatusRejected {
		t.Fatalf("expected rejected run, got %#v", run)
	}
	events, _ := store.Events(ctx, "run-strict")
	var sawAlignmentWarn bool
	for _, e := range events {
		if e.Stage == "pipeline" {
			t.Fatalf("pipeline should not run after rejection: %+v", e)
		}
		if e.Stage == "alignment" && e.Level == "warn" {
			sawAlignmentWarn = true
		}
	}
	if !sawAlignmentWarn {
		t.Fatal("expected an alignment warning event")
	}

	lenient, _ := newService(t, "run-lenient")
	req.StrictAlignment = boolPtr(false)
	resp, err = lenient.Generate(ctx, req)
	if err != nil {
		t.Fatalf("non-strict Generate failed: %v", err)
	}
	if len(resp.Cues) != 1 || resp.Cues[0].Text != "hello big world" {
		t.Fatalf("expected script text in cues, got %+v", resp.Cues)
	}
}

func TestGenerateValidationAggregatesProblems(t *testing.T) {
	svc, store := newService(t, "run-invalid")
	zero := 0
	minDur, maxDur := 5.0, 2.0

	_, err := svc.Generate(context.Background(), generation.Request{
		Transcript: testsupport.TimedTranscript("hi", 0, 1),
		Options: subtitles.Overrides{
			MaxLines:          &zero,
			MinCueDurationSec: &minDur,
			MaxCueDurationSec: &maxDur,
		},
		Persist: true,
	})
	if !errors.Is(err, generation.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	for _, fragment := range []string{"maxLines", "exceeds maxCueDurationSec", "persist requires webinarId"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("expected %q in %q", fragment, err.Error())
		}
	}

	runs, err := store.ListRuns(context.Background(), runlog.ListFilter{})
	if err != nil || len(runs) != 0 {
		t.Fatalf("validation failures should not create runs: %d %v", len(runs), err)
	}
}

func TestGeneratePersistsWebinarSubtitles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ids := []string{"run-a", "run-b"}
	next := 0
	svc := generation.NewService(cfg, store, nil, generation.WithIDGenerator(func() string {
		id := ids[next]
		next++
		return id
	}))
	ctx := context.Background()

	tr := testsupport.TimedTranscript("Welcome to the webinar.", 0, 0.5)
	tr.Language = "en"
	resp, err := svc.Generate(ctx, generation.Request{Transcript: tr, WebinarID: "web-1", Persist: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !resp.Persisted {
		t.Fatal("expected persisted response")
	}

	resp, err = svc.Generate(ctx, generation.Request{Transcript: transcript.Transcript{}, WebinarID: "web-1", Persist: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if resp.Persisted || len(resp.Cues) != 0 {
		t.Fatalf("empty transcript should not persist: %+v", resp)
	}

	saved, err := store.WebinarSubtitles(ctx, "web-1")
	if err != nil || saved == nil {
		t.Fatalf("WebinarSubtitles: %v %#v", err, saved)
	}
	if saved.RunID != "run-a" || saved.Language != "en" || len(saved.Cues) == 0 {
		t.Fatalf("expected first run to remain saved, got %#v", saved)
	}

	failed, _ := store.GetRun(ctx, "run-b")
	if failed == nil || failed.Status != runlog.StatusFailed || failed.ErrorMessage != subtitles.IssueEmptyTranscript {
		t.Fatalf("expected failed run, got %#v", failed)
	}
}

func TestGenerateWithoutStore(t *testing.T) {
	svc := generation.NewService(testsupport.NewConfig(t), nil, nil)
	resp, err := svc.Generate(context.Background(), generation.Request{
		Transcript: testsupport.TimedTranscript("No run log here.", 0, 0.3),
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if resp.RunID == "" || len(resp.Cues) == 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	_, err = svc.Generate(context.Background(), generation.Request{
		Transcript: testsupport.TimedTranscript("No run log here.", 0, 0.3),
		WebinarID:  "web",
		Persist:    true,
	})
	if !errors.Is(err, generation.ErrValidation) {
		t.Fatalf("expected ErrValidation without a store, got %v", err)
	}
}

func TestRunQueries(t *testing.T) {
	svc, _ := newService(t, "run-q")
	ctx := context.Background()

	if _, err := svc.Run(ctx, "run-q"); !errors.Is(err, generation.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before generation, got %v", err)
	}
	if _, err := svc.WebinarSubtitles(ctx, "web-q"); !errors.Is(err, generation.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown webinar, got %v", err)
	}

	if _, err := svc.Generate(ctx, generation.Request{
		Transcript: testsupport.TimedTranscript("Quick check.", 0, 0.5),
		WebinarID:  "web-q",
		Persist:    true,
	}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	detail, err := svc.Run(ctx, "run-q")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if detail.Run.WebinarID != "web-q" || len(detail.Events) == 0 {
		t.Fatalf("unexpected detail: %#v", detail)
	}
	runs, err := svc.Runs(ctx, runlog.ListFilter{WebinarID: "web-q"})
	if err != nil || len(runs) != 1 {
		t.Fatalf("Runs: %v %d", err, len(runs))
	}
	record, err := svc.WebinarSubtitles(ctx, "web-q")
	if err != nil || record.RunID != "run-q" {
		t.Fatalf("WebinarSubtitles: %v %#v", err, record)
	}

	bare := generation.NewService(nil, nil, nil)
	if _, err := bare.Runs(ctx, runlog.ListFilter{}); !errors.Is(err, generation.ErrStorage) {
		t.Fatalf("expected ErrStorage without a run log, got %v", err)
	}
}

func TestGenerateUsesTranscriptLanguageHint(t *testing.T) {
	svc, store := newService(t, "run-lang")
	tr := testsupport.TimedTranscript("ni hao", 0, 0.5)
	tr.Language = "zh-TW"

	resp, err := svc.Generate(context.Background(), generation.Request{Transcript: tr, WebinarID: "web-zh", Persist: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !resp.IsCJK {
		t.Fatal("expected the zh language code to select CJK mode")
	}
	saved, err := store.WebinarSubtitles(context.Background(), "web-zh")
	if err != nil || saved == nil {
		t.Fatalf("WebinarSubtitles: %v %#v", err, saved)
	}
	if saved.Language != "zh" || !saved.IsCJK {
		t.Fatalf("expected normalized zh record, got %#v", saved)
	}
}
