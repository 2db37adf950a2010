package generation

import (
	"context"
	"strings"

	"cuesmith/internal/runlog"
)

// RunDetail is a recorded run with its events.
type RunDetail struct {
	Run    *runlog.Run    `json:"run"`
	Events []runlog.Event `json:"events"`
}

// Run returns one recorded run and its events, or ErrNotFound.
func (s *Service) Run(ctx context.Context, runID string) (*RunDetail, error) {
	if err := s.requireStore("get run"); err != nil {
		return nil, err
	}
	runID = strings.TrimSpace(runID)
	run, err := s.store.GetRun(ctx, runID)
	if err != nil {
		return nil, Wrap(ErrStorage, "runlog", "get run", runID, err)
	}
	if run == nil {
		return nil, Wrap(ErrNotFound, "runlog", "get run", runID, nil)
	}
	events, err := s.store.Events(ctx, runID)
	if err != nil {
		return nil, Wrap(ErrStorage, "runlog", "list events", runID, err)
	}
	if events == nil {
		events = []runlog.Event{}
	}
	return &RunDetail{Run: run, Events: events}, nil
}

// Runs lists recorded runs newest first.
func (s *Service) Runs(ctx context.Context, filter runlog.ListFilter) ([]runlog.Run, error) {
	if err := s.requireStore("list runs"); err != nil {
		return nil, err
	}
	runs, err := s.store.ListRuns(ctx, filter)
	if err != nil {
		return nil, Wrap(ErrStorage, "runlog", "list runs", "", err)
	}
	if runs == nil {
		runs = []runlog.Run{}
	}
	return runs, nil
}

// WebinarSubtitles returns the saved cues for a webinar, or ErrNotFound.
func (s *Service) WebinarSubtitles(ctx context.Context, webinarID string) (*runlog.WebinarSubtitles, error) {
	if err := s.requireStore("get webinar subtitles"); err != nil {
		return nil, err
	}
	webinarID = strings.TrimSpace(webinarID)
	record, err := s.store.WebinarSubtitles(ctx, webinarID)
	if err != nil {
		return nil, Wrap(ErrStorage, "runlog", "get webinar subtitles", webinarID, err)
	}
	if record == nil {
		return nil, Wrap(ErrNotFound, "runlog", "get webinar subtitles", webinarID, nil)
	}
	return record, nil
}

func (s *Service) requireStore(op string) error {
	if s.store == nil {
		return Wrap(ErrStorage, "runlog", op, "run log disabled", nil)
	}
	return nil
}
