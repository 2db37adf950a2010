package subtitles

import (
	"fmt"
	"strings"

	"cuesmith/internal/transcript"
)

const stagePipeline = "pipeline"

// Generate converts a word-timed transcript into subtitle cues.
//
// Overrides are merged over DefaultOptions; unusable values fall back to the
// defaults and are reported as invalid_option issues. Generate never fails:
// a transcript without usable words yields no cues and an empty_transcript
// issue with error severity.
func Generate(tr transcript.Transcript, overrides Overrides, hooks Hooks) Result {
	return GenerateWith(tr, DefaultOptions(), overrides, hooks)
}

// GenerateWith is Generate with a caller-supplied base, such as options
// loaded from configuration.
func GenerateWith(tr transcript.Transcript, base Options, overrides Overrides, hooks Hooks) Result {
	opts, changed := overrides.Apply(base).sanitize()
	r := newRun(opts, hooks)
	for _, field := range changed {
		r.issue(IssueInvalidOption, SeverityWarn, 0,
			fmt.Sprintf("option %s is out of range; using %v", field, optionValue(opts, field)),
			map[string]any{"option": field})
	}
	r.log(stagePipeline, LevelInfo, "subtitle generation started", map[string]any{
		"segments": len(tr.Segments),
		"options":  opts,
	})

	words := normalizeWords(tr, r)
	drafts := segmentWords(words, r)
	cues := layoutCues(drafts, r)

	if len(words) == 0 {
		r.issue(IssueEmptyTranscript, SeverityError, 0, "transcript contains no usable words", nil)
		r.log(stagePipeline, LevelError, "empty transcript", nil)
		return r.result(nil)
	}

	r.log(stagePipeline, LevelInfo, "subtitle generation finished", map[string]any{
		"cues":   len(cues),
		"issues": len(r.issues),
	})
	return r.result(cues)
}

func optionValue(opts Options, field string) any {
	switch strings.ToLower(field) {
	case "maxcharsperline":
		return opts.MaxCharsPerLine
	case "maxlines":
		return opts.MaxLines
	case "mincuedurationsec":
		return opts.MinCueDurationSec
	case "maxcuedurationsec":
		return opts.MaxCueDurationSec
	case "maxcps":
		return opts.MaxCPS
	case "mingapsec":
		return opts.MinGapSec
	case "pausesplitsec":
		return opts.PauseSplitSec
	}
	return nil
}
