package subtitles

import (
	"strings"
	"testing"

	"cuesmith/internal/transcript"
)

// timedSegment lays out texts back to back, each lasting step seconds.
func timedSegment(start, step float64, texts ...string) transcript.Segment {
	seg := transcript.Segment{Start: start, End: start + step*float64(len(texts)), Text: strings.Join(texts, " ")}
	for i, text := range texts {
		seg.Words = append(seg.Words, transcript.Word{
			Word:  text,
			Start: start + float64(i)*step,
			End:   start + float64(i+1)*step,
		})
	}
	return seg
}

func issueCodes(issues []Issue) map[string]int {
	out := make(map[string]int)
	for _, issue := range issues {
		out[issue.Code]++
	}
	return out
}

func assertCueInvariants(t *testing.T, cues []Cue, opts Options) {
	t.Helper()
	for i, cue := range cues {
		if cue.End <= cue.Start {
			t.Errorf("cue %d: end %.3f <= start %.3f", cue.ID, cue.End, cue.Start)
		}
		if i > 0 && cue.Start < cues[i-1].End+opts.MinGapSec-1e-6 {
			t.Errorf("cue %d starts at %.3f, previous ends at %.3f", cue.ID, cue.Start, cues[i-1].End)
		}
		if cue.ID != i+1 {
			t.Errorf("cue id = %d, want %d", cue.ID, i+1)
		}
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
