package subtitles

import (
	"fmt"

	"cuesmith/internal/textutil"
)

// timeEpsilon tolerates float noise in comparisons of millisecond times.
const timeEpsilon = 1e-6

// ValidateCues re-checks cue ordering, durations, the line budget and
// line-start punctuation. It returns one issue per violation.
func ValidateCues(cues []Cue, opts Options) []Issue {
	opts, _ = opts.sanitize()
	var issues []Issue
	for i, cue := range cues {
		if cue.End <= cue.Start {
			issues = append(issues, Issue{
				Code:     IssueNonPositiveDuration,
				Severity: SeverityError,
				CueID:    cue.ID,
				Message:  fmt.Sprintf("cue %d ends at %.3f, not after its start %.3f", cue.ID, cue.End, cue.Start),
			})
		}
		if i > 0 {
			prev := cues[i-1]
			if cue.Start < prev.End+opts.MinGapSec-timeEpsilon {
				issues = append(issues, Issue{
					Code:     IssueOverlap,
					Severity: SeverityError,
					CueID:    cue.ID,
					Message:  fmt.Sprintf("cue %d starts %.3fs after cue %d ends, below the %.3fs gap", cue.ID, cue.Start-prev.End, prev.ID, opts.MinGapSec),
					Data:     map[string]any{"previous": prev.ID},
				})
			}
		}
		if len(cue.Lines) > opts.MaxLines {
			issues = append(issues, Issue{
				Code:     IssueLineBudget,
				Severity: SeverityWarn,
				CueID:    cue.ID,
				Message:  fmt.Sprintf("cue %d has %d lines, limit %d", cue.ID, len(cue.Lines), opts.MaxLines),
			})
		}
		for j, line := range cue.Lines {
			if n := textutil.RuneLen(line); n > opts.MaxCharsPerLine {
				issues = append(issues, Issue{
					Code:     IssueLineBudget,
					Severity: SeverityWarn,
					CueID:    cue.ID,
					Message:  fmt.Sprintf("cue %d line %d has %d characters, limit %d", cue.ID, j+1, n, opts.MaxCharsPerLine),
					Data:     map[string]any{"line": j + 1},
				})
			}
			if j > 0 && textutil.StartsWithLineStartPunct(line) {
				issues = append(issues, Issue{
					Code:     IssueOrphanPunctuation,
					Severity: SeverityWarn,
					CueID:    cue.ID,
					Message:  fmt.Sprintf("cue %d line %d starts with punctuation", cue.ID, j+1),
					Data:     map[string]any{"line": j + 1},
				})
			}
		}
	}
	return issues
}
