package subtitles

import (
	"fmt"
	"math"

	"cuesmith/internal/textutil"
)

const (
	stageLayout = "layout"

	// cpsTolerance absorbs millisecond rounding before a cue counts as too fast.
	cpsTolerance = 0.01
	minCPSWindow = 0.04
)

func layoutCues(drafts []CueDraft, r *run) []Cue {
	opts := r.opts
	cues := make([]Cue, 0, len(drafts))
	prevEnd := 0.0

	var totalCPS, totalDuration float64
	for i, draft := range drafts {
		id := i + 1
		chars := textutil.RuneLen(draft.Text)

		target := math.Max(opts.MinCueDurationSec, float64(chars)/opts.MaxCPS)
		target = math.Min(target, opts.MaxCueDurationSec)

		var start float64
		if i == 0 {
			start = roundMillis(math.Max(0, draft.Start))
		} else {
			start = math.Max(roundMillis(draft.Start), ceilMillis(prevEnd+opts.MinGapSec))
		}
		end := roundMillis(start + target)
		if end <= start {
			end = start + 0.001
		}

		cps := float64(chars) / math.Max(minCPSWindow, end-start)
		if cps > opts.MaxCPS+cpsTolerance {
			r.metrics.CPSOverflows++
			r.issue(IssueCPSOverflow, SeverityWarn, id,
				fmt.Sprintf("cue %d reads at %.2f cps, above %.2f", id, cps, opts.MaxCPS),
				map[string]any{"cps": round2(cps), "maxCps": opts.MaxCPS, "chars": chars})
		}

		lines, overflow := WrapLines(draft.Text, opts.MaxCharsPerLine, opts.MaxLines)
		if overflow {
			r.metrics.LineOverflows++
			r.issue(IssueLineOverflow, SeverityWarn, id,
				fmt.Sprintf("cue %d does not fit in %d lines of %d characters", id, opts.MaxLines, opts.MaxCharsPerLine),
				map[string]any{"chars": chars, "lines": len(lines)})
		}
		cpl := 0
		for _, line := range lines {
			cpl = max(cpl, textutil.RuneLen(line))
		}

		cues = append(cues, Cue{
			ID:    id,
			Start: start,
			End:   end,
			Text:  draft.Text,
			Lines: lines,
			CPS:   round2(cps),
			CPL:   cpl,
		})
		prevEnd = end

		totalCPS += cps
		totalDuration += end - start
		r.metrics.MaxObservedCPS = math.Max(r.metrics.MaxObservedCPS, round2(cps))
		r.metrics.MaxCPL = max(r.metrics.MaxCPL, cpl)
	}

	r.metrics.Cues = len(cues)
	if len(cues) > 0 {
		r.metrics.AvgCPS = round2(totalCPS / float64(len(cues)))
		r.metrics.AvgCueDurationSec = roundMillis(totalDuration / float64(len(cues)))
	}
	level := LevelInfo
	if r.metrics.CPSOverflows > 0 || r.metrics.LineOverflows > 0 {
		level = LevelWarn
	}
	r.log(stageLayout, level, "laid out cues", map[string]any{
		"cues":         r.metrics.Cues,
		"avgCps":       r.metrics.AvgCPS,
		"maxCpl":       r.metrics.MaxCPL,
		"cpsOverflows": r.metrics.CPSOverflows,
		"lineOverflow": r.metrics.LineOverflows,
	})
	return cues
}

func roundMillis(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// ceilMillis rounds up to the next millisecond, ignoring float noise below
// a microsecond.
func ceilMillis(v float64) float64 {
	return math.Ceil(v*1000-1e-6) / 1000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
