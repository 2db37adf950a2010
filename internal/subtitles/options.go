package subtitles

import "math"

// sanitize replaces unusable values with defaults. It returns the names of
// the fields it changed.
func (o Options) sanitize() (Options, []string) {
	def := DefaultOptions()
	var changed []string
	if o.MaxCharsPerLine < 1 {
		o.MaxCharsPerLine = def.MaxCharsPerLine
		changed = append(changed, "maxCharsPerLine")
	}
	if o.MaxLines < 1 {
		o.MaxLines = def.MaxLines
		changed = append(changed, "maxLines")
	}
	if !positive(o.MinCueDurationSec) {
		o.MinCueDurationSec = def.MinCueDurationSec
		changed = append(changed, "minCueDurationSec")
	}
	if !positive(o.MaxCueDurationSec) {
		o.MaxCueDurationSec = def.MaxCueDurationSec
		changed = append(changed, "maxCueDurationSec")
	}
	if o.MinCueDurationSec > o.MaxCueDurationSec {
		o.MaxCueDurationSec = o.MinCueDurationSec
		changed = append(changed, "maxCueDurationSec")
	}
	if !positive(o.MaxCPS) {
		o.MaxCPS = def.MaxCPS
		changed = append(changed, "maxCps")
	}
	if math.IsNaN(o.MinGapSec) || math.IsInf(o.MinGapSec, 0) || o.MinGapSec < 0 {
		o.MinGapSec = def.MinGapSec
		changed = append(changed, "minGapSec")
	}
	if !positive(o.PauseSplitSec) {
		o.PauseSplitSec = def.PauseSplitSec
		changed = append(changed, "pauseSplitSec")
	}
	return o, changed
}

// CharBudget is the most characters a cue may hold.
func (o Options) CharBudget() int {
	return o.MaxCharsPerLine * o.MaxLines
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
