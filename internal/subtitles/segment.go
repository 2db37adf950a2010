package subtitles

import (
	"cuesmith/internal/textutil"
)

const stageSegment = "segment"

// SegmentWords groups normalized words into cue drafts using opts.
func SegmentWords(words []NormalizedWord, opts Options) []CueDraft {
	opts, _ = opts.sanitize()
	return segmentWords(words, newRun(opts, Hooks{}))
}

func segmentWords(words []NormalizedWord, r *run) []CueDraft {
	opts := r.opts
	budget := opts.CharBudget()

	var (
		drafts  []CueDraft
		bucket  []NormalizedWord
		joined  string
		reasons = map[SplitReason]int{}
	)
	flush := func(reason SplitReason) {
		if len(bucket) == 0 {
			return
		}
		draft := CueDraft{
			Words:  bucket,
			Start:  bucket[0].Start,
			End:    bucket[len(bucket)-1].End,
			Text:   joined,
			Reason: reason,
		}
		for _, w := range bucket {
			if w.End > draft.End {
				draft.End = w.End
			}
		}
		drafts = append(drafts, draft)
		reasons[reason]++
		r.debug.Drafts = append(r.debug.Drafts, DraftSummary{
			Index:     len(drafts) - 1,
			Start:     draft.Start,
			End:       draft.End,
			WordCount: len(bucket),
			Chars:     textutil.RuneLen(joined),
			Reason:    reason,
		})
		bucket = nil
		joined = ""
	}

	for i, w := range words {
		// Flush before appending when the word would not fit, so no draft
		// ever exceeds the line budget; the char_budget split below only
		// fires on an exact fill.
		if len(bucket) > 0 {
			candidate := joined + separator(bucket[len(bucket)-1].Text, w.Text) + w.Text
			if textutil.RuneLen(candidate) > budget || !fitsCleanly(candidate, opts.MaxCharsPerLine, opts.MaxLines) {
				flush(SplitBudgetGuard)
			}
		}
		if len(bucket) == 0 {
			joined = w.Text
		} else {
			joined += separator(bucket[len(bucket)-1].Text, w.Text) + w.Text
		}
		bucket = append(bucket, w)

		switch {
		case textutil.EndsSentence(w.Text):
			flush(SplitSentenceEnd)
		case i+1 < len(words) && words[i+1].Start-w.End >= opts.PauseSplitSec:
			flush(SplitPause)
		case textutil.RuneLen(joined) >= budget:
			flush(SplitCharBudget)
		case w.End-bucket[0].Start >= opts.MaxCueDurationSec:
			flush(SplitMaxDuration)
		}
	}
	flush(SplitEndOfInput)

	r.metrics.Drafts = len(drafts)
	data := map[string]any{"drafts": len(drafts)}
	for reason, count := range reasons {
		data[string(reason)] = count
	}
	r.log(stageSegment, LevelInfo, "segmented cue drafts", data)
	return drafts
}
