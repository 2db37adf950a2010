package subtitles

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"cuesmith/internal/textutil"
	"cuesmith/internal/transcript"
)

const (
	minWordSpanSec = 0.04
	stageNormalize = "normalize"
)

var contractionSuffixes = map[string]struct{}{
	"'t": {}, "'s": {}, "'re": {}, "'ve": {}, "'ll": {}, "'d": {}, "'m": {}, "n't": {},
}

// NormalizeWords flattens a transcript into cleaned words without running
// the rest of the pipeline.
func NormalizeWords(tr transcript.Transcript) []NormalizedWord {
	return normalizeWords(tr, newRun(DefaultOptions(), Hooks{}))
}

func normalizeWords(tr transcript.Transcript, r *run) []NormalizedWord {
	r.metrics.InputSegments = len(tr.Segments)

	var raw []NormalizedWord
	for i, seg := range tr.Segments {
		if len(seg.Words) == 0 {
			synth := synthesizeWords(seg)
			if len(synth) > 0 {
				r.metrics.SynthesizedWords += len(synth)
				r.issue(IssueSegmentWithoutWords, SeverityWarn, 0,
					fmt.Sprintf("segment %d has no word timings; synthesized %d words", i, len(synth)),
					map[string]any{"segment": i, "words": len(synth)})
				r.log(stageNormalize, LevelWarn, "segment without word timings", map[string]any{"segment": i, "synthesized": len(synth)})
			}
			raw = append(raw, synth...)
			continue
		}
		r.metrics.InputWords += len(seg.Words)
		for _, w := range seg.Words {
			raw = append(raw, NormalizedWord{Text: w.Word, Start: w.Start, End: w.End})
		}
	}

	words := make([]NormalizedWord, 0, len(raw))
	for _, w := range raw {
		w.Text = strings.TrimSpace(w.Text)
		if w.Text == "" {
			r.metrics.DroppedWords++
			continue
		}
		w.Start, w.End = sanitizeSpan(w.Start, w.End)
		words = append(words, w)
	}
	if r.metrics.DroppedWords > 0 {
		r.issue(IssueDroppedWords, SeverityInfo, 0,
			fmt.Sprintf("dropped %d empty words", r.metrics.DroppedWords),
			map[string]any{"count": r.metrics.DroppedWords})
	}

	if outOfOrder := countOutOfOrder(words); outOfOrder > 0 {
		r.metrics.NonMonotonicWords = outOfOrder
		sort.SliceStable(words, func(i, j int) bool {
			return wordBefore(words[i], words[j])
		})
		r.issue(IssueNonMonotonicInput, SeverityWarn, 0,
			fmt.Sprintf("%d words were out of order and have been sorted", outOfOrder),
			map[string]any{"count": outOfOrder})
		r.log(stageNormalize, LevelWarn, "sorted non-monotonic words", map[string]any{"count": outOfOrder})
	}

	merged := mergeFragments(words, &r.metrics)
	r.metrics.NormalizedWords = len(merged)
	r.log(stageNormalize, LevelInfo, "normalized words", map[string]any{
		"segments":         r.metrics.InputSegments,
		"inputWords":       r.metrics.InputWords,
		"synthesizedWords": r.metrics.SynthesizedWords,
		"normalizedWords":  r.metrics.NormalizedWords,
		"droppedWords":     r.metrics.DroppedWords,
		"punctuationFixes": r.metrics.PunctuationFixes,
		"splitWordFixes":   r.metrics.SplitWordFixes,
	})
	return merged
}

func sanitizeSpan(start, end float64) (float64, float64) {
	if math.IsNaN(start) || math.IsInf(start, 0) {
		start = 0
	}
	if math.IsNaN(end) || math.IsInf(end, 0) {
		end = start
	}
	start = math.Max(0, start)
	end = math.Max(start+minWordSpanSec, end)
	return start, end
}

// wordBefore orders words by start, then end.
func wordBefore(a, b NormalizedWord) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return a.End < b.End
}

func countOutOfOrder(words []NormalizedWord) int {
	count := 0
	for i := 1; i < len(words); i++ {
		if wordBefore(words[i], words[i-1]) {
			count++
		}
	}
	return count
}

// mergeFragments folds stray punctuation, contraction suffixes and hyphen
// splits into the preceding word. A merge extends the end time, never the start.
func mergeFragments(words []NormalizedWord, m *Metrics) []NormalizedWord {
	out := make([]NormalizedWord, 0, len(words))
	joinNext := false
	for _, w := range words {
		if len(out) == 0 {
			out = append(out, w)
			continue
		}
		prev := &out[len(out)-1]
		switch {
		case joinNext:
			joinNext = false
		case w.Text == "-" && endsWithWordRune(prev.Text):
			joinNext = true
			m.SplitWordFixes++
		case textutil.IsPunctOnly(w.Text):
			m.PunctuationFixes++
		case isContractionSuffix(w.Text):
			m.SplitWordFixes++
		case continuesHyphenated(prev.Text, w.Text):
			m.SplitWordFixes++
		default:
			out = append(out, w)
			continue
		}
		prev.Text += w.Text
		prev.End = math.Max(prev.End, w.End)
	}
	return out
}

func isContractionSuffix(text string) bool {
	folded := strings.ToLower(strings.ReplaceAll(text, "’", "'"))
	_, ok := contractionSuffixes[folded]
	return ok
}

// continuesHyphenated matches "well-" + "known" and "evidence" + "-based".
func continuesHyphenated(prev, cur string) bool {
	if strings.HasSuffix(prev, "-") && len(prev) > 1 {
		return endsWithWordRune(strings.TrimSuffix(prev, "-")) && startsWithLetter(cur)
	}
	if strings.HasPrefix(cur, "-") && len(cur) > 1 {
		return endsWithWordRune(prev) && startsWithLetter(strings.TrimPrefix(cur, "-"))
	}
	return false
}

func endsWithWordRune(s string) bool {
	r := textutil.LastRune(s)
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func startsWithLetter(s string) bool {
	return unicode.IsLetter(textutil.FirstRune(s))
}

// synthesizeWords spreads pseudo-words evenly over a segment that carries no
// word timings. CJK characters become one word each; other text splits on
// whitespace.
func synthesizeWords(seg transcript.Segment) []NormalizedWord {
	pieces := splitSegmentText(seg.Text)
	if len(pieces) == 0 {
		return nil
	}
	start, end := sanitizeSpan(seg.Start, seg.End)
	if minEnd := start + minWordSpanSec*float64(len(pieces)); end < minEnd {
		end = minEnd
	}
	step := (end - start) / float64(len(pieces))
	out := make([]NormalizedWord, len(pieces))
	for i, piece := range pieces {
		out[i] = NormalizedWord{
			Text:  piece,
			Start: start + float64(i)*step,
			End:   start + float64(i+1)*step,
		}
	}
	return out
}

func splitSegmentText(text string) []string {
	var pieces []string
	for _, field := range strings.Fields(text) {
		if !textutil.ContainsCJK(field) {
			pieces = append(pieces, field)
			continue
		}
		var run []rune
		for _, r := range field {
			if textutil.IsCJK(r) {
				if len(run) > 0 {
					pieces = append(pieces, string(run))
					run = run[:0]
				}
				pieces = append(pieces, string(r))
				continue
			}
			run = append(run, r)
		}
		if len(run) > 0 {
			pieces = append(pieces, string(run))
		}
	}
	return pieces
}
