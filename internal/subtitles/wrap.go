package subtitles

import (
	"strings"
	"unicode"

	"cuesmith/internal/textutil"
)

// span is a half-open rune range of the text being wrapped.
type span struct {
	start, end int
}

// WrapLines splits text into at most maxLines lines of at most maxChars
// runes. Text that fits stays on one line. Space-delimited text gets the most
// balanced two-line split, CJK text is wrapped at character boundaries, and no
// line after the first starts with closing punctuation when that can be
// avoided. When the text cannot fit, the remainder stays on the last line and
// overflow is true; nothing is dropped.
func WrapLines(text string, maxChars, maxLines int) (lines []string, overflow bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}, false
	}
	if maxChars < 1 {
		maxChars = 1
	}
	if maxLines < 1 {
		maxLines = 1
	}
	if textutil.RuneLen(text) <= maxChars {
		return []string{text}, false
	}

	runes := []rune(text)
	hasSpace := strings.IndexFunc(text, unicode.IsSpace) >= 0

	if hasSpace && maxLines >= 2 {
		if first, second, ok := balancedSplit(text, maxChars); ok {
			return []string{first, second}, false
		}
	}

	spans, _ := fillSpans(runes, maxChars, true)
	if len(spans) > maxLines {
		spans, _ = fillSpans(runes, maxChars, false)
	}
	if len(spans) <= maxLines {
		return renderSpans(runes, spans), false
	}

	kept := spans[:maxLines]
	kept[maxLines-1].end = len(runes)
	return renderSpans(runes, kept), true
}

// fitsCleanly reports whether text wraps into maxLines lines without cutting
// inside a word.
func fitsCleanly(text string, maxChars, maxLines int) bool {
	if textutil.RuneLen(text) <= maxChars {
		return true
	}
	if maxLines >= 2 {
		if _, _, ok := balancedSplit(text, maxChars); ok {
			return true
		}
	}
	spans, forced := fillSpans([]rune(text), maxChars, true)
	return !forced && len(spans) <= maxLines
}

// balancedSplit picks the word boundary minimizing 2*|len1-len2| + max(len1,len2)
// among splits where both lines fit and the second line does not start with
// punctuation.
func balancedSplit(text string, maxChars int) (string, string, bool) {
	words := strings.Fields(text)
	if len(words) < 2 {
		return "", "", false
	}
	best := -1
	bestScore := 0
	for i := 1; i < len(words); i++ {
		first := strings.Join(words[:i], " ")
		second := strings.Join(words[i:], " ")
		l1, l2 := textutil.RuneLen(first), textutil.RuneLen(second)
		if l1 > maxChars || l2 > maxChars {
			continue
		}
		if textutil.StartsWithLineStartPunct(second) {
			continue
		}
		score := 2*abs(l1-l2) + max(l1, l2)
		if best < 0 || score < bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return "", "", false
	}
	return strings.Join(words[:best], " "), strings.Join(words[best:], " "), true
}

// fillSpans fills lines greedily. With natural set, lines end at spaces or
// between two CJK characters where possible; otherwise every line is cut at
// maxChars. forced reports whether any line had to be cut inside a word.
func fillSpans(runes []rune, maxChars int, natural bool) (spans []span, forced bool) {
	n := len(runes)
	start := 0
	for {
		for start < n && unicode.IsSpace(runes[start]) {
			start++
		}
		if start >= n {
			break
		}
		if n-start <= maxChars {
			spans = append(spans, span{start, n})
			break
		}
		limit := start + maxChars
		end := -1
		if natural {
			for k := limit; k > start; k-- {
				if naturalBreak(runes, start, k) {
					end = k
					break
				}
			}
			if end < 0 {
				end = forcedCut(runes, start, limit)
				forced = true
			}
		} else {
			end = limit
			forced = true
		}
		spans = append(spans, span{start, end})
		start = end
	}
	return spans, forced
}

// naturalBreak reports whether a line may end before runes[k].
func naturalBreak(runes []rune, start, k int) bool {
	if unicode.IsSpace(runes[k]) {
		if unicode.IsSpace(runes[k-1]) {
			return false
		}
		next := k
		for next < len(runes) && unicode.IsSpace(runes[next]) {
			next++
		}
		return next < len(runes) && !textutil.IsLineStartPunct(runes[next])
	}
	if unicode.IsSpace(runes[k-1]) {
		return false
	}
	return textutil.IsCJK(runes[k-1]) && textutil.IsCJK(runes[k]) && !textutil.IsLineStartPunct(runes[k])
}

// forcedCut cuts at limit, backing off so the next line does not start with
// punctuation.
func forcedCut(runes []rune, start, limit int) int {
	for k := limit; k > start; k-- {
		if !textutil.IsLineStartPunct(runes[k]) && !unicode.IsSpace(runes[k]) {
			return k
		}
	}
	return limit
}

func renderSpans(runes []rune, spans []span) []string {
	lines := make([]string, 0, len(spans))
	for _, s := range spans {
		line := strings.TrimSpace(string(runes[s.start:s.end]))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
