package subtitles

import (
	"strings"

	"cuesmith/internal/textutil"
)

// JoinWords joins word texts for display. Adjacent CJK characters take no
// space, punctuation attaches to the word before it, and everything else is
// separated by one space. The result is trimmed.
func JoinWords(words []string) string {
	var b strings.Builder
	prev := ""
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if prev != "" {
			b.WriteString(separator(prev, w))
		}
		b.WriteString(w)
		prev = w
	}
	return b.String()
}

// JoinLines re-joins wrapped lines with the same rule JoinWords uses.
func JoinLines(lines []string) string {
	return JoinWords(lines)
}

func separator(prev, cur string) string {
	if textutil.IsPunctOnly(cur) || textutil.StartsWithLineStartPunct(cur) {
		return ""
	}
	if textutil.IsCJK(textutil.LastRune(prev)) && textutil.IsCJK(textutil.FirstRune(cur)) {
		return ""
	}
	return " "
}

func wordTexts(words []NormalizedWord) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Text
	}
	return out
}
