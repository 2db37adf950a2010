package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// lineStartPunct holds punctuation that reads wrong at the start of a line.
// A token beginning with one of these attaches to the previous token.
var lineStartPunct = map[rune]struct{}{
	',': {}, '.': {}, ';': {}, ':': {}, '!': {}, '?': {},
	'。': {}, '，': {}, '！': {}, '？': {}, '、': {}, '…': {}, // 。，！？、…
	'；': {}, '：': {}, // ；：
	')': {}, ']': {}, '}': {},
	'）': {}, '」': {}, '』': {}, '》': {}, '〉': {}, '】': {}, // ）」』》〉】
	'”': {}, '’': {}, // ”’
}

// sentenceEnd holds runes that close a sentence.
var sentenceEnd = map[rune]struct{}{
	'.': {}, '!': {}, '?': {},
	'。': {}, '！': {}, '？': {}, // 。！？
}

// closers may trail a sentence terminator without hiding it ("Stop!" ).
var closers = map[rune]struct{}{
	'"': {}, '\'': {}, ')': {}, '”': {}, '’': {}, '）': {}, '」': {}, '』': {},
}

// IsCJKLetter reports whether r is a Han ideograph, kana, or Hangul syllable.
func IsCJKLetter(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r) ||
		r == 'ー' // ー
}

// IsCJKPunct reports whether r is CJK or fullwidth punctuation.
func IsCJKPunct(r rune) bool {
	if r >= 0x3000 && r <= 0x303f {
		return true
	}
	if r >= 0xff00 && r <= 0xff65 {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}
	return false
}

// IsCJK reports whether r belongs to CJK text, letters or punctuation.
func IsCJK(r rune) bool {
	return IsCJKLetter(r) || IsCJKPunct(r)
}

// IsCore reports whether r takes part in alignment comparison.
func IsCore(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsLineStartPunct reports whether r must not open a subtitle line.
func IsLineStartPunct(r rune) bool {
	_, ok := lineStartPunct[r]
	return ok
}

// StartsWithLineStartPunct reports whether the first rune of s is line-start punctuation.
func StartsWithLineStartPunct(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && IsLineStartPunct(r)
}

// IsPunctOnly reports whether s is non-empty and made only of punctuation that
// attaches to the preceding word: line-start punctuation and closing brackets
// or quotes. Symbols such as '&' and the ambiguous ASCII '"' stay separate.
func IsPunctOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if IsLineStartPunct(r) || unicode.In(r, unicode.Pe, unicode.Pf) {
			continue
		}
		return false
	}
	return true
}

// EndsSentence reports whether s ends with a sentence terminator, ignoring
// trailing closing quotes and brackets.
func EndsSentence(s string) bool {
	s = strings.TrimSpace(s)
	for s != "" {
		r, size := utf8.DecodeLastRuneInString(s)
		if _, ok := closers[r]; ok {
			s = s[:len(s)-size]
			continue
		}
		_, ok := sentenceEnd[r]
		return ok
	}
	return false
}

// FirstRune returns the first rune of s, or utf8.RuneError when s is empty.
func FirstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// LastRune returns the last rune of s, or utf8.RuneError when s is empty.
func LastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

// ContainsCJK reports whether any rune of s is a CJK letter.
func ContainsCJK(s string) bool {
	for _, r := range s {
		if IsCJKLetter(r) {
			return true
		}
	}
	return false
}

// CJKRatio returns the share of CJK letters among the letters of s.
func CJKRatio(s string) float64 {
	var letters, cjk int
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if IsCJKLetter(r) {
			cjk++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(cjk) / float64(letters)
}

// RuneLen counts the runes in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
