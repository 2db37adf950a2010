package alignment

import (
	"unicode"

	"cuesmith/internal/textutil"
)

// TokenizeScript splits script text into alignment tokens after NFKC
// normalization. Whitespace separates tokens. Runs of word characters
// (ASCII letters and digits, '/', letters of non-CJK scripts and in-word
// apostrophes) form one token, so "P/E", "10" and "don't" stay whole. In CJK
// mode each CJK character is its own token and absorbs any punctuation that
// immediately follows it. Every other character is a token by itself.
func TokenizeScript(text string, isCJK bool) []string {
	runes := []rune(textutil.NFKC(text))
	var (
		tokens []string
		word   []rune
	)
	flush := func() {
		if len(word) > 0 {
			tokens = append(tokens, string(word))
			word = word[:0]
		}
	}
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			flush()
		case isWordRune(r):
			word = append(word, r)
		case isApostrophe(r) && len(word) > 0 && i+1 < len(runes) && isWordRune(runes[i+1]) && unicode.IsLetter(runes[i+1]):
			word = append(word, r)
		case isCJK && textutil.IsCJKLetter(r):
			flush()
			tok := []rune{r}
			for i+1 < len(runes) && textutil.IsPunctOnly(string(runes[i+1])) {
				i++
				tok = append(tok, runes[i])
			}
			tokens = append(tokens, string(tok))
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()
	return tokens
}

func isWordRune(r rune) bool {
	if r < 0x80 {
		return r == '/' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
	}
	if textutil.IsCJK(r) {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}
