package alignment

import (
	"math"

	"cuesmith/internal/textutil"
	"cuesmith/internal/transcript"
)

// scriptChar is a comparable script character and the token it came from.
type scriptChar struct {
	r     rune
	token int
}

// whisperChar is a comparable recognizer character with its estimated
// window inside the word it came from.
type whisperChar struct {
	r          rune
	start, end float64
}

func scriptChars(tokens []string) ([]scriptChar, []int) {
	var chars []scriptChar
	perToken := make([]int, len(tokens))
	for i, tok := range tokens {
		for _, r := range textutil.CoreRunes(tok) {
			chars = append(chars, scriptChar{r: r, token: i})
			perToken[i]++
		}
	}
	return chars, perToken
}

// whisperChars spreads every word's span evenly across its core characters.
func whisperChars(words []transcript.Word) []whisperChar {
	var chars []whisperChar
	for _, w := range words {
		core := textutil.CoreRunes(w.Word)
		if len(core) == 0 {
			continue
		}
		start, end := finite(w.Start), finite(w.End)
		start = math.Max(0, start)
		end = math.Max(start, end)
		step := (end - start) / float64(len(core))
		for j, r := range core {
			chars = append(chars, whisperChar{
				r:     r,
				start: start + float64(j)*step,
				end:   start + float64(j+1)*step,
			})
		}
	}
	return chars
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
