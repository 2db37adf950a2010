package alignment

import (
	"fmt"
	"strings"
)

// maxListedTokens caps how many unmatched tokens a warning names.
const maxListedTokens = 5

// Align maps script tokens onto recognizer word timings. It never fails:
// problems with the input or the match quality are reported in Warnings.
func Align(req Request, opts Options) Result {
	opts = opts.withDefaults()
	var warnings []string

	tokens := resolveTokens(req, &warnings)
	script, perToken := scriptChars(tokens)
	whisper := whisperChars(req.Words)

	a := make([]rune, len(script))
	for i, c := range script {
		a[i] = c.r
	}
	b := make([]rune, len(whisper))
	for i, c := range whisper {
		b[i] = c.r
	}

	method := MethodLCS
	var match []int
	if lcsFits(len(a), len(b), opts.LCSCellLimit) {
		match = lcsMatch(a, b)
	} else {
		method = MethodGreedy
		match = greedyMatch(a, b, opts.GreedyLookahead)
		warnings = append(warnings, fmt.Sprintf("%s: %d x %d characters exceed the %d cell limit; used greedy matching",
			WarnGreedyFallback, len(a), len(b), opts.LCSCellLimit))
	}

	windows := charTimings(script, match, whisper)

	out := make([]TimedToken, len(tokens))
	matchedPerToken := make([]int, len(tokens))
	firstChar := make([]int, len(tokens))
	lastChar := make([]int, len(tokens))
	for i := range firstChar {
		firstChar[i] = -1
	}
	matched := 0
	for k, c := range script {
		if firstChar[c.token] < 0 {
			firstChar[c.token] = k
		}
		lastChar[c.token] = k
		if match[k] >= 0 {
			matchedPerToken[c.token]++
			matched++
		}
	}

	unmatchedTokens := 0
	var unmatchedNames []string
	for i, text := range tokens {
		tok := TimedToken{
			Text:           text,
			MatchedChars:   matchedPerToken[i],
			TotalCoreChars: perToken[i],
			Confidence:     1,
		}
		if perToken[i] > 0 {
			tok.Start = windows[firstChar[i]].start
			tok.End = windows[lastChar[i]].end
			tok.Confidence = float64(matchedPerToken[i]) / float64(perToken[i])
			if matchedPerToken[i] == 0 {
				unmatchedTokens++
				if len(unmatchedNames) < maxListedTokens {
					unmatchedNames = append(unmatchedNames, fmt.Sprintf("%q", text))
				}
			}
		}
		out[i] = tok
	}

	fallbackStart := 0.0
	if len(whisper) > 0 {
		fallbackStart = whisper[0].start
	}
	timePunctuationTokens(out, fallbackStart)
	monotonicTokens(out)
	for i := range out {
		out[i].Start = roundMillis(out[i].Start)
		out[i].End = roundMillis(out[i].End)
	}

	stats := Stats{
		ScriptTokens:              len(tokens),
		ScriptCoreChars:           len(script),
		WhisperCoreChars:          len(whisper),
		MatchedChars:              matched,
		CoverageRatio:             1,
		UnmatchedCoreScriptTokens: unmatchedTokens,
		UnusedWhisperChars:        len(whisper) - matched,
		Method:                    method,
	}
	if len(script) > 0 {
		stats.CoverageRatio = float64(matched) / float64(len(script))
	}

	if len(tokens) == 0 {
		warnings = append(warnings, WarnEmptyScript+": script has no tokens")
	}
	if stats.CoverageRatio < opts.CoverageWarnThreshold {
		warnings = append(warnings, fmt.Sprintf("%s: %.3f of script characters matched, below %.3f",
			WarnLowCoverage, stats.CoverageRatio, opts.CoverageWarnThreshold))
	}
	if unmatchedTokens > 0 {
		warnings = append(warnings, fmt.Sprintf("%s: %d script tokens have no matching recognizer characters (%s)",
			WarnUnmatchedTokens, unmatchedTokens, strings.Join(unmatchedNames, ", ")))
	}
	if float64(stats.UnusedWhisperChars) > opts.UnusedWhisperWarnRatio*float64(len(script)) {
		warnings = append(warnings, fmt.Sprintf("%s: %d recognizer characters unused against %d script characters",
			WarnUnusedWhisperChars, stats.UnusedWhisperChars, len(script)))
	}
	if warnings == nil {
		warnings = []string{}
	}

	return Result{Tokens: out, Stats: stats, Warnings: warnings}
}

func resolveTokens(req Request, warnings *[]string) []string {
	if len(req.ScriptTokens) > 0 {
		if strings.TrimSpace(req.ScriptText) != "" {
			*warnings = append(*warnings, WarnAmbiguousScriptInput+": both script tokens and script text were given; using tokens")
		}
		tokens := make([]string, 0, len(req.ScriptTokens))
		for _, tok := range req.ScriptTokens {
			if tok = strings.TrimSpace(tok); tok != "" {
				tokens = append(tokens, tok)
			}
		}
		return tokens
	}
	return TokenizeScript(req.ScriptText, req.IsCJK)
}

// WarningCode returns the code prefix of a warning string.
func WarningCode(warning string) string {
	code, _, _ := strings.Cut(warning, ":")
	return strings.TrimSpace(code)
}

// JoinTokens joins aligned token texts the way a script reads: without
// spaces for CJK, with single spaces otherwise.
func JoinTokens(tokens []TimedToken, isCJK bool) string {
	sep := " "
	if isCJK {
		sep = ""
	}
	texts := make([]string, len(tokens))
	for i, t := range tokens {
		texts[i] = t.Text
	}
	return strings.Join(texts, sep)
}
