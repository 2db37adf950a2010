package alignment

import "cuesmith/internal/transcript"

// Default tuning values.
const (
	// DefaultLCSCellLimit bounds the n*m dynamic-programming table.
	DefaultLCSCellLimit = 6_000_000
	// DefaultGreedyLookahead is how far the greedy matcher searches ahead
	// on either side after a mismatch.
	DefaultGreedyLookahead = 12
	// DefaultUnusedWhisperWarnRatio is the share of script characters that
	// unused recognizer characters may reach before a warning.
	DefaultUnusedWhisperWarnRatio = 0.1
	// DefaultCoverageWarnThreshold is the coverage below which a warning is
	// recorded.
	DefaultCoverageWarnThreshold = 0.98
)

// Options tunes Align. Zero fields take their defaults.
type Options struct {
	LCSCellLimit           int     `json:"lcsCellLimit"`
	GreedyLookahead        int     `json:"greedyLookahead"`
	UnusedWhisperWarnRatio float64 `json:"unusedWhisperWarnRatio"`
	CoverageWarnThreshold  float64 `json:"coverageWarnThreshold"`
}

// DefaultOptions returns the standard alignment options.
func DefaultOptions() Options {
	return Options{
		LCSCellLimit:           DefaultLCSCellLimit,
		GreedyLookahead:        DefaultGreedyLookahead,
		UnusedWhisperWarnRatio: DefaultUnusedWhisperWarnRatio,
		CoverageWarnThreshold:  DefaultCoverageWarnThreshold,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.LCSCellLimit <= 0 {
		o.LCSCellLimit = def.LCSCellLimit
	}
	if o.GreedyLookahead <= 0 {
		o.GreedyLookahead = def.GreedyLookahead
	}
	if o.UnusedWhisperWarnRatio <= 0 {
		o.UnusedWhisperWarnRatio = def.UnusedWhisperWarnRatio
	}
	if o.CoverageWarnThreshold <= 0 {
		o.CoverageWarnThreshold = def.CoverageWarnThreshold
	}
	return o
}

// Request is the input to Align. ScriptTokens take precedence over
// ScriptText when both are set.
type Request struct {
	ScriptTokens []string          `json:"scriptTokens,omitempty"`
	ScriptText   string            `json:"scriptText,omitempty"`
	Words        []transcript.Word `json:"words"`
	IsCJK        bool              `json:"isCjk"`
}

// TimedToken is a script token with timing borrowed from the recognizer.
type TimedToken struct {
	Text           string  `json:"text"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	Confidence     float64 `json:"confidence"`
	MatchedChars   int     `json:"matchedChars"`
	TotalCoreChars int     `json:"totalCoreChars"`
}

// Method names the matcher that produced an alignment.
type Method string

const (
	MethodLCS    Method = "lcs"
	MethodGreedy Method = "greedy"
)

// Stats summarizes an alignment.
type Stats struct {
	ScriptTokens              int     `json:"scriptTokens"`
	ScriptCoreChars           int     `json:"scriptCoreChars"`
	WhisperCoreChars          int     `json:"whisperCoreChars"`
	MatchedChars              int     `json:"matchedChars"`
	CoverageRatio             float64 `json:"coverageRatio"`
	UnmatchedCoreScriptTokens int     `json:"unmatchedCoreScriptTokens"`
	UnusedWhisperChars        int     `json:"unusedWhisperChars"`
	Method                    Method  `json:"method"`
}

// Result is the outcome of Align. Warnings are "code: detail" strings.
type Result struct {
	Tokens   []TimedToken `json:"tokens"`
	Stats    Stats        `json:"stats"`
	Warnings []string     `json:"warnings"`
}

// Warning codes, used as the prefix of Result.Warnings entries.
const (
	WarnAmbiguousScriptInput = "ambiguous_script_input"
	WarnEmptyScript          = "empty_script"
	WarnLowCoverage          = "low_coverage"
	WarnUnmatchedTokens      = "unmatched_tokens"
	WarnUnusedWhisperChars   = "unused_whisper_chars"
	WarnGreedyFallback       = "greedy_fallback"
)
