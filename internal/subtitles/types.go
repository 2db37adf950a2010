package subtitles

// Options controls cue segmentation, timing and layout.
type Options struct {
	MaxCharsPerLine   int     `json:"maxCharsPerLine"`
	MaxLines          int     `json:"maxLines"`
	MinCueDurationSec float64 `json:"minCueDurationSec"`
	MaxCueDurationSec float64 `json:"maxCueDurationSec"`
	MaxCPS            float64 `json:"maxCps"`
	MinGapSec         float64 `json:"minGapSec"`
	PauseSplitSec     float64 `json:"pauseSplitSec"`
}

// Default option values.
const (
	DefaultMaxCharsPerLine   = 42
	DefaultMaxLines          = 2
	DefaultMinCueDurationSec = 1.0
	DefaultMaxCueDurationSec = 6.0
	DefaultMaxCPS            = 17.0
	DefaultMinGapSec         = 0.08
	DefaultPauseSplitSec     = 0.65
)

// DefaultOptions returns the standard broadcast-style layout options.
func DefaultOptions() Options {
	return Options{
		MaxCharsPerLine:   DefaultMaxCharsPerLine,
		MaxLines:          DefaultMaxLines,
		MinCueDurationSec: DefaultMinCueDurationSec,
		MaxCueDurationSec: DefaultMaxCueDurationSec,
		MaxCPS:            DefaultMaxCPS,
		MinGapSec:         DefaultMinGapSec,
		PauseSplitSec:     DefaultPauseSplitSec,
	}
}

// Overrides carries a partial Options; nil fields keep the base value.
type Overrides struct {
	MaxCharsPerLine   *int     `json:"maxCharsPerLine,omitempty"`
	MaxLines          *int     `json:"maxLines,omitempty"`
	MinCueDurationSec *float64 `json:"minCueDurationSec,omitempty"`
	MaxCueDurationSec *float64 `json:"maxCueDurationSec,omitempty"`
	MaxCPS            *float64 `json:"maxCps,omitempty"`
	MinGapSec         *float64 `json:"minGapSec,omitempty"`
	PauseSplitSec     *float64 `json:"pauseSplitSec,omitempty"`
}

// Apply merges the set fields of o over base.
func (o Overrides) Apply(base Options) Options {
	if o.MaxCharsPerLine != nil {
		base.MaxCharsPerLine = *o.MaxCharsPerLine
	}
	if o.MaxLines != nil {
		base.MaxLines = *o.MaxLines
	}
	if o.MinCueDurationSec != nil {
		base.MinCueDurationSec = *o.MinCueDurationSec
	}
	if o.MaxCueDurationSec != nil {
		base.MaxCueDurationSec = *o.MaxCueDurationSec
	}
	if o.MaxCPS != nil {
		base.MaxCPS = *o.MaxCPS
	}
	if o.MinGapSec != nil {
		base.MinGapSec = *o.MinGapSec
	}
	if o.PauseSplitSec != nil {
		base.PauseSplitSec = *o.PauseSplitSec
	}
	return base
}

// IsZero reports whether no field is set.
func (o Overrides) IsZero() bool {
	return o == Overrides{}
}

// NormalizedWord is a cleaned recognizer word. End is always greater than Start.
type NormalizedWord struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// SplitReason records why the segmenter closed a draft.
type SplitReason string

const (
	SplitSentenceEnd SplitReason = "sentence_end"
	SplitPause       SplitReason = "pause"
	SplitCharBudget  SplitReason = "char_budget"
	SplitMaxDuration SplitReason = "max_duration"
	SplitEndOfInput  SplitReason = "end_of_input"
	SplitBudgetGuard SplitReason = "budget_guard"
)

// CueDraft is a group of words that becomes exactly one cue.
type CueDraft struct {
	Words  []NormalizedWord
	Start  float64
	End    float64
	Text   string
	Reason SplitReason
}

// Cue is a final subtitle cue. Times are in seconds rounded to milliseconds.
type Cue struct {
	ID    int      `json:"id"`
	Start float64  `json:"start"`
	End   float64  `json:"end"`
	Text  string   `json:"text"`
	Lines []string `json:"lines"`
	CPS   float64  `json:"cps"`
	CPL   int      `json:"cpl"`
}

// Duration returns End minus Start.
func (c Cue) Duration() float64 {
	return c.End - c.Start
}

// Severity grades an Issue.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Issue codes.
const (
	IssueEmptyTranscript     = "empty_transcript"
	IssueSegmentWithoutWords = "segment_without_words"
	IssueNonMonotonicInput   = "non_monotonic_word_input"
	IssueDroppedWords        = "dropped_empty_words"
	IssueCPSOverflow         = "cps_overflow"
	IssueLineOverflow        = "line_overflow"
	IssueInvalidOption       = "invalid_option"
	IssueOverlap             = "overlap"
	IssueNonPositiveDuration = "non_positive_duration"
	IssueLineBudget          = "line_budget"
	IssueOrphanPunctuation   = "orphan_punctuation"
)

// Issue is a quality finding attached to a run or a single cue.
type Issue struct {
	Code     string         `json:"code"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	CueID    int            `json:"cueId,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// Metrics summarizes one run.
type Metrics struct {
	InputSegments     int     `json:"inputSegments"`
	InputWords        int     `json:"inputWords"`
	SynthesizedWords  int     `json:"synthesizedWords"`
	NormalizedWords   int     `json:"normalizedWords"`
	DroppedWords      int     `json:"droppedWords"`
	NonMonotonicWords int     `json:"nonMonotonicWords"`
	PunctuationFixes  int     `json:"punctuationFixes"`
	SplitWordFixes    int     `json:"splitWordFixes"`
	Drafts            int     `json:"drafts"`
	Cues              int     `json:"cues"`
	AvgCPS            float64 `json:"avgCps"`
	MaxObservedCPS    float64 `json:"maxObservedCps"`
	AvgCueDurationSec float64 `json:"avgCueDurationSec"`
	MaxCPL            int     `json:"maxCpl"`
	CPSOverflows      int     `json:"cpsOverflows"`
	LineOverflows     int     `json:"lineOverflows"`
}

// Event levels.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Event is a diagnostic record emitted by a pipeline stage.
type Event struct {
	Stage   string         `json:"stage"`
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Hooks receives pipeline events. OnLog is called synchronously, in order,
// on the goroutine running Generate.
type Hooks struct {
	OnLog func(Event)
}

// DraftSummary describes one segmenter draft for debugging.
type DraftSummary struct {
	Index     int         `json:"index"`
	Start     float64     `json:"start"`
	End       float64     `json:"end"`
	WordCount int         `json:"wordCount"`
	Chars     int         `json:"chars"`
	Reason    SplitReason `json:"reason"`
}

// Debug carries the effective options and the draft breakdown of a run.
type Debug struct {
	Options Options        `json:"options"`
	Drafts  []DraftSummary `json:"drafts"`
}

// Result is the outcome of Generate.
type Result struct {
	Cues    []Cue   `json:"cues"`
	Metrics Metrics `json:"metrics"`
	Issues  []Issue `json:"issues"`
	Debug   Debug   `json:"debug"`
}

// HasErrors reports whether any issue has error severity.
func (r Result) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
