package subtitles

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"cuesmith/internal/textutil"
	"cuesmith/internal/transcript"
)

func TestGenerateFastSpeechRespectsReadingSpeed(t *testing.T) {
	texts := strings.Fields("this is a quick test of the subtitle pipeline with fifteen words spoken very fast")
	if len(texts) != 15 {
		t.Fatalf("fixture has %d words", len(texts))
	}
	tr := transcript.Transcript{Segments: []transcript.Segment{timedSegment(0, 1.0/15, texts...)}}
	overrides := Overrides{
		MaxCharsPerLine:   intPtr(24),
		MaxCPS:            floatPtr(17),
		MinCueDurationSec: floatPtr(1),
		MaxCueDurationSec: floatPtr(6),
	}
	res := Generate(tr, overrides, Hooks{})
	if len(res.Cues) == 0 {
		t.Fatal("expected cues")
	}
	opts := overrides.Apply(DefaultOptions())
	assertCueInvariants(t, res.Cues, opts)
	for _, cue := range res.Cues {
		d := cue.Duration()
		if d < 1.0-1e-6 || d > 6.01 {
			t.Errorf("cue %d duration %.3f outside [1, 6.01]", cue.ID, d)
		}
		if cue.CPS > 17.01 {
			t.Errorf("cue %d cps %.2f above 17.01", cue.ID, cue.CPS)
		}
	}
	if res.Metrics.CPSOverflows != 0 {
		t.Errorf("cpsOverflows = %d, want 0", res.Metrics.CPSOverflows)
	}
}

func TestGenerateSplitAndOverflowRules(t *testing.T) {
	cjk := func(n int) []string {
		src := []rune("本益比通常在十到十五倍之間投資人可以參考這個區間")
		out := make([]string, n)
		for i := range out {
			out[i] = string(src[i%len(src)])
		}
		return out
	}
	repeat := func(word string, n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = word
		}
		return out
	}

	tests := []struct {
		name        string
		segment     transcript.Segment
		overrides   Overrides
		wantReasons []SplitReason
		wantEnds    []float64
		wantCodes   map[string]int
		check       func(t *testing.T, res Result)
	}{
		{
			name:      "fast CJK run overflows reading speed",
			segment:   timedSegment(0, 0.02, cjk(100)...),
			overrides: Overrides{MaxCharsPerLine: intPtr(60), MaxCueDurationSec: floatPtr(2)},
			wantCodes: map[string]int{IssueCPSOverflow: 1},
			check: func(t *testing.T, res Result) {
				if res.Metrics.CPSOverflows != 1 {
					t.Errorf("cpsOverflows = %d, want 1", res.Metrics.CPSOverflows)
				}
				if res.Cues[0].CPS <= DefaultMaxCPS {
					t.Errorf("first cue cps = %.2f, want above %.0f", res.Cues[0].CPS, DefaultMaxCPS)
				}
				if d := res.Cues[0].Duration(); d > 2+1e-6 {
					t.Errorf("first cue duration = %.3f, want <= 2", d)
				}
			},
		},
		{
			name:        "slow unpunctuated speech splits on max duration",
			segment:     timedSegment(0, 0.5, repeat("word", 30)...),
			wantReasons: []SplitReason{SplitMaxDuration, SplitMaxDuration, SplitEndOfInput},
			wantEnds:    []float64{6, 12, 15},
			wantCodes:   map[string]int{IssueCPSOverflow: 0},
		},
		{
			name:        "exact fill splits on char budget",
			segment:     timedSegment(0, 0.1, cjk(15)...),
			overrides:   Overrides{MaxCharsPerLine: intPtr(5), MaxLines: intPtr(2)},
			wantReasons: []SplitReason{SplitCharBudget, SplitEndOfInput},
			check: func(t *testing.T, res Result) {
				if got := res.Debug.Drafts[0].Chars; got != 10 {
					t.Errorf("first draft chars = %d, want 10", got)
				}
				if len(res.Cues[0].Lines) != 2 {
					t.Errorf("first cue lines = %q, want 2 lines", res.Cues[0].Lines)
				}
			},
		},
		{
			name:        "word longer than the budget overflows the lines",
			segment:     timedSegment(0, 1, "supercalifragilisticexpialidocious"),
			overrides:   Overrides{MaxCharsPerLine: intPtr(10), MaxLines: intPtr(2)},
			wantReasons: []SplitReason{SplitCharBudget},
			wantCodes:   map[string]int{IssueLineOverflow: 1},
			check: func(t *testing.T, res Result) {
				if res.Metrics.LineOverflows != 1 {
					t.Errorf("lineOverflows = %d, want 1", res.Metrics.LineOverflows)
				}
				if len(res.Cues) != 1 || len(res.Cues[0].Lines) != 2 {
					t.Fatalf("cues = %+v, want one cue with 2 lines", res.Cues)
				}
				if got := strings.Join(res.Cues[0].Lines, ""); got != "supercalifragilisticexpialidocious" {
					t.Errorf("lines lost text: %q", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := transcript.Transcript{Segments: []transcript.Segment{tt.segment}}
			res := Generate(tr, tt.overrides, Hooks{})
			if len(res.Cues) == 0 {
				t.Fatal("expected cues")
			}
			assertCueInvariants(t, res.Cues, tt.overrides.Apply(DefaultOptions()))

			if tt.wantReasons != nil {
				var got []SplitReason
				for _, d := range res.Debug.Drafts {
					got = append(got, d.Reason)
				}
				if !reflect.DeepEqual(got, tt.wantReasons) {
					t.Fatalf("draft reasons = %v, want %v", got, tt.wantReasons)
				}
			}
			for i, want := range tt.wantEnds {
				if got := res.Debug.Drafts[i].End; math.Abs(got-want) > 1e-9 {
					t.Errorf("draft %d end = %.3f, want %.3f", i, got, want)
				}
			}
			codes := issueCodes(res.Issues)
			for code, want := range tt.wantCodes {
				if codes[code] != want {
					t.Errorf("%s issues = %d, want %d (issues %+v)", code, codes[code], want, res.Issues)
				}
			}
			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func TestGenerateEmptyTranscript(t *testing.T) {
	tr := transcript.Transcript{Segments: []transcript.Segment{{Start: 0, End: 2}}}
	res := Generate(tr, Overrides{}, Hooks{})
	if len(res.Cues) != 0 {
		t.Fatalf("cues = %d, want 0", len(res.Cues))
	}
	var found bool
	for _, issue := range res.Issues {
		if issue.Code == IssueEmptyTranscript {
			found = true
			if issue.Severity != SeverityError {
				t.Errorf("severity = %s, want error", issue.Severity)
			}
		}
	}
	if !found {
		t.Fatalf("missing %s issue: %+v", IssueEmptyTranscript, res.Issues)
	}
	if !res.HasErrors() {
		t.Fatal("HasErrors() = false")
	}
	if res.Metrics.Cues != 0 || res.Metrics.NormalizedWords != 0 || res.Metrics.AvgCPS != 0 {
		t.Errorf("metrics not zeroed: %+v", res.Metrics)
	}
}

func TestGenerateLineBudgetAndPunctuation(t *testing.T) {
	tr := transcript.Transcript{Segments: []transcript.Segment{
		timedSegment(0, 0.2, strings.Fields("Valuation matters , and in most markets a price to earnings ratio between ten and fifteen is considered fair ; however , growth companies often trade well above that range , so context is everything")...),
		timedSegment(8, 0.1, "本", "益", "比", "通", "常", "在", "十", "到", "十", "五", "倍", "之", "間", "，", "投", "資", "人", "可", "以", "參", "考", "這", "個", "區", "間", "。"),
	}}
	overrides := Overrides{MaxCharsPerLine: intPtr(16)}
	res := Generate(tr, overrides, Hooks{})
	opts := overrides.Apply(DefaultOptions())

	assertCueInvariants(t, res.Cues, opts)
	for _, cue := range res.Cues {
		if len(cue.Lines) > opts.MaxLines {
			t.Errorf("cue %d has %d lines", cue.ID, len(cue.Lines))
		}
		for i, line := range cue.Lines {
			if n := textutil.RuneLen(line); n > opts.MaxCharsPerLine {
				t.Errorf("cue %d line %q has %d runes", cue.ID, line, n)
			}
			if i > 0 && textutil.StartsWithLineStartPunct(line) {
				t.Errorf("cue %d line %q starts with punctuation", cue.ID, line)
			}
		}
		if got := JoinLines(cue.Lines); got != cue.Text {
			t.Errorf("cue %d lines rejoin to %q, want %q", cue.ID, got, cue.Text)
		}
	}
	if issues := ValidateCues(res.Cues, opts); len(issues) != 0 {
		t.Errorf("ValidateCues reported %+v", issues)
	}
}

func TestGenerateReconstructsTranscriptText(t *testing.T) {
	tr := transcript.Transcript{Segments: []transcript.Segment{
		timedSegment(0, 0.3, strings.Fields("Good morning everyone . Today we cover three topics : valuation , risk and timing")...),
		timedSegment(6, 0.3, "我", "們", "先", "看", "估", "值", "。"),
	}}
	res := Generate(tr, Overrides{MaxCharsPerLine: intPtr(20)}, Hooks{})

	var cueTexts, wordTexts []string
	for _, cue := range res.Cues {
		cueTexts = append(cueTexts, JoinLines(cue.Lines))
	}
	for _, w := range NormalizeWords(tr) {
		wordTexts = append(wordTexts, w.Text)
	}
	if got, want := JoinWords(cueTexts), JoinWords(wordTexts); got != want {
		t.Fatalf("cue text = %q, want %q", got, want)
	}
}

func TestGenerateEmitsStageEvents(t *testing.T) {
	tr := transcript.Transcript{Segments: []transcript.Segment{timedSegment(0, 0.4, "one", "two", "three.")}}
	var events []Event
	res := Generate(tr, Overrides{}, Hooks{OnLog: func(e Event) { events = append(events, e) }})
	if len(res.Cues) != 1 {
		t.Fatalf("cues = %d, want 1", len(res.Cues))
	}
	stages := make(map[string]bool)
	for _, e := range events {
		stages[e.Stage] = true
	}
	for _, stage := range []string{stagePipeline, stageNormalize, stageSegment, stageLayout} {
		if !stages[stage] {
			t.Errorf("no event for stage %q", stage)
		}
	}
	if events[0].Stage != stagePipeline || events[len(events)-1].Stage != stagePipeline {
		t.Errorf("events not bracketed by pipeline stage: first %q last %q", events[0].Stage, events[len(events)-1].Stage)
	}
	if len(res.Debug.Drafts) != 1 || res.Debug.Drafts[0].Reason != SplitSentenceEnd {
		t.Errorf("debug drafts = %+v", res.Debug.Drafts)
	}
}

func TestGenerateSplitsOnPause(t *testing.T) {
	tr := transcript.Transcript{Segments: []transcript.Segment{
		timedSegment(0, 0.3, "first", "phrase"),
		timedSegment(2, 0.3, "second", "phrase"),
	}}
	res := Generate(tr, Overrides{}, Hooks{})
	if len(res.Cues) != 2 {
		t.Fatalf("cues = %d, want 2", len(res.Cues))
	}
	if res.Debug.Drafts[0].Reason != SplitPause {
		t.Errorf("reason = %s, want pause", res.Debug.Drafts[0].Reason)
	}
	if res.Cues[1].Start != 2 {
		t.Errorf("second cue start = %.3f, want 2", res.Cues[1].Start)
	}
}

func TestGenerateReportsInvalidOptions(t *testing.T) {
	tr := transcript.Transcript{Segments: []transcript.Segment{timedSegment(0, 0.4, "hello", "there")}}
	res := Generate(tr, Overrides{MaxCPS: floatPtr(0), MaxLines: intPtr(-1)}, Hooks{})
	if got := issueCodes(res.Issues)[IssueInvalidOption]; got != 2 {
		t.Fatalf("invalid_option issues = %d, want 2", got)
	}
	if res.Debug.Options.MaxCPS != DefaultMaxCPS || res.Debug.Options.MaxLines != DefaultMaxLines {
		t.Errorf("options not defaulted: %+v", res.Debug.Options)
	}
	if len(res.Cues) != 1 {
		t.Errorf("cues = %d, want 1", len(res.Cues))
	}
}

func TestOverridesApply(t *testing.T) {
	base := DefaultOptions()
	if got := (Overrides{}).Apply(base); got != base {
		t.Fatalf("empty overrides changed options: %+v", got)
	}
	got := Overrides{MaxLines: intPtr(3), PauseSplitSec: floatPtr(1.2)}.Apply(base)
	if got.MaxLines != 3 || got.PauseSplitSec != 1.2 || got.MaxCharsPerLine != DefaultMaxCharsPerLine {
		t.Fatalf("Apply = %+v", got)
	}
}

func TestGenerateWithUsesBaseOptions(t *testing.T) {
	tr := transcript.Transcript{Segments: []transcript.Segment{
		timedSegment(0, 0.3, strings.Fields("one two three four five six seven eight nine ten")...),
	}}
	base := DefaultOptions()
	base.MaxCharsPerLine = 12
	base.MaxLines = 1

	res := GenerateWith(tr, base, Overrides{}, Hooks{})
	if res.Debug.Options.MaxCharsPerLine != 12 || res.Debug.Options.MaxLines != 1 {
		t.Fatalf("base options not applied: %+v", res.Debug.Options)
	}
	assertCueInvariants(t, res.Cues, res.Debug.Options)

	res = GenerateWith(tr, base, Overrides{MaxLines: intPtr(2)}, Hooks{})
	if res.Debug.Options.MaxLines != 2 || res.Debug.Options.MaxCharsPerLine != 12 {
		t.Fatalf("overrides should layer over base: %+v", res.Debug.Options)
	}
}
