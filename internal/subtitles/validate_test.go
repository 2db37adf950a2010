package subtitles

import "testing"

func TestValidateCues(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxCharsPerLine = 10
	cues := []Cue{
		{ID: 1, Start: 0, End: 1, Lines: []string{"fine"}},
		{ID: 2, Start: 1.02, End: 2, Lines: []string{"too close"}},
		{ID: 3, Start: 3, End: 3, Lines: []string{"zero"}},
		{ID: 4, Start: 4, End: 5, Lines: []string{"one", "two", "three"}},
		{ID: 5, Start: 6, End: 7, Lines: []string{"this line is long"}},
		{ID: 6, Start: 8, End: 9, Lines: []string{"wait", ", what"}},
	}
	got := issueCodes(ValidateCues(cues, opts))
	want := map[string]int{
		IssueOverlap:             1,
		IssueNonPositiveDuration: 1,
		IssueLineBudget:          2,
		IssueOrphanPunctuation:   1,
	}
	for code, n := range want {
		if got[code] != n {
			t.Errorf("%s issues = %d, want %d (all: %v)", code, got[code], n, got)
		}
	}
}

func TestValidateCuesAcceptsGeneratedGap(t *testing.T) {
	cues := []Cue{
		{ID: 1, Start: 0, End: 1.5, Lines: []string{"a"}},
		{ID: 2, Start: 1.58, End: 3, Lines: []string{"b"}},
	}
	if issues := ValidateCues(cues, DefaultOptions()); len(issues) != 0 {
		t.Fatalf("unexpected issues: %+v", issues)
	}
}
