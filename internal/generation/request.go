package generation

import (
	"fmt"
	"math"
	"strings"

	"github.com/hashicorp/go-multierror"

	"cuesmith/internal/alignment"
	"cuesmith/internal/subtitles"
	"cuesmith/internal/transcript"
)

// Request is one subtitle generation job.
type Request struct {
	Transcript   transcript.Transcript `json:"transcript"`
	ScriptText   string                `json:"scriptText,omitempty"`
	ScriptTokens []string              `json:"scriptTokens,omitempty"`
	// IsCJK forces the script mode; nil means detect from the text.
	IsCJK *bool `json:"isCjk,omitempty"`
	// StrictAlignment overrides the configured strict gate when set.
	StrictAlignment *bool              `json:"strictAlignment,omitempty"`
	Options         subtitles.Overrides `json:"options,omitempty"`
	WebinarID       string              `json:"webinarId,omitempty"`
	Persist         bool                `json:"persist,omitempty"`
}

// HasScript reports whether the request carries a script to align.
func (r Request) HasScript() bool {
	if strings.TrimSpace(r.ScriptText) != "" {
		return true
	}
	for _, tok := range r.ScriptTokens {
		if strings.TrimSpace(tok) != "" {
			return true
		}
	}
	return false
}

// Response is returned for accepted and rejected requests alike. Alignment is
// set whenever a script was aligned.
type Response struct {
	RunID     string             `json:"runId"`
	IsCJK     bool               `json:"isCjk"`
	Strict    bool               `json:"strict"`
	Alignment *alignment.Result  `json:"alignment,omitempty"`
	Cues      []subtitles.Cue    `json:"cues"`
	Metrics   *subtitles.Metrics `json:"metrics,omitempty"`
	Issues    []subtitles.Issue  `json:"issues"`
	Persisted bool               `json:"persisted"`
}

// Validate reports every problem with the request at once. base is the
// option set overrides are layered on.
func (r Request) Validate(base subtitles.Options) error {
	var result *multierror.Error

	for i, seg := range r.Transcript.Segments {
		if !finite(seg.Start) || !finite(seg.End) {
			result = multierror.Append(result, fmt.Errorf("transcript.segments[%d]: start and end must be finite", i))
		}
		for j, w := range seg.Words {
			if !finite(w.Start) || !finite(w.End) {
				result = multierror.Append(result, fmt.Errorf("transcript.segments[%d].words[%d]: start and end must be finite", i, j))
			}
		}
	}

	o := r.Options
	if o.MaxCharsPerLine != nil && *o.MaxCharsPerLine < 1 {
		result = multierror.Append(result, fmt.Errorf("options.maxCharsPerLine must be at least 1"))
	}
	if o.MaxLines != nil && *o.MaxLines < 1 {
		result = multierror.Append(result, fmt.Errorf("options.maxLines must be at least 1"))
	}
	positives := []struct {
		name  string
		value *float64
	}{
		{"minCueDurationSec", o.MinCueDurationSec},
		{"maxCueDurationSec", o.MaxCueDurationSec},
		{"maxCps", o.MaxCPS},
		{"pauseSplitSec", o.PauseSplitSec},
	}
	for _, p := range positives {
		if p.value != nil && !(finite(*p.value) && *p.value > 0) {
			result = multierror.Append(result, fmt.Errorf("options.%s must be positive", p.name))
		}
	}
	if o.MinGapSec != nil && !(finite(*o.MinGapSec) && *o.MinGapSec >= 0) {
		result = multierror.Append(result, fmt.Errorf("options.minGapSec must not be negative"))
	}
	merged := o.Apply(base)
	if merged.MinCueDurationSec > merged.MaxCueDurationSec {
		result = multierror.Append(result, fmt.Errorf("options.minCueDurationSec (%v) exceeds maxCueDurationSec (%v)",
			merged.MinCueDurationSec, merged.MaxCueDurationSec))
	}

	if r.Persist && strings.TrimSpace(r.WebinarID) == "" {
		result = multierror.Append(result, fmt.Errorf("persist requires webinarId"))
	}

	return result.ErrorOrNil()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
