package subtitles

// run accumulates metrics, issues and debug data for one Generate call.
type run struct {
	opts    Options
	hooks   Hooks
	metrics Metrics
	issues  []Issue
	debug   Debug
}

func newRun(opts Options, hooks Hooks) *run {
	return &run{
		opts:  opts,
		hooks: hooks,
		debug: Debug{Options: opts},
	}
}

func (r *run) issue(code string, severity Severity, cueID int, message string, data map[string]any) {
	r.issues = append(r.issues, Issue{
		Code:     code,
		Severity: severity,
		Message:  message,
		CueID:    cueID,
		Data:     data,
	})
}

func (r *run) log(stage, level, message string, data map[string]any) {
	if r.hooks.OnLog == nil {
		return
	}
	r.hooks.OnLog(Event{Stage: stage, Level: level, Message: message, Data: data})
}

func (r *run) result(cues []Cue) Result {
	if cues == nil {
		cues = []Cue{}
	}
	issues := r.issues
	if issues == nil {
		issues = []Issue{}
	}
	if r.debug.Drafts == nil {
		r.debug.Drafts = []DraftSummary{}
	}
	return Result{Cues: cues, Metrics: r.metrics, Issues: issues, Debug: r.debug}
}
