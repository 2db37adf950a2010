package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"cuesmith/internal/alignment"
	"cuesmith/internal/subtitles"
)

const (
	formatJSON  = "json"
	formatSRT   = "srt"
	formatVTT   = "vtt"
	formatTable = "table"
)

func parseFormat(value string, allowed ...string) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range allowed {
		if value == candidate {
			return value, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q (expected one of %s)", value, strings.Join(allowed, ", "))
}

// formatClock renders seconds as HH:MM:SS.mmm.
func formatClock(sec float64) string {
	if math.IsNaN(sec) || sec < 0 {
		sec = 0
	}
	ms := int64(math.Round(sec * 1000))
	h := ms / 3_600_000
	m := (ms / 60_000) % 60
	s := (ms / 1000) % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms%1000)
}

func formatFloat(v float64, digits int) string {
	return strconv.FormatFloat(v, 'f', digits, 64)
}

func renderCueTable(out io.Writer, cues []subtitles.Cue) error {
	rows := make([][]string, 0, len(cues))
	for _, cue := range cues {
		rows = append(rows, []string{
			strconv.Itoa(cue.ID),
			formatClock(cue.Start),
			formatClock(cue.End),
			formatFloat(cue.CPS, 1),
			strings.Join(cue.Lines, " / "),
		})
	}
	return renderTable(out, []column{right("#"), left("Start"), left("End"), right("CPS"), left("Text")}, rows)
}

func renderIssueTable(out io.Writer, issues []subtitles.Issue) error {
	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		cue := ""
		if issue.CueID > 0 {
			cue = strconv.Itoa(issue.CueID)
		}
		rows = append(rows, []string{string(issue.Severity), issue.Code, cue, issue.Message})
	}
	return renderTable(out, []column{left("Severity"), left("Code"), right("Cue"), left("Message")}, rows)
}

func renderMetrics(out io.Writer, m subtitles.Metrics) {
	fmt.Fprintf(out, "Cues: %d (from %d drafts, %d words)\n", m.Cues, m.Drafts, m.NormalizedWords)
	fmt.Fprintf(out, "Reading speed: avg %s cps, max %s cps, %d over limit\n",
		formatFloat(m.AvgCPS, 1), formatFloat(m.MaxObservedCPS, 1), m.CPSOverflows)
	if m.LineOverflows > 0 {
		fmt.Fprintf(out, "Line overflows: %d\n", m.LineOverflows)
	}
}

func renderAlignmentSummary(out io.Writer, result alignment.Result) {
	s := result.Stats
	fmt.Fprintf(out, "Alignment: %s, coverage %s%% (%d/%d chars), %d unmatched tokens, %d unused recognizer chars\n",
		s.Method, formatFloat(s.CoverageRatio*100, 1), s.MatchedChars, s.ScriptCoreChars,
		s.UnmatchedCoreScriptTokens, s.UnusedWhisperChars)
	for _, warning := range result.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", warning)
	}
}

func renderTokenTable(out io.Writer, tokens []alignment.TimedToken) error {
	rows := make([][]string, 0, len(tokens))
	for i, tok := range tokens {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			tok.Text,
			formatClock(tok.Start),
			formatClock(tok.End),
			formatFloat(tok.Confidence, 2),
			fmt.Sprintf("%d/%d", tok.MatchedChars, tok.TotalCoreChars),
		})
	}
	return renderTable(out, []column{right("#"), left("Token"), left("Start"), left("End"), right("Conf"), right("Chars")}, rows)
}

// writeCues renders cues in one of the export formats.
func writeCues(out io.Writer, format string, cues []subtitles.Cue) error {
	switch format {
	case formatSRT:
		return subtitles.WriteSRT(out, cues)
	case formatVTT:
		return subtitles.WriteVTT(out, cues)
	case formatTable:
		return renderCueTable(out, cues)
	default:
		return fmt.Errorf("unsupported cue format %q", format)
	}
}
