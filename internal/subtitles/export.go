package subtitles

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/asticode/go-astisub"
)

// ToAstisub converts cues into an astisub document for export.
func ToAstisub(cues []Cue) *astisub.Subtitles {
	subs := astisub.NewSubtitles()
	for _, cue := range cues {
		item := &astisub.Item{
			StartAt: seconds(cue.Start),
			EndAt:   seconds(cue.End),
		}
		lines := cue.Lines
		if len(lines) == 0 && cue.Text != "" {
			lines = []string{cue.Text}
		}
		for _, line := range lines {
			item.Lines = append(item.Lines, astisub.Line{Items: []astisub.LineItem{{Text: line}}})
		}
		subs.Items = append(subs.Items, item)
	}
	return subs
}

// WriteSRT writes cues as SubRip. No cues produce no output.
func WriteSRT(w io.Writer, cues []Cue) error {
	if len(cues) == 0 {
		return nil
	}
	if err := ToAstisub(cues).WriteToSRT(w); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

// WriteVTT writes cues as WebVTT. No cues produce a bare header.
func WriteVTT(w io.Writer, cues []Cue) error {
	if len(cues) == 0 {
		_, err := io.WriteString(w, "WEBVTT\n")
		return err
	}
	if err := ToAstisub(cues).WriteToWebVTT(w); err != nil {
		return fmt.Errorf("write webvtt: %w", err)
	}
	return nil
}

// ReadSRT parses a SubRip document back into cues so existing files can be
// checked with ValidateCues. CPS and CPL are recomputed from the text.
func ReadSRT(r io.Reader) ([]Cue, error) {
	subs, err := astisub.ReadFromSRT(r)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	cues := make([]Cue, 0, len(subs.Items))
	for i, item := range subs.Items {
		lines := make([]string, 0, len(item.Lines))
		for _, line := range item.Lines {
			if text := strings.TrimSpace(line.String()); text != "" {
				lines = append(lines, text)
			}
		}
		cue := Cue{
			ID:    i + 1,
			Start: item.StartAt.Seconds(),
			End:   item.EndAt.Seconds(),
			Text:  JoinLines(lines),
			Lines: lines,
		}
		cue.CPS = round2(float64(len([]rune(cue.Text))) / max(minCPSWindow, cue.End-cue.Start))
		for _, line := range lines {
			cue.CPL = max(cue.CPL, len([]rune(line)))
		}
		cues = append(cues, cue)
	}
	return cues, nil
}

func seconds(v float64) time.Duration {
	return time.Duration(math.Round(v*1000)) * time.Millisecond
}
