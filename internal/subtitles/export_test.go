package subtitles

import (
	"bytes"
	"strings"
	"testing"
)

func sampleCues() []Cue {
	return []Cue{
		{ID: 1, Start: 1, End: 2.5, Text: "Hello there", Lines: []string{"Hello there"}},
		{ID: 2, Start: 2.58, End: 4.25, Text: "general Kenobi, you are a bold one", Lines: []string{"general Kenobi,", "you are a bold one"}},
	}
}

func TestWriteSRT(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSRT(&buf, sampleCues()); err != nil {
		t.Fatalf("WriteSRT: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"00:00:01,000 --> 00:00:02,500",
		"00:00:02,580 --> 00:00:04,250",
		"general Kenobi,\nyou are a bold one",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("srt output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteVTT(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVTT(&buf, sampleCues()); err != nil {
		t.Fatalf("WriteVTT: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "WEBVTT") {
		t.Errorf("vtt output missing header:\n%s", out)
	}
	if !strings.Contains(out, "00:00:02.580 --> 00:00:04.250") {
		t.Errorf("vtt output missing timing:\n%s", out)
	}
}

func TestReadSRT(t *testing.T) {
	const doc = "1\n00:00:00,000 --> 00:00:01,000\nfirst line\n\n2\n00:00:01,020 --> 00:00:02,000\nsecond\n, orphan\n\n"
	cues, err := ReadSRT(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadSRT: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("cues = %d, want 2", len(cues))
	}
	if cues[1].Text != "second, orphan" {
		t.Errorf("text = %q", cues[1].Text)
	}
	codes := issueCodes(ValidateCues(cues, DefaultOptions()))
	if codes[IssueOverlap] != 1 || codes[IssueOrphanPunctuation] != 1 {
		t.Errorf("unexpected validation result: %v", codes)
	}
}
