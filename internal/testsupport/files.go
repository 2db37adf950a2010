package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cuesmith/internal/transcript"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteTranscript stores tr as recognizer JSON and returns its path.
func WriteTranscript(t testing.TB, dir string, tr transcript.Transcript) string {
	t.Helper()

	data, err := json.Marshal(tr)
	if err != nil {
		t.Fatalf("marshal transcript: %v", err)
	}
	path := filepath.Join(dir, "transcript.json")
	WriteFile(t, path, data)
	return path
}

// TimedTranscript builds a single-segment transcript from whitespace separated
// words, each lasting step seconds with no gaps, starting at start.
func TimedTranscript(text string, start, step float64) transcript.Transcript {
	fields := strings.Fields(text)
	words := make([]transcript.Word, 0, len(fields))
	at := start
	for _, field := range fields {
		words = append(words, transcript.Word{Word: field, Start: at, End: at + step})
		at += step
	}
	return transcript.Transcript{
		Segments: []transcript.Segment{{
			Start: start,
			End:   at,
			Text:  strings.Join(fields, " "),
			Words: words,
		}},
	}
}

// CharTranscript builds a transcript with one recognizer word per rune, as
// CJK recognizers commonly emit.
func CharTranscript(text string, start, step float64) transcript.Transcript {
	var words []transcript.Word
	at := start
	for _, r := range text {
		words = append(words, transcript.Word{Word: string(r), Start: at, End: at + step})
		at += step
	}
	return transcript.Transcript{
		Language: "zh",
		Segments: []transcript.Segment{{Start: start, End: at, Text: text, Words: words}},
	}
}
