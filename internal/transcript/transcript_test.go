package transcript

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleJSON = `{
  "language": "en",
  "segments": [
    {"start": 0.0, "end": 1.2, "text": " Hello world.", "words": [
      {"word": "Hello", "start": 0.0, "end": 0.5, "probability": 0.9},
      {"word": "world.", "start": 0.6, "end": 1.2}
    ]},
    {"start": 1.5, "end": 2.0, "text": "Bye"}
  ]
}`

func TestParse(t *testing.T) {
	tr, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tr.Language != "en" {
		t.Fatalf("language = %q, want en", tr.Language)
	}
	if len(tr.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(tr.Segments))
	}
	words := tr.Words()
	if len(words) != 2 {
		t.Fatalf("words = %d, want 2", len(words))
	}
	if words[0].Probability == nil || *words[0].Probability != 0.9 {
		t.Fatalf("probability not decoded: %+v", words[0])
	}
	if words[1].Probability != nil {
		t.Fatalf("expected nil probability, got %v", *words[1].Probability)
	}
	if got := tr.Text(); got != "Hello world. Bye" {
		t.Fatalf("Text() = %q", got)
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Fatal("expected error for invalid json")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tr, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tr.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(tr.Segments))
	}
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
