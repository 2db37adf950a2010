package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"cuesmith/internal/textutil"
)

// Word is one recognized word with its time span in seconds.
type Word struct {
	Word        string   `json:"word"`
	Start       float64  `json:"start"`
	End         float64  `json:"end"`
	Probability *float64 `json:"probability,omitempty"`
}

// Segment is a recognizer segment. Words may be empty when the recognizer
// only produced segment-level timing.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// Transcript is the full recognizer output.
type Transcript struct {
	Language string    `json:"language,omitempty"`
	Segments []Segment `json:"segments"`
}

// Load reads a transcript JSON file, transcoding legacy encodings to UTF-8.
func Load(path string) (Transcript, error) {
	if strings.TrimSpace(path) == "" {
		return Transcript{}, os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Transcript{}, err
	}
	return Parse(data)
}

// Parse decodes transcript JSON.
func Parse(data []byte) (Transcript, error) {
	decoded, err := textutil.DecodeToUTF8(data)
	if err != nil {
		return Transcript{}, fmt.Errorf("decode transcript: %w", err)
	}
	var tr Transcript
	if err := json.Unmarshal(decoded, &tr); err != nil {
		return Transcript{}, fmt.Errorf("parse transcript json: %w", err)
	}
	return tr, nil
}

// Words flattens the word timings of every segment in order.
func (t Transcript) Words() []Word {
	var out []Word
	for _, seg := range t.Segments {
		out = append(out, seg.Words...)
	}
	return out
}

// Text joins segment texts with single spaces.
func (t Transcript) Text() string {
	parts := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// Float64 returns a pointer to v, for building optional probabilities.
func Float64(v float64) *float64 {
	return &v
}
