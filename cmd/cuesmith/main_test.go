package main

import (
	"errors"
	"fmt"
	"testing"

	"cuesmith/internal/generation"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain", errors.New("boom"), exitFailure},
		{"validation", generation.Wrap(generation.ErrValidation, "request", "validate", "maxLines must be positive", nil), exitInvalid},
		{"rejected", fmt.Errorf("%w (rerun with --no-strict)", generation.Wrap(generation.ErrAlignmentRejected, "alignment", "strict gate", "coverage 0.5", nil)), exitRejected},
		{"storage", generation.Wrap(generation.ErrStorage, "runlog", "open", "", errors.New("locked")), exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Fatalf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
