package generation

import (
	"errors"
	"fmt"
	"strings"

	"cuesmith/internal/runlog"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrAlignmentRejected = errors.New("alignment rejected")
	ErrStorage           = errors.New("storage error")
	ErrNotFound          = errors.New("not found")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrStorage
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureStatus maps a generation error to the run status recorded for it.
func FailureStatus(err error) runlog.Status {
	if errors.Is(err, ErrAlignmentRejected) {
		return runlog.StatusRejected
	}
	return runlog.StatusFailed
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "generation failure"
	}
	return strings.Join(parts, ": ")
}
