package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cuesmith/internal/generation"
)

// Exit codes let scripts tell a bad request from a rejected alignment.
const (
	exitFailure  = 1
	exitInvalid  = 2
	exitRejected = 3
)

func main() {
	err := newRootCommand().Execute()
	if err == nil {
		return
	}
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "cuesmith: %v\n", err)
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, generation.ErrValidation):
		return exitInvalid
	case errors.Is(err, generation.ErrAlignmentRejected):
		return exitRejected
	default:
		return exitFailure
	}
}
