package testsupport

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"cuesmith/internal/config"
	"cuesmith/internal/runlog"
)

// MustOpenStore opens a runlog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *runlog.Store {
	t.Helper()

	store, err := runlog.Open(cfg)
	if err != nil {
		t.Fatalf("runlog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewRun creates a running run for tests using the provided store.
func NewRun(t testing.TB, store *runlog.Store, webinarID string) *runlog.Run {
	t.Helper()

	run, err := store.CreateRun(context.Background(), runlog.NewRun{
		ID:        uuid.NewString(),
		WebinarID: webinarID,
		Strict:    true,
	})
	if err != nil {
		t.Fatalf("store.CreateRun: %v", err)
	}
	return run
}
