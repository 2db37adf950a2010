package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"

	"cuesmith/internal/config"
	"cuesmith/internal/runlog"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckRunLog opens the run log, creating it when missing, and verifies the
// schema version.
func CheckRunLog(ctx context.Context, cfg *config.Config) Result {
	const name = "Run log"
	path := cfg.RunLogPath()

	store, err := runlog.Open(cfg)
	if err != nil {
		if errors.Is(err, runlog.ErrSchemaMismatch) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: schema mismatch; move the file aside to recreate it)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	defer store.Close()

	stats, err := store.Stats(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	total := 0
	for _, count := range stats {
		total += count
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d runs recorded)", path, total)}
}

// CheckListener reports whether a server already holds the data directory
// lock and, if not, whether the bind address can be opened.
func CheckListener(cfg *config.Config) Result {
	const name = "API listener"

	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("lock %s (error: %v)", cfg.LockPath(), err)}
	}
	if !ok {
		return Result{Name: name, Passed: true, Detail: "server running (data directory lock held)"}
	}
	defer func() { _ = lock.Unlock() }()

	listener, err := net.Listen("tcp", cfg.Server.Bind)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.Server.Bind, err)}
	}
	_ = listener.Close()
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (available)", cfg.Server.Bind)}
}
