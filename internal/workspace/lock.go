// Package workspace provides workspace-level utilities including locking.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

const lockFileName = ".kvit-watch.lock"

// Lock represents an acquired workspace lock.
type Lock struct {
	flock       *flock.Flock
	lockPath    string
	cleanupOnce sync.Once
}

// AcquireLock attempts to acquire an exclusive lock on a workspace directory.
// This prevents multiple kvit-watch instances from polling the same workspace
// simultaneously, which would apply each preview twice.
// Returns a Lock that must be released by calling Release(), or an error if lock fails.
func AcquireLock(workspaceRoot string) (*Lock, error) {
	lockPath := filepath.Join(workspaceRoot, lockFileName)

	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire workspace lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("workspace %q is already in use by another kvit-watch instance", workspaceRoot)
	}

	// Write PID to lock file for debugging
	if f, err := os.OpenFile(lockPath, os.O_WRONLY|os.O_TRUNC, 0644); err == nil {
		fmt.Fprintf(f, "%d\n", os.Getpid())
		f.Close()
	}

	return &Lock{flock: fl, lockPath: lockPath}, nil
}

// Release releases the workspace lock and removes the lock file.
// Safe to call more than once.
func (l *Lock) Release() {
	l.cleanupOnce.Do(func() {
		if l.flock != nil {
			l.flock.Unlock()
		}
		os.Remove(l.lockPath)
	})
}
