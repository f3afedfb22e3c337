// Package filelock provides advisory locks and atomic writes for the files a
// run produces: the combined output, the diagnostics report and the starter
// configuration.
package filelock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the lock for a target
var ErrLocked = errors.New("locked by another process")

// FileLock wraps a flock file lock for coordinating access to files.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created at the specified path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Path returns the lock file path
func (fl *FileLock) Path() string {
	return fl.path
}

// Lock acquires an exclusive lock on the file, blocking until the lock is available.
func (fl *FileLock) Lock() error {
	if err := fl.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	return nil
}

// TryLock attempts to acquire an exclusive lock on the file without blocking.
// Returns true if the lock was acquired, false if the lock is held elsewhere.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// LockPathFor returns the lock file guarding target. Lock files live in the
// system temp directory, keyed by the target's absolute path, so they never
// appear inside a tree that is being combined.
func LockPathFor(target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", target, err)
	}
	sum := sha256.Sum256([]byte(abs))
	name := fmt.Sprintf("combiner-%s.lock", hex.EncodeToString(sum[:8]))
	return filepath.Join(os.TempDir(), name), nil
}

// Acquire takes the lock guarding target without blocking.
// It returns ErrLocked if another holder already has it.
func Acquire(target string) (*FileLock, error) {
	lockPath, err := LockPathFor(target)
	if err != nil {
		return nil, err
	}

	lock := NewFileLock(lockPath)
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("%s: %w", target, ErrLocked)
	}
	return lock, nil
}

// AtomicWrite writes data to a file atomically using a temp file and rename strategy.
// Readers never see a partial file, and on failure the original file (if any)
// is left unchanged.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// Same directory as the target so the rename stays on one filesystem
	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	// Renamed into place; nothing left to clean up
	tempFile = nil

	return nil
}

// LockAndWrite blocks until it holds the lock for path, then writes data atomically.
func LockAndWrite(path string, data []byte) error {
	lockPath, err := LockPathFor(path)
	if err != nil {
		return err
	}

	lock := NewFileLock(lockPath)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	return AtomicWrite(path, data)
}
