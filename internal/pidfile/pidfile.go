// Package pidfile guards against a second daemon instance with an exclusive
// lock on the pid file.
package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the pid file.
var ErrLocked = errors.New("pid file is locked by another process")

// File is a locked pid file.
type File struct {
	path string
	lock *flock.Flock
}

// Acquire locks path and writes the current pid into it.
func Acquire(path string) (*File, error) {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		if pid, err := Read(path); err == nil {
			return nil, fmt.Errorf("%s (pid %d): %w", path, pid, ErrLocked)
		}
		return nil, fmt.Errorf("%s: %w", path, ErrLocked)
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644); err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return &File{path: path, lock: lock}, nil
}

// Path returns the locked file's path.
func (f *File) Path() string {
	return f.path
}

// Release removes the file and drops the lock.
func (f *File) Release() error {
	removeErr := os.Remove(f.path)
	if err := f.lock.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", f.path, err)
	}
	if removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", f.path, removeErr)
	}
	return nil
}

// Read returns the pid stored in path.
func Read(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse pid in %s: %w", path, err)
	}
	return pid, nil
}
