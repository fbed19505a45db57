// Package store persists hook configurations as a JSON file guarded by a
// file lock. Every save is an atomic whole-file overwrite (last writer wins;
// concurrent external edits are neither detected nor merged).
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	hgerrors "github.com/lightfastai/hookgate/internal/errors"
	"github.com/lightfastai/hookgate/internal/hooks"
	"github.com/lightfastai/hookgate/internal/logger"
)

const (
	// StoreDirName is the directory holding the hook store, relative to the
	// project root
	StoreDirName = ".hookgate"

	// StoreFileName is the name of the hook store file
	StoreFileName = "hooks.json"

	// LockTimeout is the timeout for acquiring the store lock
	LockTimeout = 5 * time.Second
)

// ErrLockTimeout is returned when file lock acquisition times out
var ErrLockTimeout = errors.New("timeout waiting for hook store lock")

// DefaultPath returns the store path under a project root
func DefaultPath(projectRoot string) string {
	return filepath.Join(projectRoot, StoreDirName, StoreFileName)
}

// FileStore reads and writes the hook list at a fixed path.
// It implements hooks.Store.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the hook list. A missing file yields an empty list. A corrupt
// file is reported with a warning and yields an empty list so the engine can
// proceed. Individual malformed entries are skipped with a warning.
func (s *FileStore) Load() ([]hooks.Hook, error) {
	unlock, err := s.lock(false)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// #nosec G304 - the path comes from trusted configuration
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []hooks.Hook{}, nil
		}
		return nil, fmt.Errorf("failed to read hook store: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("hook store is corrupt, starting with an empty list", "file", s.path, "error", err)
		return []hooks.Hook{}, nil
	}

	list := make([]hooks.Hook, 0, len(raw))
	for i, entry := range raw {
		var h hooks.Hook
		if err := json.Unmarshal(entry, &h); err != nil {
			logger.Warn("skipping malformed hook store entry", "file", s.path, "index", i, "error", err)
			continue
		}
		list = append(list, h)
	}

	return list, nil
}

// Save atomically overwrites the store with the full hook list
func (s *FileStore) Save(list []hooks.Hook) error {
	unlock, err := s.lock(true)
	if err != nil {
		return err
	}
	defer unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return hgerrors.StoreWriteFailed(s.path, err)
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return hgerrors.StoreWriteFailed(s.path, err)
	}

	// Write to a temporary file, then rename into place
	tempFile := s.path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o600); err != nil {
		return hgerrors.StoreWriteFailed(s.path, err)
	}
	if err := os.Rename(tempFile, s.path); err != nil {
		_ = os.Remove(tempFile)
		return hgerrors.StoreWriteFailed(s.path, err)
	}

	return nil
}

// lock acquires the store file lock (shared for reads, exclusive for writes)
// and returns the release function
func (s *FileStore) lock(exclusive bool) (func(), error) {
	lockPath := s.path + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o750); err != nil {
		return nil, hgerrors.StoreLocked(lockPath, err)
	}

	fileLock := flock.New(lockPath)

	ctx, cancel := context.WithTimeout(context.Background(), LockTimeout)
	defer cancel()

	var locked bool
	var err error
	if exclusive {
		locked, err = fileLock.TryLockContext(ctx, 100*time.Millisecond)
	} else {
		locked, err = fileLock.TryRLockContext(ctx, 100*time.Millisecond)
	}
	if err != nil {
		return nil, hgerrors.StoreLocked(lockPath, err)
	}
	if !locked {
		return nil, hgerrors.StoreLocked(lockPath, fmt.Errorf("%w: another hookgate command may be running (waited %v)", ErrLockTimeout, LockTimeout))
	}

	return func() { _ = fileLock.Unlock() }, nil
}
