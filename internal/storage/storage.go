// Package storage persists application state as JSON snapshot files under a
// single data directory. Every record is rewritten in full on each save,
// mirroring the full-snapshot overwrite contract of the stores built on top.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrPersist marks a failed snapshot write. The in-memory mutation that
// triggered the write is kept; callers surface the error as a warning that
// the change may not survive a restart.
var ErrPersist = errors.New("persisting snapshot")

// Store is a durable key-value record store. Keys are file names.
type Store struct {
	dir string
}

// New creates the data directory if needed and returns a store rooted there.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string { return s.dir }

// Save serializes v and overwrites the record. The write goes through a
// temp file and rename so a crash mid-write cannot truncate the previous
// snapshot.
func (s *Store) Save(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Join(ErrPersist, fmt.Errorf("encoding %s: %w", key, err))
	}

	path := filepath.Join(s.dir, key)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Join(ErrPersist, fmt.Errorf("writing %s: %w", key, err))
	}

	if err := os.Rename(tmp, path); err != nil {
		return errors.Join(ErrPersist, fmt.Errorf("replacing %s: %w", key, err))
	}

	return nil
}

// Load reads a record into v. It reports found=false, with no error, when
// the record has never been saved.
func (s *Store) Load(key string, v any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, fmt.Errorf("reading %s: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}

	return true, nil
}

// Delete removes a record. Deleting an absent record is not an error.
func (s *Store) Delete(key string) error {
	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting %s: %w", key, err)
	}

	return nil
}
