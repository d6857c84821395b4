// Package snapshot persists the last fetched directory snapshot to disk so
// separate CLI invocations can share the cache window instead of refetching
// the whole records directory on every run.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/opencatalog/catalogctl/internal/catalog"
)

const snapshotFile = "catalog.json"

// Store reads and writes catalog snapshots under baseDir.
type Store struct {
	baseDir string
}

type envelope struct {
	FetchedAt time.Time         `json:"fetched_at"`
	Projects  []catalog.Project `json:"projects"`
}

// New creates a Store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return filepath.Join(s.baseDir, snapshotFile)
}

// Save writes the snapshot atomically (temp file + rename).
func (s *Store) Save(projects []catalog.Project, fetchedAt time.Time) error {
	if err := os.MkdirAll(s.baseDir, 0750); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(envelope{FetchedAt: fetchedAt, Projects: projects}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	destPath := s.Path()
	tmpPath := destPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// Load reads the snapshot. ok is false when no snapshot exists; a corrupt
// snapshot is treated the same way rather than failing the caller.
func (s *Store) Load() (projects []catalog.Project, fetchedAt time.Time, ok bool) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, time.Time{}, false
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, time.Time{}, false
	}
	return env.Projects, env.FetchedAt, true
}

// Invalidate removes the snapshot so the next run refetches.
func (s *Store) Invalidate() error {
	err := os.Remove(s.Path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Info describes the snapshot on disk for the cache command.
func (s *Store) Info() (path string, fetchedAt time.Time, count int, exists bool) {
	projects, fetchedAt, ok := s.Load()
	if !ok {
		return s.Path(), time.Time{}, 0, false
	}
	return s.Path(), fetchedAt, len(projects), true
}
