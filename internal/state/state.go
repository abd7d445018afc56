package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const fileMode os.FileMode = 0o600

// Entry is one keys directory created by a run.
type Entry struct {
	// KeysDir is the directory holding the ephemeral key material.
	KeysDir   string    `yaml:"keysDir"`
	CreatedAt time.Time `yaml:"createdAt"`
}

// Record is the state shared by every run of a job until cleanup drains it.
type Record struct {
	Entries []Entry `yaml:"entries"`
}

// Store reads and writes a Record at Path.
type Store struct {
	Path string
}

// NewStore returns a Store for path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Save writes rec, replacing any previous record.
func (s *Store) Save(rec Record) error {
	data, err := yaml.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	// Write to a temp file and rename so a reader never sees a partial record.
	tmp, err := os.CreateTemp(filepath.Dir(s.Path), filepath.Base(s.Path)+".tmp-")
	if err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

// Add appends e to the stored record. A directory that is already recorded
// is not added twice.
func (s *Store) Add(e Entry) error {
	rec, _, err := s.Load()
	if err != nil {
		return err
	}
	for _, existing := range rec.Entries {
		if existing.KeysDir == e.KeysDir {
			return nil
		}
	}
	rec.Entries = append(rec.Entries, e)
	return s.Save(rec)
}

// Load returns the stored record. ok is false when no record exists.
func (s *Store) Load() (rec Record, ok bool, err error) {
	// #nosec G304 - the state path is chosen by the operator
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("failed to read state: %w", err)
	}

	if err := yaml.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("failed to decode state %s: %w", s.Path, err)
	}
	entries := rec.Entries[:0]
	for _, e := range rec.Entries {
		if e.KeysDir != "" {
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		return Record{}, false, nil
	}
	return Record{Entries: entries}, true, nil
}

// Clear removes the record. Clearing a missing record is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}
