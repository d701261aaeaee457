package pattern

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore persists the snapshot as a single indented JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a JSON file store at path. Nothing is touched until
// the first Load or Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot. A missing file is not an error: it means "no
// patterns yet". A file that exists but does not parse is reported as a
// parse error rather than silently treated as empty.
func (s *FileStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return emptySnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	snap := emptySnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if snap.Patterns == nil {
		snap.Patterns = map[string]SolutionPattern{}
	}
	if snap.Signatures == nil {
		snap.Signatures = map[string]ProblemSignature{}
	}
	return snap, nil
}

// Save writes the snapshot, creating the parent directory if needed.
func (s *FileStore) Save(snap *Snapshot) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error { return nil }
