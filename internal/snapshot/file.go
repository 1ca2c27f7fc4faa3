package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the snapshot in a single pretty-printed JSON file,
// mirroring the classic database.json layout.
type FileStore struct {
	path string
}

// NewFileStore ensures the parent directory exists and returns a handle.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot: file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: create data directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Load reads and decodes the snapshot file.
func (s *FileStore) Load(_ context.Context, dest interface{}) error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrEmpty
		}
		return fmt.Errorf("snapshot: read %s: %w", s.path, err)
	}
	if len(raw) == 0 {
		return ErrEmpty
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("snapshot: decode %s: %w", s.path, err)
	}
	return nil
}

// Save writes the snapshot through a temp file and renames it into place
// so readers never observe a partial write.
func (s *FileStore) Save(_ context.Context, src interface{}) error {
	payload, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("snapshot: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()           //nolint:errcheck
		os.Remove(tmpName)    //nolint:errcheck
		return fmt.Errorf("snapshot: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return fmt.Errorf("snapshot: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return fmt.Errorf("snapshot: replace %s: %w", s.path, err)
	}
	return nil
}
