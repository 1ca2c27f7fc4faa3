package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ReportArchive keeps copies of rendered reports on disk under a base
// directory so downloads can be re-fetched after the response is gone.
type ReportArchive struct {
	baseDir string
}

// NewReportArchive ensures the base directory exists and returns a handle.
func NewReportArchive(baseDir string) (*ReportArchive, error) {
	if baseDir == "" {
		baseDir = "./exports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create exports directory: %w", err)
	}
	return &ReportArchive{baseDir: baseDir}, nil
}

// Save writes the report bytes under the base dir and returns the name.
func (a *ReportArchive) Save(filename string, data []byte) (string, error) {
	path := a.resolve(filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}
	return filename, nil
}

// Open returns a read-only handle for an archived report.
func (a *ReportArchive) Open(filename string) (*os.File, error) {
	file, err := os.Open(a.resolve(filename))
	if err != nil {
		return nil, fmt.Errorf("open report file: %w", err)
	}
	return file, nil
}

// CleanupOlderThan removes archived reports older than the provided TTL and
// returns the deleted names.
func (a *ReportArchive) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-ttl)
	deleted := make([]string, 0)
	entries, err := os.ReadDir(a.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read exports directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(a.baseDir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("cleanup report: %w", err)
		}
		deleted = append(deleted, entry.Name())
	}
	return deleted, nil
}

// Path exposes the underlying path (useful for debugging).
func (a *ReportArchive) Path(filename string) string {
	return a.resolve(filename)
}

func (a *ReportArchive) resolve(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(a.baseDir, filename)
}
