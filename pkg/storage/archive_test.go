package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportArchiveSaveAndOpen(t *testing.T) {
	archive, err := NewReportArchive(t.TempDir())
	require.NoError(t, err)

	name, err := archive.Save("report.csv", []byte("id,surname\n"))
	require.NoError(t, err)
	assert.Equal(t, "report.csv", name)

	file, err := archive.Open("report.csv")
	require.NoError(t, err)
	defer file.Close()

	data, err := os.ReadFile(archive.Path("report.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id,surname\n", string(data))
}

func TestReportArchiveCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	archive, err := NewReportArchive(dir)
	require.NoError(t, err)

	_, err = archive.Save("old.csv", []byte("x"))
	require.NoError(t, err)
	_, err = archive.Save("fresh.csv", []byte("y"))
	require.NoError(t, err)

	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.csv"), stale, stale))

	deleted, err := archive.CleanupOlderThan(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"old.csv"}, deleted)

	_, err = os.Stat(filepath.Join(dir, "fresh.csv"))
	assert.NoError(t, err)
}
