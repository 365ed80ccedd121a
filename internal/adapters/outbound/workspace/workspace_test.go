package workspace_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/adapters/outbound/workspace"
	"github.com/repolens/repolens/internal/domain"
)

// writeZip builds a zip archive from entry-name → content pairs. Entries
// whose name ends in "/" become directories.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestAcquire_ExtractsTree(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "repo.zip")
	writeZip(t, zipPath, map[string]string{
		"main.go":        "package main\n",
		"docs/README.md": "# readme\n",
	})

	ws, err := workspace.New(dir).Acquire(zipPath, "run1")
	require.NoError(t, err)
	defer ws.Release()

	data, err := os.ReadFile(filepath.Join(ws.Root(), "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(data))

	_, err = os.Stat(filepath.Join(ws.Root(), "docs", "README.md"))
	assert.NoError(t, err)
}

func TestAcquire_CollapsesSingleTopLevelDir(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "repo.zip")
	writeZip(t, zipPath, map[string]string{
		"repo-main/main.go":   "package main\n",
		"repo-main/go.mod":    "module example.com/repo\n",
		"repo-main/sub/a.txt": "a\n",
	})

	ws, err := workspace.New(dir).Acquire(zipPath, "run1")
	require.NoError(t, err)
	defer ws.Release()

	assert.Equal(t, "repo-main", filepath.Base(ws.Root()))
	_, err = os.Stat(filepath.Join(ws.Root(), "main.go"))
	assert.NoError(t, err)
}

func TestAcquire_MultipleTopLevelEntriesKeepExtractionRoot(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "repo.zip")
	writeZip(t, zipPath, map[string]string{
		"a/x.txt": "x",
		"b/y.txt": "y",
	})

	ws, err := workspace.New(dir).Acquire(zipPath, "run1")
	require.NoError(t, err)
	defer ws.Release()

	_, err = os.Stat(filepath.Join(ws.Root(), "a", "x.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(ws.Root(), "b", "y.txt"))
	assert.NoError(t, err)
}

func TestAcquire_PathTraversalFails(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "evil.zip")
	writeZip(t, zipPath, map[string]string{
		"../escape.txt": "pwned",
	})

	_, err := workspace.New(dir).Acquire(zipPath, "run1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsafeArchive)

	// Nothing left behind: no workspace, no escaped file.
	_, statErr := os.Stat(filepath.Join(dir, "work_run1"))
	assert.True(t, os.IsNotExist(statErr), "workspace directory should not exist after a failed extraction")
	_, statErr = os.Stat(filepath.Join(dir, "..", "escape.txt"))
	assert.True(t, os.IsNotExist(statErr), "escaped file must not exist")
}

func TestAcquire_NestedTraversalFails(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "evil.zip")
	writeZip(t, zipPath, map[string]string{
		"ok.txt":            "fine",
		"sub/../../bad.txt": "pwned",
	})

	_, err := workspace.New(dir).Acquire(zipPath, "run1")
	assert.ErrorIs(t, err, domain.ErrUnsafeArchive)

	_, statErr := os.Stat(filepath.Join(dir, "work_run1"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestAcquire_CorruptArchiveFails(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "corrupt.zip")
	require.NoError(t, os.WriteFile(zipPath, []byte("not a zip archive"), 0o644))

	_, err := workspace.New(dir).Acquire(zipPath, "run1")
	assert.ErrorIs(t, err, domain.ErrUnsafeArchive)

	_, statErr := os.Stat(filepath.Join(dir, "work_run1"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestAcquire_RemovesStaleWorkspace(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "work_run1", "leftover")
	require.NoError(t, os.MkdirAll(stale, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(stale, "old.txt"), []byte("old"), 0o644))

	zipPath := filepath.Join(dir, "repo.zip")
	writeZip(t, zipPath, map[string]string{"fresh.txt": "new"})

	ws, err := workspace.New(dir).Acquire(zipPath, "run1")
	require.NoError(t, err)
	defer ws.Release()

	_, err = os.Stat(filepath.Join(dir, "work_run1", "leftover"))
	assert.True(t, os.IsNotExist(err), "stale contents should be cleared")
}

func TestRelease_RemovesWorkspace(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "repo.zip")
	writeZip(t, zipPath, map[string]string{"a.txt": "a"})

	ws, err := workspace.New(dir).Acquire(zipPath, "run1")
	require.NoError(t, err)

	require.NoError(t, ws.Release())
	_, statErr := os.Stat(filepath.Join(dir, "work_run1"))
	assert.True(t, os.IsNotExist(statErr))
}
