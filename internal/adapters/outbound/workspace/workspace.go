package workspace

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/repolens/repolens/internal/domain"
)

// Manager implements domain.WorkspaceManager by extracting zip archives
// under a base directory.
type Manager struct {
	baseDir string
}

// New creates a Manager that places workspaces under baseDir.
func New(baseDir string) *Manager {
	return &Manager{baseDir: baseDir}
}

// Workspace is one extracted archive. Root points at the analysis root,
// which may be a single top-level directory inside the extraction dir.
type Workspace struct {
	root string
	dir  string
}

func (w *Workspace) Root() string { return w.root }

// Release removes the whole extraction directory.
func (w *Workspace) Release() error {
	return os.RemoveAll(w.dir)
}

// Acquire extracts zipPath into a fresh directory keyed by analysisID.
// A stale directory from a prior run with the same ID is removed first.
// Any entry that would resolve outside the directory aborts extraction
// with domain.ErrUnsafeArchive and leaves nothing behind.
func (m *Manager) Acquire(zipPath, analysisID string) (domain.Workspace, error) {
	dir := filepath.Join(m.baseDir, "work_"+analysisID)
	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("clearing stale workspace: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	if err := extractAll(zipPath, dir); err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	root, err := collapseRoot(dir)
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("reading workspace: %w", err)
	}

	return &Workspace{root: root, dir: dir}, nil
}

func extractAll(zipPath, dir string) error {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", domain.ErrUnsafeArchive, filepath.Base(zipPath), err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		dest, err := safeJoin(dir, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", f.Name, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", f.Name, err)
		}
		if err := extractFile(f, dest); err != nil {
			return err
		}
	}
	return nil
}

// safeJoin resolves an archive entry name under dir, rejecting absolute
// paths and any parent-directory escape after normalization.
func safeJoin(dir, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: entry %q escapes the workspace", domain.ErrUnsafeArchive, name)
	}
	return filepath.Join(dir, clean), nil
}

func extractFile(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: reading entry %q: %v", domain.ErrUnsafeArchive, f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("writing %s: %w", f.Name, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("%w: extracting entry %q: %v", domain.ErrUnsafeArchive, f.Name, err)
	}
	return nil
}

// collapseRoot unwraps the common zip convention of a single top-level
// directory holding the whole tree.
func collapseRoot(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(dir, entries[0].Name()), nil
	}
	return dir, nil
}
