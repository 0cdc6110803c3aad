package patch

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileResult is the planned outcome of running edits against one file.
type FileResult struct {
	Path     string
	Before   string
	After    string
	Outcomes []Outcome
	mode     os.FileMode
}

// Changed reports whether the edits modified the file content.
func (r *FileResult) Changed() bool {
	return r.Before != r.After
}

// Plan reads path and runs edits against its content without writing anything.
func Plan(path string, edits []Edit) (*FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	before := string(data)
	after, outcomes := Apply(before, edits)

	return &FileResult{
		Path:     path,
		Before:   before,
		After:    after,
		Outcomes: outcomes,
		mode:     info.Mode().Perm(),
	}, nil
}

// Commit writes the planned content back in one atomic replace. It is a no-op
// when nothing changed.
func (r *FileResult) Commit() error {
	if !r.Changed() {
		return nil
	}
	return WriteAtomic(r.Path, []byte(r.After), r.mode)
}

// ApplyFile reads path, applies edits, and writes the result once.
func ApplyFile(path string, edits []Edit) (*FileResult, error) {
	result, err := Plan(path, edits)
	if err != nil {
		return nil, err
	}
	if err := result.Commit(); err != nil {
		return result, err
	}
	return result, nil
}

// WriteAtomic writes data to a temporary file next to path and renames it into
// place, so readers see either the old or the new content.
func WriteAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
