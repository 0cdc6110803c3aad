package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation represents a file system change that can be validated and executed.
//
// Validate checks whether the operation would succeed without executing it.
// force=true skips conflict checks (e.g., the file already exists).
//
// Description returns a human-readable description for output
// (e.g., "Write src/app/page.tsx (1934 bytes)").
type Operation interface {
	Path() string
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp writes a file with content, creating parent directories.
//
// Validation rejects nil content (empty is fine) and, unless force is set,
// a path that already exists.
type WriteFileOp struct {
	Target  string      // File path to write
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
}

func (op *WriteFileOp) Path() string { return op.Target }

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Target)
	}
	if !force {
		if _, err := os.Stat(op.Target); err == nil {
			return fmt.Errorf("file already exists: %s", op.Target)
		}
	}
	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(op.Target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}
	mode := op.Mode
	if mode == 0 {
		mode = 0644
	}
	return os.WriteFile(op.Target, op.Content, mode)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Write %s (%d bytes)", op.Target, len(op.Content))
}

// RemoveFileOp deletes a file. A file that is already gone is not an error.
type RemoveFileOp struct {
	Target string
}

func (op *RemoveFileOp) Path() string { return op.Target }

func (op *RemoveFileOp) Validate(ctx context.Context, force bool) error {
	info, err := os.Stat(op.Target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("refusing to remove directory: %s", op.Target)
	}
	return nil
}

func (op *RemoveFileOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(op.Target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (op *RemoveFileOp) Description() string {
	return fmt.Sprintf("Remove %s", op.Target)
}
