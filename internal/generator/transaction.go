package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Transaction represents a set of file operations that are committed
// together or not at all.
type Transaction struct {
	operations []Operation
	snapshots  []snapshot
	committed  bool
}

// snapshot is the state of a path before the transaction touched it.
type snapshot struct {
	path    string
	existed bool
	content []byte
	mode    fs.FileMode
}

// NewTransaction creates a new file operation transaction
func NewTransaction() *Transaction {
	return &Transaction{}
}

// Add stages an arbitrary operation.
func (t *Transaction) Add(op Operation) {
	t.operations = append(t.operations, op)
}

// AddFile stages a file write (doesn't write yet). Existing files are
// overwritten.
func (t *Transaction) AddFile(path string, content []byte, mode os.FileMode) {
	t.Add(&WriteFileOp{Target: path, Content: content, Mode: mode})
}

// RemoveFile stages a file removal.
func (t *Transaction) RemoveFile(path string) {
	t.Add(&RemoveFileOp{Target: path})
}

// Operations returns the staged operations in order.
func (t *Transaction) Operations() []Operation {
	return t.operations
}

// Len reports the number of staged operations.
func (t *Transaction) Len() int {
	return len(t.operations)
}

// Commit validates every staged operation, then executes them in order.
// If any step fails, every path touched so far is restored to its previous
// state and the error is returned.
func (t *Transaction) Commit(ctx context.Context) error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}

	for _, op := range t.operations {
		if err := op.Validate(ctx, true); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	for _, op := range t.operations {
		snap, err := takeSnapshot(op.Path())
		if err != nil {
			t.rollback()
			return fmt.Errorf("failed to read %s: %w", op.Path(), err)
		}
		t.snapshots = append(t.snapshots, snap)

		if err := op.Execute(ctx); err != nil {
			t.rollback()
			return fmt.Errorf("%s: %w", op.Description(), err)
		}
	}

	t.committed = true
	t.snapshots = nil
	return nil
}

// Rollback restores touched paths if the transaction did not commit (for use
// in defer).
func (t *Transaction) Rollback() {
	if !t.committed {
		t.rollback()
	}
}

func (t *Transaction) rollback() {
	for i := len(t.snapshots) - 1; i >= 0; i-- {
		s := t.snapshots[i]
		if s.existed {
			_ = os.WriteFile(s.path, s.content, s.mode) // best effort
		} else {
			_ = os.Remove(s.path)
		}
	}
	t.snapshots = nil
}

func takeSnapshot(path string) (snapshot, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return snapshot{path: path}, nil
	}
	if err != nil {
		return snapshot{}, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return snapshot{}, err
	}
	return snapshot{path: path, existed: true, content: content, mode: info.Mode().Perm()}, nil
}
