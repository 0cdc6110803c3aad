package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ExecuteOptions configures Execute.
type ExecuteOptions struct {
	DryRun bool
	Force  bool      // overwrite existing files
	Writer io.Writer // receives one line per operation; nil discards
}

// Execute validates every op, then commits them as one transaction. All
// validation failures are reported together and nothing is touched when any
// op is invalid. With DryRun the ops are only validated and listed.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	w := opts.Writer
	if w == nil {
		w = io.Discard
	}

	var invalid []error
	for _, op := range ops {
		if err := op.Validate(ctx, opts.Force); err != nil {
			invalid = append(invalid, err)
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("%d of %d file operations are invalid: %w", len(invalid), len(ops), errors.Join(invalid...))
	}

	mark := "✓"
	if opts.DryRun {
		mark = "✓ [DRY RUN]"
	} else {
		tx := NewTransaction()
		for _, op := range ops {
			tx.Add(op)
		}
		if err := tx.Commit(ctx); err != nil {
			return err
		}
	}
	for _, op := range ops {
		fmt.Fprintf(w, "%s %s\n", mark, op.Description())
	}
	return nil
}
