// Package patch applies ordered, idempotent text edits to generated source files.
//
// Edits locate an anchor (a literal or a regular expression) and splice text
// before, after, or in place of it. Every edit carries a guard pattern; when the
// guard already matches, the edit is skipped, so running the same edit list twice
// produces the same bytes as running it once.
//
// The engine is pure: Apply works on strings and never touches the filesystem.
// Plan and Commit are a thin I/O layer around it.
package patch

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy controls where the insertion goes relative to the anchor.
type Strategy int

const (
	// BeforeAnchor inserts immediately before the anchor span.
	BeforeAnchor Strategy = iota
	// AfterAnchor inserts immediately after the anchor span.
	AfterAnchor
	// ReplaceAnchor replaces the anchor span with the insertion.
	ReplaceAnchor
	// AppendIfMissing inserts after the anchor when there is one and appends
	// at end-of-file otherwise. With a nil Detect it always appends.
	AppendIfMissing
)

func (s Strategy) String() string {
	switch s {
	case BeforeAnchor:
		return "before"
	case AfterAnchor:
		return "after"
	case ReplaceAnchor:
		return "replace"
	case AppendIfMissing:
		return "append-if-missing"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Fallback is what an edit does when its anchor cannot be found.
type Fallback int

const (
	// FallbackSkip leaves the text unchanged for this edit.
	FallbackSkip Fallback = iota
	// FallbackAppend appends FallbackText (or Insertion) at end-of-file.
	FallbackAppend
	// FallbackPrepend puts FallbackText (or Insertion) at the top of the file.
	FallbackPrepend
)

// Target names the file an edit applies to. Callers map targets to paths;
// the engine itself ignores it.
type Target string

// Edit is one anchored text transformation.
type Edit struct {
	Name   string
	Target Target

	// Detect locates the anchor. The last match is used.
	Detect Pattern

	// AlreadyApplied is the idempotence guard. When nil, the guard is the
	// trimmed insertion text, or Not(Detect) for removals.
	AlreadyApplied Pattern

	Insertion    string
	Strategy     Strategy
	Fallback     Fallback
	FallbackText string
}

// Guard returns the pattern used to decide whether the edit is already present.
func (e Edit) Guard() Pattern {
	if e.AlreadyApplied != nil {
		return e.AlreadyApplied
	}
	if trimmed := strings.TrimSpace(e.Insertion); trimmed != "" {
		return Literal(trimmed)
	}
	if e.Detect != nil {
		return Not(e.Detect)
	}
	return nil
}

// Validate checks that the edit is well formed. It does not look at any file.
func (e Edit) Validate() error {
	var errs []error

	if e.Name == "" {
		errs = append(errs, errors.New("edit name is required"))
	}
	if e.Target == "" {
		errs = append(errs, fmt.Errorf("edit %q: target is required", e.Name))
	}
	if e.Detect == nil && e.Strategy != AppendIfMissing && e.Fallback == FallbackSkip {
		errs = append(errs, fmt.Errorf("edit %q: detect pattern is required for %s", e.Name, e.Strategy))
	}
	if e.Guard() == nil {
		errs = append(errs, fmt.Errorf("edit %q: cannot derive an idempotence guard", e.Name))
	}
	if e.Strategy == ReplaceAnchor && e.Fallback != FallbackSkip && e.Insertion == "" && e.FallbackText == "" {
		errs = append(errs, fmt.Errorf("edit %q: removal cannot have a fallback", e.Name))
	}

	return errors.Join(errs...)
}

// Status is the result of applying a single edit.
type Status int

const (
	// StatusApplied means the anchor was found and the text changed.
	StatusApplied Status = iota
	// StatusSkipped means the guard already matched.
	StatusSkipped
	// StatusFallback means the anchor was missing and the fallback was used.
	StatusFallback
	// StatusMissing means the anchor was missing and the edit was skipped.
	StatusMissing
	// StatusRejected means applying the edit would not satisfy its own guard,
	// so the change was discarded to keep the edit list idempotent.
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusSkipped:
		return "skipped"
	case StatusFallback:
		return "fallback"
	case StatusMissing:
		return "missing"
	case StatusRejected:
		return "rejected"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Changed reports whether the edit modified the text.
func (s Status) Changed() bool {
	return s == StatusApplied || s == StatusFallback
}

// Outcome records what happened to one edit.
type Outcome struct {
	Edit   string
	Target Target
	Status Status
	Detail string
}

func (o Outcome) String() string {
	if o.Detail == "" {
		return fmt.Sprintf("%s: %s", o.Edit, o.Status)
	}
	return fmt.Sprintf("%s: %s (%s)", o.Edit, o.Status, o.Detail)
}
