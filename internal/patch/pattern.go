package patch

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern locates anchors in file text.
//
// FindAll returns the [start, end) byte spans of every match in document order.
// Zero-width spans are allowed (StartOfFile, EndOfFile).
type Pattern interface {
	FindAll(text string) [][2]int
	String() string
}

// Matches reports whether p matches anywhere in text. A nil pattern never matches.
func Matches(p Pattern, text string) bool {
	if p == nil {
		return false
	}
	return len(p.FindAll(text)) > 0
}

// Last returns the span of the last match of p in text.
//
// The last occurrence wins so that, for example, a new import is placed after
// every existing import rather than between them.
func Last(p Pattern, text string) (start, end int, ok bool) {
	if p == nil {
		return 0, 0, false
	}
	spans := p.FindAll(text)
	if len(spans) == 0 {
		return 0, 0, false
	}
	last := spans[len(spans)-1]
	return last[0], last[1], true
}

// Literal matches an exact substring.
func Literal(s string) Pattern {
	return literal(s)
}

type literal string

func (l literal) FindAll(text string) [][2]int {
	if l == "" {
		return nil
	}

	var spans [][2]int
	offset := 0
	for {
		i := strings.Index(text[offset:], string(l))
		if i < 0 {
			return spans
		}
		start := offset + i
		spans = append(spans, [2]int{start, start + len(l)})
		offset = start + len(l)
	}
}

func (l literal) String() string {
	return fmt.Sprintf("%q", string(l))
}

// Regexp matches a regular expression. It panics if expr does not compile,
// which keeps descriptor tables honest at package init.
func Regexp(expr string) Pattern {
	return &regex{re: regexp.MustCompile(expr)}
}

type regex struct {
	re *regexp.Regexp
}

func (r *regex) FindAll(text string) [][2]int {
	matches := r.re.FindAllStringIndex(text, -1)
	spans := make([][2]int, 0, len(matches))
	for _, m := range matches {
		spans = append(spans, [2]int{m[0], m[1]})
	}
	return spans
}

func (r *regex) String() string {
	return "/" + r.re.String() + "/"
}

// FirstOf tries each alternative in order and uses the first one that matches
// anywhere in the text. Alternatives express preference, not position.
func FirstOf(alternatives ...Pattern) Pattern {
	return firstOf(alternatives)
}

type firstOf []Pattern

func (f firstOf) FindAll(text string) [][2]int {
	for _, p := range f {
		if spans := p.FindAll(text); len(spans) > 0 {
			return spans
		}
	}
	return nil
}

func (f firstOf) String() string {
	parts := make([]string, len(f))
	for i, p := range f {
		parts[i] = p.String()
	}
	return "first of [" + strings.Join(parts, ", ") + "]"
}

// Not matches (with a zero-width span at 0) exactly when p does not match.
// It is meant for guards of removal edits.
func Not(p Pattern) Pattern {
	return not{inner: p}
}

type not struct {
	inner Pattern
}

func (n not) FindAll(text string) [][2]int {
	if Matches(n.inner, text) {
		return nil
	}
	return [][2]int{{0, 0}}
}

func (n not) String() string {
	return "not " + n.inner.String()
}

// StartOfFile is a zero-width anchor at offset 0.
func StartOfFile() Pattern {
	return Regexp(`\A`)
}

// EndOfFile is a zero-width anchor at the end of the text.
func EndOfFile() Pattern {
	return Regexp(`\z`)
}
