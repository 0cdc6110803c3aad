package generator

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// DiffOptions configures how diffs are generated and displayed.
// All fields are optional.
type DiffOptions struct {
	ContextLines int  // unchanged lines around each change, default 3
	TabWidth     int  // default 4
	ShowLineNums bool // old-file line numbers in the margin
	Width        int  // wrap width; 0 asks the terminal, falling back to 80
}

// maxDiffLines bounds the input size; the Myers trace is quadratic in the
// worst case.
const maxDiffLines = 10000

// DiffGenerator produces unified diffs and reuses its buffers between calls.
type DiffGenerator struct {
	v     []int
	trace [][]int
}

// NewDiffGenerator creates a diff generator optimized for repeated use.
func NewDiffGenerator() *DiffGenerator {
	return &DiffGenerator{}
}

// GenerateDiff returns a unified diff of old and newer, or "" when they are
// identical.
func (dg *DiffGenerator) GenerateDiff(oldPath, newPath string, old, newer []byte, opts *DiffOptions) string {
	o := DiffOptions{ContextLines: 3, TabWidth: 4}
	if opts != nil {
		o = *opts
		if o.ContextLines == 0 {
			o.ContextLines = 3
		}
		if o.TabWidth == 0 {
			o.TabWidth = 4
		}
	}

	if bytes.Equal(old, newer) {
		return ""
	}
	if isBinary(old) || isBinary(newer) {
		return "Binary files differ\n"
	}

	oldLines := splitLines(string(old))
	newLines := splitLines(string(newer))
	if len(oldLines) > maxDiffLines || len(newLines) > maxDiffLines {
		return fmt.Sprintf("Files too large for diff (%d and %d lines)\n", len(oldLines), len(newLines))
	}

	hunks := buildHunks(dg.editScript(oldLines, newLines), o.ContextLines)
	if len(hunks) == 0 {
		return ""
	}

	width := o.Width
	if width <= 0 {
		width = terminalWidth()
	}

	var buf strings.Builder
	buf.WriteString(headerStyle.Render("--- "+oldPath) + "\n")
	buf.WriteString(headerStyle.Render("+++ "+newPath) + "\n")
	for _, h := range hunks {
		buf.WriteString(formatHunk(h, o, width))
	}
	return buf.String()
}

// GenerateDiff creates a unified diff with a throwaway generator.
func GenerateDiff(oldPath, newPath string, old, newer []byte, opts *DiffOptions) string {
	return NewDiffGenerator().GenerateDiff(oldPath, newPath, old, newer, opts)
}

type lineOp int

const (
	opUnchanged lineOp = iota
	opAdded
	opRemoved
)

type diffLine struct {
	oldLineNum int // 0 if added
	newLineNum int // 0 if removed
	content    string
	op         lineOp
}

type hunk struct {
	oldStart, oldCount int
	newStart, newCount int
	lines              []diffLine
}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
	lineNumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true)
)

// editScript computes the shortest edit script between a and b.
// Myers, "An O(ND) Difference Algorithm and Its Variations" (1986).
func (dg *DiffGenerator) editScript(a, b []string) []diffLine {
	n, m := len(a), len(b)
	maxD := n + m
	offset := maxD + 1

	size := 2*maxD + 3
	if cap(dg.v) < size {
		dg.v = make([]int, size)
	} else {
		dg.v = dg.v[:size]
		clear(dg.v)
	}
	dg.trace = dg.trace[:0]
	v := dg.v

search:
	for d := 0; d <= maxD; d++ {
		dg.trace = append(dg.trace, slices.Clone(v))
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				break search
			}
		}
	}

	var script []diffLine
	x, y := n, m
	for d := len(dg.trace) - 1; d >= 0; d-- {
		tv := dg.trace[d]
		k := x - y

		prevK := k - 1
		if k == -d || (k != d && tv[offset+k-1] < tv[offset+k+1]) {
			prevK = k + 1
		}
		prevX := tv[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			script = append(script, diffLine{oldLineNum: x + 1, newLineNum: y + 1, content: a[x], op: opUnchanged})
		}
		if d == 0 {
			break
		}
		if x == prevX {
			y--
			script = append(script, diffLine{newLineNum: y + 1, content: b[y], op: opAdded})
		} else {
			x--
			script = append(script, diffLine{oldLineNum: x + 1, content: a[x], op: opRemoved})
		}
	}

	slices.Reverse(script)
	return script
}

// buildHunks groups changes closer than 2*context lines into one hunk and
// surrounds each hunk with up to context unchanged lines.
func buildHunks(lines []diffLine, context int) []hunk {
	var changes []int
	for i, l := range lines {
		if l.op != opUnchanged {
			changes = append(changes, i)
		}
	}
	if len(changes) == 0 {
		return nil
	}

	var hunks []hunk
	start := changes[0]
	end := changes[0]
	flush := func() {
		from := max(0, start-context)
		to := min(len(lines), end+context+1)
		hunks = append(hunks, finalizeHunk(lines[from:to]))
	}

	for _, c := range changes[1:] {
		if c-end > 2*context {
			flush()
			start = c
		}
		end = c
	}
	flush()
	return hunks
}

func finalizeHunk(lines []diffLine) hunk {
	h := hunk{lines: lines}
	for _, l := range lines {
		if l.oldLineNum > 0 && h.oldStart == 0 {
			h.oldStart = l.oldLineNum
		}
		if l.newLineNum > 0 && h.newStart == 0 {
			h.newStart = l.newLineNum
		}
		if l.op != opAdded {
			h.oldCount++
		}
		if l.op != opRemoved {
			h.newCount++
		}
	}
	return h
}

func formatHunk(h hunk, opts DiffOptions, width int) string {
	var buf strings.Builder

	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.oldStart, h.oldCount, h.newStart, h.newCount)
	buf.WriteString(hunkStyle.Render(header) + "\n")

	for _, line := range h.lines {
		content := truncateLine(expandTabs(line.content, opts.TabWidth), width-10)

		var formatted string
		switch line.op {
		case opAdded:
			formatted = addedStyle.Render("+" + content)
		case opRemoved:
			formatted = removedStyle.Render("-" + content)
		default:
			formatted = " " + content
		}

		if opts.ShowLineNums {
			num := "    "
			if line.oldLineNum > 0 {
				num = fmt.Sprintf("%4d", line.oldLineNum)
			}
			formatted = lineNumStyle.Render(num) + " " + formatted
		}
		buf.WriteString(formatted + "\n")
	}
	return buf.String()
}

// isBinary reports whether the first 8 KiB contain a NUL byte.
func isBinary(data []byte) bool {
	return bytes.IndexByte(data[:min(len(data), 8192)], 0) != -1
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func expandTabs(s string, tabWidth int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var buf strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			spaces := tabWidth - (col % tabWidth)
			buf.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			continue
		}
		buf.WriteRune(r)
		col++
	}
	return buf.String()
}

func truncateLine(s string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = 80
	}
	if utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	if maxWidth < 3 {
		return "..."[:maxWidth]
	}
	return string([]rune(s)[:maxWidth-3]) + "..."
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
