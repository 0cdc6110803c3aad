package generator

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const layoutBefore = `import type { Metadata } from "next";
import "./globals.css";

export const metadata: Metadata = {
  title: "Create Next App",
};
`

const layoutAfter = `import type { Metadata } from "next";
import "./globals.css";
import { Toaster } from "@/components/ui/toaster";

export const metadata: Metadata = {
  title: "HackPack",
};
`

func TestGenerateDiff(t *testing.T) {
	diff := GenerateDiff("layout.tsx", "layout.tsx", []byte(layoutBefore), []byte(layoutAfter), &DiffOptions{Width: 120})

	assert.Contains(t, diff, "--- layout.tsx")
	assert.Contains(t, diff, "+++ layout.tsx")
	assert.Contains(t, diff, "@@ -1,6 +1,7 @@")
	assert.Contains(t, diff, `+import { Toaster } from "@/components/ui/toaster";`)
	assert.Contains(t, diff, `-  title: "Create Next App",`)
	assert.Contains(t, diff, `+  title: "HackPack",`)
	assert.Contains(t, diff, ` import "./globals.css";`)
}

func TestGenerateDiff_Identical(t *testing.T) {
	assert.Empty(t, GenerateDiff("a", "a", []byte(layoutBefore), []byte(layoutBefore), nil))
}

func TestGenerateDiff_Binary(t *testing.T) {
	assert.Equal(t, "Binary files differ\n", GenerateDiff("a", "a", []byte{0, 1}, []byte{0, 2}, nil))
}

func TestGenerateDiff_SeparateHunks(t *testing.T) {
	var old, newer []string
	for i := 0; i < 30; i++ {
		old = append(old, "line")
		newer = append(newer, "line")
	}
	old[2], newer[2] = "a", "A"
	old[25], newer[25] = "b", "B"

	diff := NewDiffGenerator().GenerateDiff("f", "f",
		[]byte(strings.Join(old, "\n")+"\n"), []byte(strings.Join(newer, "\n")+"\n"), &DiffOptions{Width: 80})

	assert.Equal(t, 2, strings.Count(diff, "@@ -"))
	assert.Contains(t, diff, "@@ -1,6 +1,6 @@")
	assert.Contains(t, diff, "@@ -23,7 +23,7 @@")
}

func TestEditScript_Reuse(t *testing.T) {
	dg := NewDiffGenerator()

	first := dg.editScript([]string{"a", "b", "c"}, []string{"a", "c"})
	second := dg.editScript(nil, []string{"x"})

	require.Len(t, first, 3)
	assert.Equal(t, opRemoved, first[1].op)
	assert.Equal(t, "b", first[1].content)
	require.Len(t, second, 1)
	assert.Equal(t, opAdded, second[0].op)
	assert.Equal(t, 1, second[0].newLineNum)
}

func TestTruncateAndTabs(t *testing.T) {
	assert.Equal(t, "abcdefg...", truncateLine("abcdefghijklmnop", 10))
	assert.Equal(t, "short", truncateLine("short", 10))
	assert.Equal(t, "    x", expandTabs("\tx", 4))
	assert.Equal(t, "ab  x", expandTabs("ab\tx", 4))
}

func TestShowDiff_Inline(t *testing.T) {
	var out strings.Builder
	require.NoError(t, ShowDiff(&out, "layout.tsx", "--- a\n+++ b\n", true))
	assert.Equal(t, "--- a\n+++ b\n", out.String())

	out.Reset()
	require.NoError(t, ShowDiff(&out, "layout.tsx", "", false))
	assert.Empty(t, out.String())
}

func TestDiffViewerModel(t *testing.T) {
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, "+line")
	}
	var m tea.Model = newDiffViewerModel("src/app/layout.tsx", strings.Join(lines, "\n"))
	assert.Equal(t, "Initializing...", m.View())

	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	view := m.View()
	assert.Contains(t, view, "src/app/layout.tsx")
	assert.Contains(t, view, "+line")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.NotNil(t, cmd)
	assert.True(t, m.(diffViewerModel).quit)
}
