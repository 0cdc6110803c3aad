package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLiteral_FindAll(t *testing.T) {
	spans := Literal("ab").FindAll("ab-ab-abab")
	assert.Equal(t, [][2]int{{0, 2}, {3, 5}, {6, 8}, {8, 10}}, spans)

	assert.Nil(t, Literal("").FindAll("anything"))
	assert.Empty(t, Literal("zz").FindAll("abc"))
}

func TestLast(t *testing.T) {
	start, end, ok := Last(Literal("x"), "x.x.x")
	assert.True(t, ok)
	assert.Equal(t, 4, start)
	assert.Equal(t, 5, end)

	_, _, ok = Last(Literal("y"), "x.x.x")
	assert.False(t, ok)

	_, _, ok = Last(nil, "x")
	assert.False(t, ok)
}

func TestFirstOf_PrefersEarlierAlternative(t *testing.T) {
	p := FirstOf(Literal("{children}"), Literal("</body>"))

	text := "<body>{children}</body>"
	start, _, ok := Last(p, text)
	assert.True(t, ok)
	assert.Equal(t, 6, start)

	start, _, ok = Last(p, "<body></body>")
	assert.True(t, ok)
	assert.Equal(t, 6, start)

	assert.False(t, Matches(p, "<div />"))
	assert.Contains(t, p.String(), "first of")
}

func TestNot(t *testing.T) {
	p := Not(Literal(`@import "tailwindcss";`))

	assert.True(t, Matches(p, "@tailwind base;"))
	assert.False(t, Matches(p, `@import "tailwindcss";`))
}

func TestFileBoundaries(t *testing.T) {
	start, end, ok := Last(StartOfFile(), "abc")
	assert.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)

	start, end, ok = Last(EndOfFile(), "abc")
	assert.True(t, ok)
	assert.Equal(t, 3, start)
	assert.Equal(t, 3, end)

	assert.True(t, Matches(StartOfFile(), ""))
}

func TestMatches_NilNeverMatches(t *testing.T) {
	assert.False(t, Matches(nil, ""))
}
