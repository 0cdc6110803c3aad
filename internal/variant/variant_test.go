package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtension_Total(t *testing.T) {
	tests := []struct {
		lang LanguageMode
		jsx  JSXStyle
		want string
	}{
		{Typed, JSXNone, "ts"},
		{Typed, JSXImplicit, "tsx"},
		{Typed, JSXExplicit, "tsx"},
		{Untyped, JSXNone, "js"},
		{Untyped, JSXImplicit, "js"},
		{Untyped, JSXExplicit, "jsx"},
	}

	for _, tt := range tests {
		t.Run(string(tt.lang)+"/"+tt.want, func(t *testing.T) {
			got := Extension(tt.lang, tt.jsx)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Extension(tt.lang, tt.jsx), "extension must be deterministic")
			assert.Contains(t, []string{"js", "jsx", "ts", "tsx"}, got)
		})
	}
}

func TestNew_DerivesExtension(t *testing.T) {
	v := New(Next, JSXImplicit, Untyped, UtilityV3, "daisyui", Options{})

	assert.Equal(t, "js", v.Extension())
	assert.Equal(t, "jsx", v.ComponentExtension())
	assert.False(t, v.Typed())
	assert.True(t, v.UsesUtilityCSS())
	assert.Equal(t, "src/app/layout.js", v.Expand("src/app/layout.{ext}"))
	assert.Equal(t, "src/components/ToastDemo.jsx", v.Expand("src/components/ToastDemo.{jsx}"))
	assert.Equal(t, "next/untyped/utility-v3/daisyui", v.String())
}

func TestParseLanguage(t *testing.T) {
	lang, err := ParseLanguage("TS")
	require.NoError(t, err)
	assert.Equal(t, Typed, lang)

	lang, err = ParseLanguage("javascript")
	require.NoError(t, err)
	assert.Equal(t, Untyped, lang)

	lang, err = ParseLanguage("")
	require.NoError(t, err)
	assert.Empty(t, lang)

	_, err = ParseLanguage("coffeescript")
	assert.ErrorIs(t, err, ErrUnknownSelection)
}

func TestParseStyling(t *testing.T) {
	tests := map[string]StylingMode{
		"tailwind":   Utility,
		"utility-v3": UtilityV3,
		"tailwind4":  UtilityV4,
		"plain":      Plain,
		"":           "",
	}
	for in, want := range tests {
		got, err := ParseStyling(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseStyling("sass")
	assert.ErrorIs(t, err, ErrUnknownSelection)
}

func TestConstraint_SatisfiedBy(t *testing.T) {
	free := Constraint{Library: "none"}
	v3 := Constraint{Library: "daisyui", Requires: UtilityV3}

	for _, s := range []StylingMode{UtilityV3, UtilityV4, Plain} {
		assert.True(t, free.SatisfiedBy(s))
	}
	assert.True(t, v3.SatisfiedBy(UtilityV3))
	assert.True(t, v3.SatisfiedBy(UtilityV4))
	assert.False(t, v3.SatisfiedBy(Plain))
}

func TestStylingMode_Major(t *testing.T) {
	assert.Equal(t, 3, UtilityV3.Major())
	assert.Equal(t, 4, UtilityV4.Major())
	assert.Equal(t, 0, Plain.Major())
}
