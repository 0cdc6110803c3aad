package manifest

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlgoFoe/hackpack/internal/variant"
)

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	v := variant.New(variant.Vue, variant.JSXNone, variant.Typed, variant.Plain, "none", variant.Options{Router: true})
	created := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

	m := New("0.4.0", "shop", v, created)
	m.SetUnwired([]Unwired{{Feature: "dependencies", Command: "npm install"}, {Feature: "dependencies"}})
	require.NoError(t, Save(dir, m))

	raw, err := os.ReadFile(Path(dir))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "framework: vue\n")
	assert.Contains(t, string(raw), "created_at: 2026-03-01T12:30:00Z\n")
	assert.Contains(t, string(raw), "router: true\n")
	assert.NotContains(t, string(raw), "pinia")

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, m, got)
	assert.Len(t, got.Unwired, 1)

	back, err := got.Variant(variant.JSXNone)
	require.NoError(t, err)
	assert.Equal(t, v, back)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir), []byte("version: 1\n"), 0644))
	_, err = Load(dir)
	assert.ErrorContains(t, err, "framework is missing")

	require.NoError(t, os.WriteFile(Path(dir), []byte("framework: [\n"), 0644))
	_, err = Load(dir)
	assert.ErrorContains(t, err, "parsing manifest")
}

func TestVariant_Validation(t *testing.T) {
	m := &Manifest{Framework: "next", Language: "typed", Styling: "utility-v3", Library: "daisyui", Extension: "tsx"}
	v, err := m.Variant(variant.JSXImplicit)
	require.NoError(t, err)
	assert.Equal(t, "tsx", v.Extension())

	m.Extension = "jsx"
	_, err = m.Variant(variant.JSXImplicit)
	assert.ErrorContains(t, err, "does not match")

	m.Extension = ""
	m.Styling = "tailwind"
	_, err = m.Variant(variant.JSXImplicit)
	assert.ErrorContains(t, err, "must be resolved")
}
