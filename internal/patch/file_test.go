package patch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_DoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.tsx")
	require.NoError(t, os.WriteFile(path, []byte(typedLayout), 0644))

	result, err := Plan(path, layoutEdits())
	require.NoError(t, err)
	assert.True(t, result.Changed())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, typedLayout, string(data))
}

func TestApplyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.js")
	require.NoError(t, os.WriteFile(path, []byte(untypedLayout), 0600))

	result, err := ApplyFile(path, layoutEdits())
	require.NoError(t, err)
	assert.True(t, result.Changed())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, result.After, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// Second run is byte-identical and leaves no temp files behind.
	again, err := ApplyFile(path, layoutEdits())
	require.NoError(t, err)
	assert.False(t, again.Changed())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestApplyFile_MissingFile(t *testing.T) {
	_, err := ApplyFile(filepath.Join(t.TempDir(), "nope.tsx"), layoutEdits())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
