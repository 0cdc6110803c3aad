package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlgoFoe/hackpack/internal/variant"
)

func writePackageJSON(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0644))
}

func TestDetectStyling(t *testing.T) {
	tests := []struct {
		name    string
		pkg     string
		want    variant.StylingMode
		version string
	}{
		{"v4 dev dependency", `{"devDependencies":{"tailwindcss":"^4"}}`, variant.UtilityV4, "4.0.0"},
		{"v3 pinned", `{"devDependencies":{"tailwindcss":"3.4.17"}}`, variant.UtilityV3, "3.4.17"},
		{"tilde range", `{"dependencies":{"tailwindcss":"~3.3.0"}}`, variant.UtilityV3, "3.3.0"},
		{"compound range", `{"dependencies":{"tailwindcss":">=4.1.0 <5"}}`, variant.UtilityV4, "4.1.0"},
		{"no tailwind", `{"dependencies":{"react":"19.0.0"}}`, variant.Plain, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writePackageJSON(t, dir, tt.pkg)

			got, version, err := DetectStyling(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.version == "" {
				assert.Nil(t, version)
			} else {
				assert.Equal(t, tt.version, version.String())
			}
		})
	}
}

func TestDetectStyling_PrefersInstalledVersion(t *testing.T) {
	dir := t.TempDir()
	writePackageJSON(t, dir, `{"devDependencies":{"tailwindcss":"latest"}}`)
	writePackageJSON(t, filepath.Join(dir, "node_modules", "tailwindcss"), `{"name":"tailwindcss","version":"4.1.11"}`)

	got, version, err := DetectStyling(dir)
	require.NoError(t, err)
	assert.Equal(t, variant.UtilityV4, got)
	assert.Equal(t, "4.1.11", version.String())
}

func TestDetectStyling_Errors(t *testing.T) {
	_, _, err := DetectStyling(t.TempDir())
	assert.Error(t, err, "missing package.json")

	dir := t.TempDir()
	writePackageJSON(t, dir, `{"devDependencies":{"tailwindcss":"^2.2.19"}}`)
	_, _, err = DetectStyling(dir)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	dir = t.TempDir()
	writePackageJSON(t, dir, `{"devDependencies":{"tailwindcss":"latest"}}`)
	_, _, err = DetectStyling(dir)
	assert.Error(t, err)
}
