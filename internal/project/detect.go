package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/Masterminds/semver/v3"

	"github.com/AlgoFoe/hackpack/internal/variant"
)

// ErrUnsupportedVersion is returned for a utility-CSS major version hackpack
// has no edits for.
var ErrUnsupportedVersion = errors.New("unsupported tailwindcss version")

// PackageJSON is the part of package.json hackpack reads.
type PackageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Dependency returns the version range of pkg from either dependency list.
func (p *PackageJSON) Dependency(pkg string) (string, bool) {
	if r, ok := p.Dependencies[pkg]; ok {
		return r, true
	}
	r, ok := p.DevDependencies[pkg]
	return r, ok
}

// ReadPackageJSON reads dir/package.json.
func ReadPackageJSON(dir string) (*PackageJSON, error) {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return nil, fmt.Errorf("reading package.json: %w", err)
	}
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing package.json: %w", err)
	}
	return &pkg, nil
}

var versionInRange = regexp.MustCompile(`\d+(\.\d+){0,2}(-[0-9A-Za-z.-]+)?`)

// DetectStyling reports the utility-CSS version a project uses: the
// installed tailwindcss when node_modules has it, else the lowest version the
// package.json range allows. A project without tailwindcss is Plain.
func DetectStyling(dir string) (variant.StylingMode, *semver.Version, error) {
	pkg, err := ReadPackageJSON(dir)
	if err != nil {
		return "", nil, err
	}
	declared, ok := pkg.Dependency("tailwindcss")
	if !ok {
		return variant.Plain, nil, nil
	}

	version, err := installedVersion(dir, "tailwindcss")
	if err != nil {
		if version, err = rangeFloor(declared); err != nil {
			return "", nil, fmt.Errorf("tailwindcss %q: %w", declared, err)
		}
	}

	switch version.Major() {
	case 3:
		return variant.UtilityV3, version, nil
	case 4:
		return variant.UtilityV4, version, nil
	default:
		return "", version, fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}
}

func installedVersion(dir, pkg string) (*semver.Version, error) {
	meta, err := ReadPackageJSON(filepath.Join(dir, "node_modules", pkg))
	if err != nil {
		return nil, err
	}
	return semver.NewVersion(meta.Version)
}

// rangeFloor extracts the first version of an npm range ("^3.4.1", "~4",
// ">=4.0.0 <5").
func rangeFloor(r string) (*semver.Version, error) {
	m := versionInRange.FindString(r)
	if m == "" {
		return nil, fmt.Errorf("no version in range %q", r)
	}
	return semver.NewVersion(m)
}
