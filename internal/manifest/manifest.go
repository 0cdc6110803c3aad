// Package manifest reads and writes .hackpack.yml, the record a generated
// project keeps of how hackpack built it.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AlgoFoe/hackpack/internal/patch"
	"github.com/AlgoFoe/hackpack/internal/variant"
)

// FileName is the manifest's name inside the project root.
const FileName = ".hackpack.yml"

// ErrNotFound means the directory is not a hackpack project.
var ErrNotFound = errors.New(FileName + " not found")

// Manifest is the .hackpack.yml structure.
type Manifest struct {
	Version   string    `yaml:"version"`
	Project   string    `yaml:"project"`
	Framework string    `yaml:"framework"`
	Language  string    `yaml:"language"`
	Styling   string    `yaml:"styling"`
	Library   string    `yaml:"library"`
	Extension string    `yaml:"extension"`
	Options   Options   `yaml:"options,omitempty"`
	CreatedAt time.Time `yaml:"created_at"`
	Unwired   []Unwired `yaml:"unwired,omitempty"`
}

// Options mirrors variant.Options.
type Options struct {
	Router   bool `yaml:"router,omitempty"`
	Pinia    bool `yaml:"pinia,omitempty"`
	ESLint   bool `yaml:"eslint,omitempty"`
	Prettier bool `yaml:"prettier,omitempty"`
}

// Unwired is a feature the user still has to finish by hand.
type Unwired struct {
	Feature string `yaml:"feature"`
	Command string `yaml:"command,omitempty"`
}

// New records v for project.
func New(version, project string, v variant.ProjectVariant, now time.Time) *Manifest {
	o := v.Options()
	return &Manifest{
		Version:   version,
		Project:   project,
		Framework: string(v.Framework()),
		Language:  string(v.Language()),
		Styling:   string(v.Styling()),
		Library:   v.Library(),
		Extension: v.Extension(),
		Options:   Options{Router: o.Router, Pinia: o.Pinia, ESLint: o.ESLint, Prettier: o.Prettier},
		CreatedAt: now.UTC().Truncate(time.Second),
	}
}

// Variant rebuilds the project variant. jsx comes from the framework
// catalog; the recorded extension must agree with it.
func (m *Manifest) Variant(jsx variant.JSXStyle) (variant.ProjectVariant, error) {
	lang, err := variant.ParseLanguage(m.Language)
	if err != nil {
		return variant.ProjectVariant{}, err
	}
	styling, err := variant.ParseStyling(m.Styling)
	if err != nil {
		return variant.ProjectVariant{}, err
	}
	if lang == "" || styling == "" || styling == variant.Utility {
		return variant.ProjectVariant{}, fmt.Errorf("%s: language and styling must be resolved", FileName)
	}

	v := variant.New(variant.Framework(m.Framework), jsx, lang, styling, m.Library, variant.Options{
		Router:   m.Options.Router,
		Pinia:    m.Options.Pinia,
		ESLint:   m.Options.ESLint,
		Prettier: m.Options.Prettier,
	})
	if m.Extension != "" && m.Extension != v.Extension() {
		return variant.ProjectVariant{}, fmt.Errorf("%s: extension %q does not match %s", FileName, m.Extension, v)
	}
	return v, nil
}

// Path returns the manifest path for a project root.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads the manifest of the project at dir.
func Load(dir string) (*Manifest, error) {
	data, err := os.ReadFile(Path(dir))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w in %s", ErrNotFound, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Framework == "" {
		return nil, fmt.Errorf("parsing manifest: framework is missing")
	}
	return &m, nil
}

// Save writes m to dir atomically.
func Save(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := patch.WriteAtomic(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// SetUnwired replaces the unwired list, keeping it sorted by first
// appearance.
func (m *Manifest) SetUnwired(features []Unwired) {
	m.Unwired = nil
	seen := map[string]bool{}
	for _, u := range features {
		if !seen[u.Feature] {
			seen[u.Feature] = true
			m.Unwired = append(m.Unwired, u)
		}
	}
}
