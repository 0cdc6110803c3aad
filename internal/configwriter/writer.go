// Package configwriter regenerates build configuration files (tailwind,
// postcss, tsconfig) for a project variant. When regeneration fails it falls
// back to marker-based edits of the existing file.
package configwriter

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/AlgoFoe/hackpack/internal/generator"
	"github.com/AlgoFoe/hackpack/internal/logger"
	"github.com/AlgoFoe/hackpack/internal/patch"
	"github.com/AlgoFoe/hackpack/internal/variant"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Kind is the type of configuration file a Spec produces.
type Kind string

const (
	TailwindConfig Kind = "tailwind-config"
	PostCSSConfig  Kind = "postcss-config"
	PostCSSRC      Kind = "postcssrc"
	TSConfigPaths  Kind = "tsconfig-paths"
)

// ErrMarkersMissing is returned when regeneration failed and the existing
// file lacks a marker the fallback edits need. The file is left unchanged.
var ErrMarkersMissing = errors.New("config markers missing")

// Spec describes one configuration file.
type Spec struct {
	Kind Kind
	Path string // relative to the project root, may contain {ext}

	// Template is the file name under templates/. Unused for TSConfigPaths.
	Template string
	Data     map[string]any

	// Paths are merged into compilerOptions.paths for TSConfigPaths.
	BaseURL string
	Paths   map[string][]string

	// Markers must all be present before Fallback edits run.
	Markers  []patch.Pattern
	Fallback []patch.Edit
}

// Mode tells how a file was (or would be) produced.
type Mode int

const (
	Unchanged Mode = iota
	Regenerated
	Patched
)

func (m Mode) String() string {
	switch m {
	case Regenerated:
		return "regenerated"
	case Patched:
		return "patched"
	default:
		return "unchanged"
	}
}

// Result is the outcome of writing one Spec.
type Result struct {
	Path     string
	Mode     Mode
	Before   []byte
	After    []byte
	Outcomes []patch.Outcome

	// RegenErr is why regeneration was abandoned in favour of the fallback.
	RegenErr error

	mode fs.FileMode
}

// Changed reports whether the file content differs after the write.
func (r *Result) Changed() bool {
	return string(r.Before) != string(r.After)
}

// Writer renders and writes configuration files.
type Writer struct {
	renderer *generator.Renderer
	log      logger.Logger
}

// NewWriter creates a Writer. A nil logger discards diagnostics.
func NewWriter(log logger.Logger) *Writer {
	if log == nil {
		log = logger.Discard()
	}
	return &Writer{renderer: generator.NewRenderer(), log: log}
}

// Write produces spec's file inside the project at dir.
func (w *Writer) Write(dir string, v variant.ProjectVariant, spec Spec) (*Result, error) {
	res, err := w.Plan(dir, v, spec)
	if err != nil {
		return res, err
	}
	if !res.Changed() {
		return res, nil
	}
	if err := patch.WriteAtomic(res.Path, res.After, res.mode); err != nil {
		return res, fmt.Errorf("writing %s: %w", res.Path, err)
	}
	return res, nil
}

// Plan computes what Write would do without touching the file.
func (w *Writer) Plan(dir string, v variant.ProjectVariant, spec Spec) (*Result, error) {
	path := filepath.Join(dir, filepath.FromSlash(v.Expand(spec.Path)))
	res := &Result{Path: path, mode: 0644}
	log := w.log.WithFields(logger.F("file", spec.Path), logger.F("kind", spec.Kind))

	existing, err := readExisting(path)
	if err != nil {
		return res, err
	}
	if existing != nil {
		res.Before = existing.content
		res.mode = existing.mode
	}

	after, regenErr := w.regenerate(path, v, spec, res.Before)
	if regenErr == nil {
		res.After = after
		res.Mode = Regenerated
		if !res.Changed() {
			res.Mode = Unchanged
		}
		log.Debug("config regenerated", logger.F("changed", res.Changed()))
		return res, nil
	}

	res.RegenErr = regenErr
	log.Warn("regeneration failed, patching existing file", logger.F("err", regenErr))

	if existing == nil {
		return res, fmt.Errorf("regenerating %s: %w", spec.Path, regenErr)
	}
	return res, w.fallback(res, spec)
}

func (w *Writer) regenerate(path string, v variant.ProjectVariant, spec Spec, existing []byte) ([]byte, error) {
	parent := filepath.Dir(path)
	info, err := os.Stat(parent)
	if err != nil {
		return nil, fmt.Errorf("project layout: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project layout: %s is not a directory", parent)
	}

	switch spec.Kind {
	case TSConfigPaths:
		if existing == nil {
			return nil, fmt.Errorf("%s does not exist", spec.Path)
		}
		return mergeTSConfigPaths(existing, spec.BaseURL, spec.Paths)
	case TailwindConfig, PostCSSConfig, PostCSSRC:
		if spec.Template == "" {
			return nil, fmt.Errorf("%s: no template", spec.Kind)
		}
		return w.renderer.RenderFS(templates, "templates/"+spec.Template, templateData(v, spec))
	default:
		return nil, fmt.Errorf("unknown config kind %q", spec.Kind)
	}
}

func (w *Writer) fallback(res *Result, spec Spec) error {
	text := string(res.Before)

	if len(spec.Fallback) == 0 {
		res.After = res.Before
		return fmt.Errorf("%w: %s has no fallback edits", ErrMarkersMissing, spec.Path)
	}

	// Already patched on an earlier run.
	applied := true
	for _, e := range spec.Fallback {
		if !patch.Matches(e.Guard(), text) {
			applied = false
			break
		}
	}

	if !applied {
		for _, m := range spec.Markers {
			if !patch.Matches(m, text) {
				res.After = res.Before
				return fmt.Errorf("%w: %s has no %s", ErrMarkersMissing, spec.Path, m)
			}
		}
	}

	after, outcomes := patch.Apply(text, spec.Fallback)
	res.After = []byte(after)
	res.Outcomes = outcomes
	res.Mode = Patched
	if !res.Changed() {
		res.Mode = Unchanged
	}
	return nil
}

func templateData(v variant.ProjectVariant, spec Spec) map[string]any {
	data := map[string]any{
		"Typed":     v.Typed(),
		"Ext":       v.Extension(),
		"Framework": string(v.Framework()),
		"Library":   v.Library(),
		"Major":     v.Styling().Major(),
	}
	for k, val := range spec.Data {
		data[k] = val
	}
	return data
}

type existingFile struct {
	content []byte
	mode    fs.FileMode
}

func readExisting(path string) (*existingFile, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &existingFile{content: content, mode: info.Mode().Perm()}, nil
}
