// Package page renders the landing page and companion files (toaster,
// provider wrapper, demo component) that show a UI library working in a
// freshly generated project.
package page

import (
	"embed"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/AlgoFoe/hackpack/internal/generator"
	"github.com/AlgoFoe/hackpack/internal/variant"
)

//go:embed templates
var templates embed.FS

// ErrNoPage is returned by Render when the variant's library ships no page.
var ErrNoPage = errors.New("library has no landing page")

// Brand is the text shown on generated pages and in the layout metadata.
type Brand struct {
	Name        string
	Tagline     string
	Title       string
	Description string
	Theme       string // daisyUI theme on <html data-theme>
}

// DefaultBrand is used when the config file sets nothing.
func DefaultBrand() Brand {
	return Brand{
		Name:        "HackPack",
		Tagline:     "Build Fast, Ship Faster! 🚀",
		Title:       "HackPack Turbo — Build Fast, Ship Faster",
		Description: "Web application created with HackPack",
		Theme:       "corporate",
	}
}

// File is one generated file. Path is relative to the project root and may
// contain {ext} or {jsx}.
type File struct {
	Path     string
	Template string // path under templates/
	Remove   bool   // delete Path instead of writing it
}

// Spec lists the files a library contributes.
type Spec struct {
	Page       File
	Companions []File
}

// Empty reports whether the spec generates nothing.
func (s Spec) Empty() bool {
	return s.Page.Path == "" && len(s.Companions) == 0
}

// Source maps a variant to its page spec. The library catalog implements it.
type Source interface {
	PageSpec(v variant.ProjectVariant) (Spec, bool)
}

// Rendered is a File with its content resolved.
type Rendered struct {
	Path    string // relative, expanded
	Content []byte
	Remove  bool
}

type data struct {
	Typed    bool
	Ext      string
	JSXExt   string
	Project  string
	PagePath string
	Brand    Brand
}

// Generator renders page specs.
type Generator struct {
	source   Source
	brand    Brand
	renderer *generator.Renderer
}

// NewGenerator creates a Generator. Empty brand fields fall back to
// DefaultBrand.
func NewGenerator(source Source, brand Brand) *Generator {
	def := DefaultBrand()
	if brand.Name == "" {
		brand.Name = def.Name
	}
	if brand.Tagline == "" {
		brand.Tagline = def.Tagline
	}
	if brand.Title == "" {
		brand.Title = def.Title
	}
	if brand.Description == "" {
		brand.Description = def.Description
	}
	if brand.Theme == "" {
		brand.Theme = def.Theme
	}
	return &Generator{source: source, brand: brand, renderer: generator.NewRenderer()}
}

// Brand returns the effective brand.
func (g *Generator) Brand() Brand {
	return g.brand
}

// Render returns the landing page for v.
func (g *Generator) Render(v variant.ProjectVariant, project string) (string, error) {
	spec, ok := g.source.PageSpec(v)
	if !ok || spec.Page.Path == "" {
		return "", fmt.Errorf("%w: %s", ErrNoPage, v)
	}
	content, err := g.render(spec.Page, g.dataFor(v, spec, project))
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// Files renders every file of v's spec: the page first, then companions in
// order. A variant without a spec yields nothing.
func (g *Generator) Files(v variant.ProjectVariant, project string) ([]Rendered, error) {
	spec, ok := g.source.PageSpec(v)
	if !ok || spec.Empty() {
		return nil, nil
	}
	d := g.dataFor(v, spec, project)

	var files []Rendered
	all := spec.Companions
	if spec.Page.Path != "" {
		all = append([]File{spec.Page}, spec.Companions...)
	}
	for _, f := range all {
		path := v.Expand(f.Path)
		if f.Remove {
			files = append(files, Rendered{Path: path, Remove: true})
			continue
		}
		content, err := g.render(f, d)
		if err != nil {
			return nil, err
		}
		files = append(files, Rendered{Path: path, Content: content})
	}
	return files, nil
}

// NewTransaction stages files under dir without committing them.
func NewTransaction(dir string, files []Rendered) *generator.Transaction {
	tx := generator.NewTransaction()
	for _, f := range files {
		abs := filepath.Join(dir, filepath.FromSlash(f.Path))
		if f.Remove {
			tx.RemoveFile(abs)
		} else {
			tx.AddFile(abs, f.Content, 0644)
		}
	}
	return tx
}

func (g *Generator) dataFor(v variant.ProjectVariant, spec Spec, project string) data {
	return data{
		Typed:    v.Typed(),
		Ext:      v.Extension(),
		JSXExt:   v.ComponentExtension(),
		Project:  project,
		PagePath: v.Expand(spec.Page.Path),
		Brand:    g.brand,
	}
}

func (g *Generator) render(f File, d data) ([]byte, error) {
	if f.Template == "" {
		return nil, fmt.Errorf("%s: no template", f.Path)
	}
	content, err := g.renderer.RenderFS(templates, "templates/"+f.Template, d)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", f.Path, err)
	}
	return content, nil
}
