// Package library holds the data that drives the post-generation pipeline:
// per framework, the files a generator writes and, per UI library, the
// packages to install, config files to write, anchor edits to apply and
// pages to render.
//
// Everything here is a description. Nothing in this package touches disk
// or runs commands.
package library

import (
	"fmt"

	"github.com/AlgoFoe/hackpack/internal/configwriter"
	"github.com/AlgoFoe/hackpack/internal/install"
	"github.com/AlgoFoe/hackpack/internal/page"
	"github.com/AlgoFoe/hackpack/internal/patch"
	"github.com/AlgoFoe/hackpack/internal/variant"
)

// File roles. Each framework maps the roles it has to a relative path.
const (
	Layout       patch.Target = "layout"
	Page         patch.Target = "page"
	Stylesheet   patch.Target = "stylesheet"
	IndexHTML    patch.Target = "index-html"
	AppComponent patch.Target = "app-component"
	AppTemplate  patch.Target = "app-template"
	Main         patch.Target = "main"
)

// Plan is everything the pipeline does for one variant after the generator
// ran.
type Plan struct {
	Steps   []install.Step
	Configs []configwriter.Spec
	Edits   []patch.Edit
	Page    page.Spec
}

// merge appends q to p. A config in q replaces one in p with the same path,
// keeping p's position.
func (p Plan) merge(q Plan) Plan {
	p.Steps = append(append([]install.Step{}, p.Steps...), q.Steps...)
	p.Configs = append([]configwriter.Spec{}, p.Configs...)
	for _, spec := range q.Configs {
		replaced := false
		for i := range p.Configs {
			if p.Configs[i].Path == spec.Path {
				p.Configs[i] = spec
				replaced = true
			}
		}
		if !replaced {
			p.Configs = append(p.Configs, spec)
		}
	}
	p.Edits = append(append([]patch.Edit{}, p.Edits...), q.Edits...)
	if q.Page.Page.Path != "" {
		p.Page.Page = q.Page.Page
	}
	p.Page.Companions = append(append([]page.File{}, p.Page.Companions...), q.Page.Companions...)
	return p
}

// Targets returns the distinct edit targets in first-use order.
func (p Plan) Targets() []patch.Target {
	seen := map[patch.Target]bool{}
	var out []patch.Target
	for _, e := range p.Edits {
		if !seen[e.Target] {
			seen[e.Target] = true
			out = append(out, e.Target)
		}
	}
	return out
}

// EditsFor returns the edits aimed at target, in order.
func (p Plan) EditsFor(target patch.Target) []patch.Edit {
	var out []patch.Edit
	for _, e := range p.Edits {
		if e.Target == target {
			out = append(out, e)
		}
	}
	return out
}

// Env is what a plan builder may depend on besides the variant.
type Env struct {
	Variant variant.ProjectVariant
	Brand   page.Brand
}

// Descriptor describes one UI library on one framework.
type Descriptor struct {
	ID       string
	Label    string
	Requires variant.StylingMode
	Build    func(Env) Plan // nil for libraries that change nothing
}

// Framework describes a framework: its generator output and libraries.
type Framework struct {
	ID             variant.Framework
	Label          string
	JSX            variant.JSXStyle
	TypedOnly      bool
	DefaultUtility variant.StylingMode
	Utilities      []variant.StylingMode

	// Files maps roles to paths relative to the project root ({ext}, {jsx}
	// allowed).
	Files map[patch.Target]string

	// Setup runs before anything else, for generators that leave
	// dependencies uninstalled.
	Setup []install.Step

	// Utility is the framework-level plan for utility styling, applied
	// before the library's plan. Nil when the generator handles it.
	Utility func(Env) Plan

	Libraries []Descriptor
}

// Info converts f to the resolver's view.
func (f Framework) Info() variant.FrameworkInfo {
	info := variant.FrameworkInfo{
		ID:             f.ID,
		Label:          f.Label,
		JSX:            f.JSX,
		TypedOnly:      f.TypedOnly,
		DefaultUtility: f.DefaultUtility,
		Utilities:      f.Utilities,
	}
	for _, l := range f.Libraries {
		info.Libraries = append(info.Libraries, variant.LibraryInfo{ID: l.ID, Label: l.Label, Requires: l.Requires})
	}
	return info
}

// Library looks up a descriptor by ID.
func (f Framework) Library(id string) (Descriptor, bool) {
	for _, l := range f.Libraries {
		if l.ID == id {
			return l, true
		}
	}
	return Descriptor{}, false
}

// Path resolves a role to a relative path for v.
func (f Framework) Path(v variant.ProjectVariant, role patch.Target) (string, bool) {
	p, ok := f.Files[role]
	if !ok {
		return "", false
	}
	return v.Expand(p), true
}

// Catalog is the set of supported frameworks. It implements variant.Catalog
// and page.Source.
type Catalog struct {
	frameworks []Framework
}

// NewCatalog builds a catalog from frameworks, in display order.
func NewCatalog(frameworks ...Framework) *Catalog {
	return &Catalog{frameworks: frameworks}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return NewCatalog(next(), viteReact(), vue(), angular(), astro())
}

// Frameworks implements variant.Catalog.
func (c *Catalog) Frameworks() []variant.FrameworkInfo {
	out := make([]variant.FrameworkInfo, len(c.frameworks))
	for i, f := range c.frameworks {
		out[i] = f.Info()
	}
	return out
}

// All returns the full framework descriptions.
func (c *Catalog) All() []Framework {
	return c.frameworks
}

// Framework looks up a framework by ID.
func (c *Catalog) Framework(id variant.Framework) (Framework, bool) {
	for _, f := range c.frameworks {
		if f.ID == id {
			return f, true
		}
	}
	return Framework{}, false
}

// Plan assembles the framework-level and library plans for v.
func (c *Catalog) Plan(v variant.ProjectVariant, brand page.Brand) (Plan, error) {
	fw, ok := c.Framework(v.Framework())
	if !ok {
		return Plan{}, fmt.Errorf("%w: framework %q", variant.ErrUnknownSelection, v.Framework())
	}
	lib, ok := fw.Library(v.Library())
	if !ok {
		return Plan{}, fmt.Errorf("%w: library %q for %s", variant.ErrUnknownSelection, v.Library(), fw.Label)
	}
	if v.UsesUtilityCSS() && !fw.Info().Offers(v.Styling()) {
		return Plan{}, fmt.Errorf("%w: %s does not support %s", variant.ErrIncompatibleSelection, fw.Label, v.Styling().Label())
	}
	if !(variant.Constraint{Library: lib.ID, Requires: lib.Requires}).SatisfiedBy(v.Styling()) {
		return Plan{}, fmt.Errorf("%w: %s requires %s", variant.ErrIncompatibleSelection, lib.Label, lib.Requires.Label())
	}

	env := Env{Variant: v, Brand: brand}
	plan := Plan{Steps: append([]install.Step{}, fw.Setup...)}
	if v.UsesUtilityCSS() && fw.Utility != nil {
		plan = plan.merge(fw.Utility(env))
	}
	if lib.Build != nil {
		plan = plan.merge(lib.Build(env))
	}
	return plan, nil
}

// PageSpec implements page.Source.
func (c *Catalog) PageSpec(v variant.ProjectVariant) (page.Spec, bool) {
	plan, err := c.Plan(v, page.DefaultBrand())
	if err != nil {
		return page.Spec{}, false
	}
	return plan.Page, !plan.Page.Empty()
}
