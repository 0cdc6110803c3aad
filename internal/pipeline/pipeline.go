// Package pipeline runs the post-generation stages in order: generate,
// install, configure, patch, pages, manifest. Only a generator failure (or a
// cancelled context) aborts a run; every later failure degrades it into a
// warning and an unwired feature.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AlgoFoe/hackpack/internal/configwriter"
	"github.com/AlgoFoe/hackpack/internal/exec"
	"github.com/AlgoFoe/hackpack/internal/install"
	"github.com/AlgoFoe/hackpack/internal/library"
	"github.com/AlgoFoe/hackpack/internal/logger"
	"github.com/AlgoFoe/hackpack/internal/manifest"
	"github.com/AlgoFoe/hackpack/internal/page"
	"github.com/AlgoFoe/hackpack/internal/patch"
	"github.com/AlgoFoe/hackpack/internal/variant"
)

var errSkipped = errors.New("installation skipped")

// Scaffolder creates the project with the framework generator.
type Scaffolder interface {
	Command(parent, name string, v variant.ProjectVariant) (exec.Command, error)
	Scaffold(ctx context.Context, parent, name string, v variant.ProjectVariant) error
}

// Options configures a Pipeline.
type Options struct {
	Catalog    *library.Catalog
	Scaffolder Scaffolder
	Installer  *install.Installer
	Brand      page.Brand
	Log        logger.Logger
	Version    string

	// SkipInstall records every install step as unwired instead of running it.
	SkipInstall bool

	// Progress is called when a stage starts.
	Progress func(stage Stage, msg string)

	Now func() time.Time
}

// Pipeline runs the stages for one project.
type Pipeline struct {
	opts    Options
	configs *configwriter.Writer
	pages   *page.Generator
	log     logger.Logger
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	if opts.Catalog == nil {
		opts.Catalog = library.Default()
	}
	if opts.Log == nil {
		opts.Log = logger.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Progress == nil {
		opts.Progress = func(Stage, string) {}
	}
	pages := page.NewGenerator(opts.Catalog, opts.Brand)
	opts.Brand = pages.Brand()
	return &Pipeline{
		opts:    opts,
		configs: configwriter.NewWriter(opts.Log),
		pages:   pages,
		log:     opts.Log,
	}
}

// Brand returns the effective brand, defaults filled in.
func (p *Pipeline) Brand() page.Brand {
	return p.opts.Brand
}

func (p *Pipeline) plan(v variant.ProjectVariant) (library.Framework, library.Plan, error) {
	fw, ok := p.opts.Catalog.Framework(v.Framework())
	if !ok {
		return library.Framework{}, library.Plan{}, fmt.Errorf("%w: framework %q", variant.ErrUnknownSelection, v.Framework())
	}
	plan, err := p.opts.Catalog.Plan(v, p.opts.Brand)
	return fw, plan, err
}

// Run scaffolds parent/name and wires the resolved variant into it.
func (p *Pipeline) Run(ctx context.Context, parent, name string, res variant.Resolution) (*Report, error) {
	v := res.Variant
	dir := filepath.Join(parent, name)
	rep := &Report{Project: name, Dir: dir, Variant: v, Notes: res.Notes}

	fw, plan, err := p.plan(v)
	if err != nil {
		return rep, err
	}

	p.opts.Progress(StageGenerate, "Generating "+fw.Label+" project")
	if err := p.opts.Scaffolder.Scaffold(ctx, parent, name, v); err != nil {
		return rep, err
	}

	var pre, post []install.Step
	for _, s := range plan.Steps {
		if s.AfterConfig {
			post = append(post, s)
		} else {
			pre = append(pre, s)
		}
	}

	p.install(ctx, rep, pre)
	if err := ctx.Err(); err != nil {
		return rep, err
	}
	p.writeConfigs(rep, plan.Configs, false)
	p.install(ctx, rep, post)
	if err := ctx.Err(); err != nil {
		return rep, err
	}
	p.applyEdits(rep, fw, plan, false)
	p.writePages(ctx, rep, false)
	p.writeManifest(rep, true)

	p.log.Info("pipeline finished", logger.F("project", name), logger.F("degraded", rep.Degraded()))
	return rep, nil
}

// CustomizeOptions controls Customize.
type CustomizeOptions struct {
	// DryRun computes every change without writing; see Report.Changes.
	DryRun    bool
	SkipPages bool

	// Project is the name shown on generated pages. Defaults to the
	// directory name.
	Project string
}

// Customize re-runs the config, patch and page stages on an existing
// project. Install steps are not run. On a project that is already wired
// it changes nothing.
func (p *Pipeline) Customize(ctx context.Context, dir string, v variant.ProjectVariant, opts CustomizeOptions) (*Report, error) {
	name := opts.Project
	if name == "" {
		name = filepath.Base(dir)
	}
	rep := &Report{Project: name, Dir: dir, Variant: v}

	fw, plan, err := p.plan(v)
	if err != nil {
		return rep, err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return rep, fmt.Errorf("project directory %s not found", dir)
	}

	p.writeConfigs(rep, plan.Configs, opts.DryRun)
	if err := ctx.Err(); err != nil {
		return rep, err
	}
	p.applyEdits(rep, fw, plan, opts.DryRun)
	if !opts.SkipPages {
		p.writePages(ctx, rep, opts.DryRun)
	}
	if !opts.DryRun {
		p.writeManifest(rep, false)
	}
	return rep, ctx.Err()
}

func (p *Pipeline) install(ctx context.Context, rep *Report, steps []install.Step) {
	if len(steps) == 0 {
		return
	}
	inst := p.opts.Installer

	if p.opts.SkipInstall || inst == nil {
		manager := install.NPM
		if inst != nil {
			manager = inst.Manager()
		}
		for _, s := range steps {
			rep.unwire(install.Unwired{Feature: s.Feature, Command: s.Manual(manager), Err: errSkipped})
		}
		return
	}

	p.opts.Progress(StageInstall, "Installing dependencies")
	res := inst.Install(ctx, rep.Dir, steps)
	rep.Installed = append(rep.Installed, res.Installed...)
	for _, u := range res.Unwired {
		rep.unwire(u)
		rep.warn(Warning{Stage: StageInstall, Feature: u.Feature, Err: u.Err, Hint: "run: " + u.Command})
	}
}

func (p *Pipeline) writeConfigs(rep *Report, specs []configwriter.Spec, dryRun bool) {
	if len(specs) == 0 {
		return
	}
	p.opts.Progress(StageConfig, "Writing configuration")

	for _, spec := range specs {
		rel := rep.Variant.Expand(spec.Path)
		var (
			res *configwriter.Result
			err error
		)
		if dryRun {
			res, err = p.configs.Plan(rep.Dir, rep.Variant, spec)
		} else {
			res, err = p.configs.Write(rep.Dir, rep.Variant, spec)
		}
		if err != nil {
			rep.warn(Warning{Stage: StageConfig, File: rel, Feature: string(spec.Kind), Err: err, Hint: configHint(err)})
			rep.unwire(install.Unwired{Feature: string(spec.Kind) + " " + rel, Err: err})
			continue
		}
		if res.Changed() {
			rep.Changes = append(rep.Changes, Change{Stage: StageConfig, Path: rel, Before: res.Before, After: res.After})
		}
	}
}

func configHint(err error) string {
	if errors.Is(err, configwriter.ErrMarkersMissing) {
		return "the file no longer looks generated; edit it by hand"
	}
	return "fix the file and run `hackpack patch`"
}

func (p *Pipeline) applyEdits(rep *Report, fw library.Framework, plan library.Plan, dryRun bool) {
	targets := plan.Targets()
	if len(targets) == 0 {
		return
	}
	p.opts.Progress(StagePatch, "Patching generated files")

	for _, target := range targets {
		rel, ok := fw.Path(rep.Variant, target)
		if !ok {
			rep.warn(Warning{Stage: StagePatch, Err: fmt.Errorf("%s has no %s file", fw.Label, target)})
			continue
		}
		path := filepath.Join(rep.Dir, filepath.FromSlash(rel))
		edits := plan.EditsFor(target)

		var (
			res *patch.FileResult
			err error
		)
		if dryRun {
			res, err = patch.Plan(path, edits)
		} else {
			res, err = patch.ApplyFile(path, edits)
		}
		if err != nil {
			rep.warn(Warning{Stage: StagePatch, File: rel, Err: err, Hint: "the generator did not create it"})
			continue
		}

		for _, o := range res.Outcomes {
			p.log.Debug("edit", logger.F("file", rel), logger.F("edit", o.Edit), logger.F("status", o.Status))
			if o.Status == patch.StatusMissing || o.Status == patch.StatusRejected {
				rep.warn(Warning{Stage: StagePatch, File: rel, Feature: o.Edit, Err: errors.New(o.String())})
			}
		}
		if res.Changed() {
			rep.Changes = append(rep.Changes, Change{Stage: StagePatch, Path: rel, Before: []byte(res.Before), After: []byte(res.After)})
		}
	}
}

func (p *Pipeline) writePages(ctx context.Context, rep *Report, dryRun bool) {
	files, err := p.pages.Files(rep.Variant, rep.Project)
	if err != nil {
		rep.warn(Warning{Stage: StagePages, Feature: rep.Variant.Library(), Err: err})
		return
	}
	if len(files) == 0 {
		return
	}
	p.opts.Progress(StagePages, "Writing the welcome page")

	var changes []Change
	for _, f := range files {
		before, err := os.ReadFile(filepath.Join(rep.Dir, filepath.FromSlash(f.Path)))
		if err != nil {
			before = nil
		}
		if f.Remove {
			if before != nil {
				changes = append(changes, Change{Stage: StagePages, Path: f.Path, Before: before})
			}
			continue
		}
		if before == nil || string(before) != string(f.Content) {
			changes = append(changes, Change{Stage: StagePages, Path: f.Path, Before: before, After: f.Content})
		}
	}

	if !dryRun && len(changes) > 0 {
		if err := page.NewTransaction(rep.Dir, files).Commit(ctx); err != nil {
			rep.warn(Warning{Stage: StagePages, Feature: rep.Variant.Library(), Err: err, Hint: "no page files were changed"})
			rep.unwire(install.Unwired{Feature: "welcome page", Err: err})
			return
		}
	}
	rep.Changes = append(rep.Changes, changes...)
}

func (p *Pipeline) writeManifest(rep *Report, created bool) {
	m := manifest.New(p.opts.Version, rep.Project, rep.Variant, p.opts.Now())
	var unwired []manifest.Unwired
	if !created {
		if old, err := manifest.Load(rep.Dir); err == nil {
			m.Project = old.Project
			m.CreatedAt = old.CreatedAt
			unwired = old.Unwired
		}
	}
	for _, u := range rep.Unwired {
		unwired = append(unwired, manifest.Unwired{Feature: u.Feature, Command: u.Command})
	}
	m.SetUnwired(unwired)

	if err := manifest.Save(rep.Dir, m); err != nil {
		rep.warn(Warning{Stage: StageManifest, File: manifest.FileName, Err: err, Hint: "`hackpack patch` will not find this project"})
	}
}
