package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlgoFoe/hackpack/internal/exec"
	"github.com/AlgoFoe/hackpack/internal/install"
	"github.com/AlgoFoe/hackpack/internal/library"
	"github.com/AlgoFoe/hackpack/internal/manifest"
	"github.com/AlgoFoe/hackpack/internal/project"
	"github.com/AlgoFoe/hackpack/internal/variant"
)

// fakeScaffolder lays out a create-next-app project from testdata.
type fakeScaffolder struct {
	t    *testing.T
	err  error
	seen []variant.ProjectVariant
}

func (f *fakeScaffolder) Command(parent, name string, v variant.ProjectVariant) (exec.Command, error) {
	return exec.Command{Name: "create-next-app", Args: []string{name}, Dir: parent}, nil
}

func (f *fakeScaffolder) Scaffold(ctx context.Context, parent, name string, v variant.ProjectVariant) error {
	f.seen = append(f.seen, v)
	if f.err != nil {
		return f.err
	}
	scaffoldNext(f.t, filepath.Join(parent, name), v)
	return nil
}

func scaffoldNext(t *testing.T, dir string, v variant.ProjectVariant) {
	t.Helper()
	files := map[string]string{
		"layout.tsx":         v.Expand("src/app/layout.{ext}"),
		"page.tsx":           v.Expand("src/app/page.{ext}"),
		"globals.css":        "src/app/globals.css",
		"postcss.config.mjs": "postcss.config.mjs",
	}
	for src, dst := range files {
		data, err := os.ReadFile(filepath.Join("testdata", "next", src))
		require.NoError(t, err)
		path := filepath.Join(dir, filepath.FromSlash(dst))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, data, 0644))
	}
}

func read(t *testing.T, dir, rel string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(b)
}

type fixedPrompter struct {
	confirm bool
	asked   [][]variant.Option
}

func (p *fixedPrompter) Confirm(string, bool) (bool, error) { return p.confirm, nil }

func (p *fixedPrompter) Select(_ string, options []variant.Option) (string, error) {
	p.asked = append(p.asked, options)
	return options[0].Value, nil
}

func newPipeline(t *testing.T, sc Scaffolder, rec *exec.Recorder) *Pipeline {
	return New(Options{
		Catalog:    library.Default(),
		Scaffolder: sc,
		Installer:  install.New(rec, install.NPM, nil),
		Version:    "test",
		Now:        func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
}

var nextDaisy = variant.New(variant.Next, variant.JSXImplicit, variant.Typed, variant.UtilityV3, "daisyui", variant.Options{})

func TestRun_InstallFailureDegrades(t *testing.T) {
	parent := t.TempDir()
	rec := &exec.Recorder{Fail: func(c exec.Command) error {
		if strings.Contains(c.String(), "daisyui@4") {
			return errors.New("ERESOLVE unable to resolve dependency tree")
		}
		return nil
	}}

	rep, err := newPipeline(t, &fakeScaffolder{t: t}, rec).Run(context.Background(), parent, "app", variant.Resolution{Variant: nextDaisy})
	require.NoError(t, err)
	dir := filepath.Join(parent, "app")

	assert.Equal(t, []string{
		"npm install -D tailwindcss@3 postcss autoprefixer",
		"npm install -D daisyui@4",
		"npm install sonner",
	}, rec.Lines())
	for _, c := range rec.Commands {
		assert.Equal(t, dir, c.Dir)
	}

	require.Len(t, rep.Unwired, 1)
	assert.Equal(t, "daisyui", rep.Unwired[0].Feature)
	assert.Equal(t, "npm install -D daisyui@4", rep.Unwired[0].Command)
	require.NotEmpty(t, rep.Warnings)
	assert.Equal(t, StageInstall, rep.Warnings[0].Stage)
	assert.True(t, rep.Degraded())

	// Later stages still ran.
	assert.Contains(t, read(t, dir, "tailwind.config.js"), `plugins: [require("daisyui")],`)
	assert.Contains(t, read(t, dir, "postcss.config.mjs"), "autoprefixer: {},")
	css := read(t, dir, "src/app/globals.css")
	assert.True(t, strings.HasPrefix(css, "@tailwind base;\n@tailwind components;\n@tailwind utilities;\n"))
	assert.NotContains(t, css, `@import "tailwindcss";`)
	layout := read(t, dir, "src/app/layout.tsx")
	assert.Contains(t, layout, `<html lang="en" data-theme="corporate">`)
	assert.Contains(t, layout, "<Toaster />")
	assert.Contains(t, read(t, dir, "src/app/page.tsx"), "badge badge-accent")
	assert.FileExists(t, filepath.Join(dir, "src", "components", "ui", "toaster.tsx"))

	m, err := manifest.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "daisyui", m.Library)
	assert.Equal(t, "utility-v3", m.Styling)
	assert.Equal(t, []manifest.Unwired{{Feature: "daisyui", Command: "npm install -D daisyui@4"}}, m.Unwired)
}

func TestRun_GeneratorFailureAbortsBeforeInstall(t *testing.T) {
	parent := t.TempDir()
	rec := &exec.Recorder{}
	sc := &fakeScaffolder{t: t, err: fmt.Errorf("%w: exit status 1", project.ErrGeneratorFailed)}

	_, err := newPipeline(t, sc, rec).Run(context.Background(), parent, "app", variant.Resolution{Variant: nextDaisy})
	require.ErrorIs(t, err, project.ErrGeneratorFailed)
	assert.Empty(t, rec.Commands)
	assert.NoFileExists(t, filepath.Join(parent, "app", manifest.FileName))
}

func TestRun_DeclinedUpgradeNeverReachesGenerator(t *testing.T) {
	catalog := library.Default()
	prompter := &fixedPrompter{confirm: false}

	res, err := variant.NewResolver(catalog, prompter).Resolve(variant.Choices{
		Framework: variant.Next,
		Language:  variant.Typed,
		Styling:   variant.Plain,
		Library:   "daisyui",
	})
	require.NoError(t, err)

	require.Len(t, prompter.asked, 1)
	for _, o := range prompter.asked[0] {
		assert.NotContains(t, []string{"shadcn", "daisyui", "heroui", "tailwind-only"}, o.Value)
	}

	sc := &fakeScaffolder{t: t}
	rec := &exec.Recorder{}
	parent := t.TempDir()
	rep, err := newPipeline(t, sc, rec).Run(context.Background(), parent, "app", res)
	require.NoError(t, err)

	require.Len(t, sc.seen, 1)
	assert.Equal(t, variant.Plain, sc.seen[0].Styling())
	assert.Equal(t, "chakra", sc.seen[0].Library())
	assert.Equal(t, []string{"npm install @chakra-ui/react @emotion/react"}, rec.Lines())
	assert.NotEmpty(t, rep.Notes)
	assert.Contains(t, read(t, filepath.Join(parent, "app"), "src/app/layout.tsx"), "<Provider>")
}

func TestRun_SkipInstall(t *testing.T) {
	rec := &exec.Recorder{}
	p := New(Options{
		Scaffolder:  &fakeScaffolder{t: t},
		Installer:   install.New(rec, install.PNPM, nil),
		SkipInstall: true,
	})

	rep, err := p.Run(context.Background(), t.TempDir(), "app", variant.Resolution{Variant: nextDaisy})
	require.NoError(t, err)
	assert.Empty(t, rec.Commands)

	var cmds []string
	for _, u := range rep.Unwired {
		cmds = append(cmds, u.Command)
	}
	assert.Equal(t, []string{"pnpm add -D tailwindcss@3 postcss autoprefixer", "pnpm add -D daisyui@4", "pnpm add sonner"}, cmds)
}

func TestCustomize_Idempotent(t *testing.T) {
	parent := t.TempDir()
	p := newPipeline(t, &fakeScaffolder{t: t}, &exec.Recorder{})
	_, err := p.Run(context.Background(), parent, "app", variant.Resolution{Variant: nextDaisy})
	require.NoError(t, err)
	dir := filepath.Join(parent, "app")

	snapshot := map[string]string{}
	for _, rel := range []string{"src/app/layout.tsx", "src/app/globals.css", "src/app/page.tsx", "tailwind.config.js", "postcss.config.mjs", manifest.FileName} {
		snapshot[rel] = read(t, dir, rel)
	}

	rep, err := p.Customize(context.Background(), dir, nextDaisy, CustomizeOptions{})
	require.NoError(t, err)
	assert.Empty(t, rep.Changes)
	assert.Empty(t, rep.Warnings)
	for rel, want := range snapshot {
		assert.Equal(t, want, read(t, dir, rel), rel)
	}
}

func TestCustomize_DryRunWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app")
	scaffoldNext(t, dir, nextDaisy)
	before := read(t, dir, "src/app/layout.tsx")

	rep, err := newPipeline(t, nil, &exec.Recorder{}).Customize(context.Background(), dir, nextDaisy, CustomizeOptions{DryRun: true})
	require.NoError(t, err)

	paths := map[string]Stage{}
	for _, c := range rep.Changes {
		paths[c.Path] = c.Stage
	}
	assert.Equal(t, StageConfig, paths["tailwind.config.js"])
	assert.Equal(t, StagePatch, paths["src/app/layout.tsx"])
	assert.Equal(t, StagePages, paths["src/components/ui/toaster.tsx"])

	assert.Equal(t, before, read(t, dir, "src/app/layout.tsx"))
	assert.NoFileExists(t, filepath.Join(dir, "tailwind.config.js"))
	assert.NoFileExists(t, filepath.Join(dir, manifest.FileName))
}

func TestCustomize_SkipPagesAndMissingFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app")
	require.NoError(t, os.MkdirAll(dir, 0755))

	rep, err := newPipeline(t, nil, &exec.Recorder{}).Customize(context.Background(), dir, nextDaisy, CustomizeOptions{SkipPages: true})
	require.NoError(t, err)

	for _, c := range rep.Changes {
		assert.NotEqual(t, StagePages, c.Stage, c.Path)
	}
	var patchWarnings int
	for _, w := range rep.Warnings {
		if w.Stage == StagePatch {
			patchWarnings++
		}
	}
	assert.Equal(t, 2, patchWarnings, "layout and stylesheet are missing")
}

func TestReport_Summary(t *testing.T) {
	r := &Report{}
	assert.Equal(t, "no files changed", r.Summary())

	r.Changes = []Change{{Path: "a"}, {Path: "a"}}
	assert.Equal(t, "1 file changed", r.Summary())

	r.Changes = append(r.Changes, Change{Path: "b"})
	r.Warnings = []Warning{{Stage: StageInstall}, {Stage: StagePatch}}
	r.Unwired = []install.Unwired{{Feature: "daisyui"}}
	assert.Equal(t, "2 files changed, 2 warnings, 1 feature to finish by hand", r.Summary())
}

func TestWarning_String(t *testing.T) {
	w := Warning{Stage: StageConfig, File: "tailwind.config.js", Err: errors.New("boom"), Hint: "edit it"}
	assert.Equal(t, "[config] tailwind.config.js: boom (edit it)", w.String())
}
