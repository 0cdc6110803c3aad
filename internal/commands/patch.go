package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AlgoFoe/hackpack"
	"github.com/AlgoFoe/hackpack/internal/generator"
	"github.com/AlgoFoe/hackpack/internal/input"
	"github.com/AlgoFoe/hackpack/internal/library"
	"github.com/AlgoFoe/hackpack/internal/manifest"
	"github.com/AlgoFoe/hackpack/internal/output"
	"github.com/AlgoFoe/hackpack/internal/pipeline"
	"github.com/AlgoFoe/hackpack/internal/project"
	"github.com/AlgoFoe/hackpack/internal/variant"
)

type patchFlags struct {
	diff      bool
	skipPages bool
}

// PatchCmd creates the 'patch' command, which re-applies the recorded
// variant's configuration, edits and pages to an existing project.
func PatchCmd() *cobra.Command {
	var f patchFlags

	cmd := &cobra.Command{
		Use:   "patch [project-dir]",
		Short: "Re-apply UI library wiring to a HackPack project",
		Long: `Reads .hackpack.yml and re-runs the configuration, patch and page stages.
Edits that are already in place are left alone, so running it on a wired
project changes nothing. Packages are not installed.

Example:
  hackpack patch
  hackpack patch ./shop --diff`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runPatch(cmd, dir, f)
		},
	}

	cmd.Flags().BoolVar(&f.diff, "diff", false, "Show the changes as a diff without writing them")
	cmd.Flags().BoolVar(&f.skipPages, "skip-pages", false, "Leave the demo page and its companion files alone")

	return cmd
}

func runPatch(cmd *cobra.Command, dir string, f patchFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := configFrom(ctx)

	m, err := manifest.Load(dir)
	if err != nil {
		return err
	}
	catalog := library.Default()
	fw, ok := catalog.Framework(variant.Framework(m.Framework))
	if !ok {
		return fmt.Errorf("%s: unknown framework %q", manifest.FileName, m.Framework)
	}
	v, err := m.Variant(fw.JSX)
	if err != nil {
		return err
	}
	output.Verbose(fmt.Sprintf("Patching %s as %s", dir, v))
	checkStyling(dir, v)

	p := pipeline.New(pipeline.Options{
		Catalog: catalog,
		Brand:   cfg.Brand,
		Log:     newLogger(cfg),
		Version: hackpack.Version,
	})
	rep, err := p.Customize(ctx, dir, v, pipeline.CustomizeOptions{
		DryRun:    f.diff,
		SkipPages: f.skipPages,
		Project:   m.Project,
	})
	if err != nil {
		return err
	}

	if f.diff {
		if err := showChanges(cmd.OutOrStdout(), rep.Changes); err != nil {
			return err
		}
	} else {
		for _, c := range rep.Changes {
			output.Success(fmt.Sprintf("%s %s", changeVerb(c), c.Path))
		}
	}

	printReport(rep)
	if len(rep.Changes) == 0 && !rep.Degraded() {
		output.Success("Already up to date")
		return nil
	}
	output.Info(rep.Summary())
	return nil
}

// checkStyling warns when package.json disagrees with the manifest, which
// happens when an install was skipped or failed.
func checkStyling(dir string, v variant.ProjectVariant) {
	detected, version, err := project.DetectStyling(dir)
	if err != nil {
		output.Verbose("Could not detect Tailwind version: " + err.Error())
		return
	}
	if detected == v.Styling() {
		return
	}
	found := detected.Label()
	if version != nil {
		found = fmt.Sprintf("%s (%s)", found, version)
	}
	output.Warn(fmt.Sprintf("%s records %s but the project has %s", manifest.FileName, v.Styling().Label(), found))
}

func changeVerb(c pipeline.Change) string {
	switch {
	case c.Before == nil:
		return "Created"
	case c.After == nil:
		return "Removed"
	default:
		return "Updated"
	}
}

func showChanges(w io.Writer, changes []pipeline.Change) error {
	for _, c := range changes {
		diff := generator.GenerateDiff(c.Path, c.Path, c.Before, c.After, nil)
		if err := generator.ShowDiff(w, c.Path, diff, input.IsTerminal()); err != nil {
			return err
		}
	}
	return nil
}
