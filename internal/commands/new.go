package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AlgoFoe/hackpack"
	"github.com/AlgoFoe/hackpack/internal/config"
	"github.com/AlgoFoe/hackpack/internal/generator"
	"github.com/AlgoFoe/hackpack/internal/input"
	"github.com/AlgoFoe/hackpack/internal/install"
	"github.com/AlgoFoe/hackpack/internal/library"
	"github.com/AlgoFoe/hackpack/internal/output"
	"github.com/AlgoFoe/hackpack/internal/page"
	"github.com/AlgoFoe/hackpack/internal/pipeline"
	"github.com/AlgoFoe/hackpack/internal/project"
	"github.com/AlgoFoe/hackpack/internal/variant"
)

const defaultProjectName = "my-app"

type newFlags struct {
	framework      string
	language       string
	styling        string
	library        string
	dir            string
	packageManager string
	yes            bool
	skipInstall    bool
	dryRun         bool

	router   bool
	pinia    bool
	eslint   bool
	prettier bool
}

// NewCmd creates and returns the 'new' command for scaffolding projects
func NewCmd() *cobra.Command {
	var f newFlags

	cmd := &cobra.Command{
		Use:   "new [project-name]",
		Short: "Create a new project with a UI library wired in",
		Long: `Creates a new project with the framework's official generator, then:
• Installs the chosen UI library
• Writes its Tailwind and PostCSS configuration
• Patches the layout and stylesheet
• Adds a demo page that exercises the library

Anything that fails after the generator ran is reported with the command
to finish it by hand.

Example:
  hackpack new myapp
  hackpack new shop --framework next --lang ts --styling tailwind --ui daisyui --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, args, f)
		},
	}

	cmd.Flags().StringVar(&f.framework, "framework", "", "Framework: next, vite-react, vue, angular, astro")
	cmd.Flags().StringVar(&f.language, "lang", "", "Language: ts or js")
	cmd.Flags().StringVar(&f.styling, "styling", "", "Styling: tailwind, tailwind3, tailwind4 or plain")
	cmd.Flags().StringVar(&f.library, "ui", "", "UI library, see 'hackpack list'")
	cmd.Flags().StringVar(&f.dir, "dir", ".", "Parent directory for the project")
	cmd.Flags().StringVar(&f.packageManager, "package-manager", "", "Package manager: npm, pnpm, yarn, bun")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "Accept defaults and skip every prompt")
	cmd.Flags().BoolVar(&f.skipInstall, "skip-install", false, "Do not install packages; print the commands instead")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Show what would be run and written without doing it")
	cmd.Flags().BoolVar(&f.router, "router", false, "Vue: add Vue Router")
	cmd.Flags().BoolVar(&f.pinia, "pinia", false, "Vue: add Pinia")
	cmd.Flags().BoolVar(&f.eslint, "eslint", true, "Vue: add ESLint (--eslint=false to leave it out)")
	cmd.Flags().BoolVar(&f.prettier, "prettier", false, "Vue: add Prettier")

	return cmd
}

func runNew(cmd *cobra.Command, args []string, f newFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := configFrom(ctx)
	log := newLogger(cfg)
	console := input.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout(), input.IsTerminal())
	interactive := !f.yes && !cfg.NonInteractive

	var prompter variant.Prompter = variant.Defaults{}
	if interactive {
		prompter = consolePrompter{console}
	}

	name := defaultProjectName
	if len(args) > 0 {
		name = args[0]
	} else if interactive {
		name = console.Prompt("Project name", defaultProjectName)
	}
	if err := project.ValidateName(name); err != nil {
		return err
	}

	choices, err := choicesFrom(f, cfg.Defaults)
	if err != nil {
		return err
	}
	pm, err := install.ParseManager(pick(f.packageManager, string(cfg.PackageManager)))
	if err != nil {
		return err
	}

	catalog := library.Default()
	res, err := variant.NewResolver(catalog, prompter).Resolve(choices)
	if err != nil {
		return err
	}

	if res.Variant.Framework() == variant.Vue && interactive && !vueFlagsSet(cmd) {
		opts, err := askVueOptions(prompter)
		if err != nil {
			return err
		}
		v := res.Variant
		res.Variant = variant.New(v.Framework(), v.JSX(), v.Language(), v.Styling(), v.Library(), opts)
	}

	fw, _ := catalog.Framework(res.Variant.Framework())
	for _, note := range res.Notes {
		output.Info(note)
	}
	describe(fw, res.Variant, name, f.dir, pm)

	if interactive && !console.Confirm(fmt.Sprintf("Ready to create your %s project with these settings?", fw.Label), true) {
		output.Info("Cancelled, nothing was created")
		return nil
	}

	runner := newRunner()
	scaffolder := project.NewScaffolder(runner, pm, cfg.Generators, log)

	if f.dryRun {
		return preview(ctx, cmd.OutOrStdout(), catalog, scaffolder, cfg.Brand, pm, f.dir, name, res.Variant)
	}

	p := pipeline.New(pipeline.Options{
		Catalog:     catalog,
		Scaffolder:  scaffolder,
		Installer:   install.New(runner, pm, log),
		Brand:       cfg.Brand,
		Log:         log,
		Version:     hackpack.Version,
		SkipInstall: f.skipInstall,
		Progress: func(_ pipeline.Stage, msg string) {
			output.Info(msg)
		},
	})

	rep, err := p.Run(ctx, f.dir, name, res)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("interrupted; %s may be incomplete", filepath.Join(f.dir, name))
		}
		return err
	}

	printReport(rep)
	if rep.Degraded() {
		output.Warn(fmt.Sprintf("Created %s project %s with problems: %s", fw.Label, name, rep.Summary()))
	} else {
		output.Success(fmt.Sprintf("Created %s project: %s (%s)", fw.Label, name, rep.Summary()))
	}

	output.Info("Next steps:")
	output.Step("cd " + filepath.Join(f.dir, name))
	output.Step(devCommand(pm, fw.ID))
	return nil
}

func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

func choicesFrom(f newFlags, d config.Defaults) (variant.Choices, error) {
	lang, err := variant.ParseLanguage(pick(f.language, d.Language))
	if err != nil {
		return variant.Choices{}, err
	}
	styling, err := variant.ParseStyling(pick(f.styling, d.Styling))
	if err != nil {
		return variant.Choices{}, err
	}
	return variant.Choices{
		Framework: variant.Framework(pick(f.framework, d.Framework)),
		Language:  lang,
		Styling:   styling,
		Library:   pick(f.library, d.Library),
		Options: variant.Options{
			Router:   f.router,
			Pinia:    f.pinia,
			ESLint:   f.eslint,
			Prettier: f.prettier,
		},
	}, nil
}

func vueFlagsSet(cmd *cobra.Command) bool {
	for _, name := range []string{"router", "pinia", "eslint", "prettier"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func askVueOptions(p variant.Prompter) (variant.Options, error) {
	var opts variant.Options
	questions := []struct {
		msg  string
		def  bool
		into *bool
	}{
		{"Add Vue Router for single page application development?", false, &opts.Router},
		{"Add Pinia for state management?", false, &opts.Pinia},
		{"Add ESLint for code quality?", true, &opts.ESLint},
		{"Add Prettier for code formatting?", false, &opts.Prettier},
	}
	for _, q := range questions {
		ok, err := p.Confirm(q.msg, q.def)
		if err != nil {
			return opts, err
		}
		*q.into = ok
	}
	return opts, nil
}

func describe(fw library.Framework, v variant.ProjectVariant, name, dir string, pm install.Manager) {
	libLabel := v.Library()
	if lib, ok := fw.Library(v.Library()); ok {
		libLabel = lib.Label
	}
	output.Info("Project configuration:")
	output.Step("Name:            " + name)
	output.Step("Framework:       " + fw.Label)
	output.Step("Language:        " + v.Language().Label())
	output.Step("Styling:         " + v.Styling().Label())
	output.Step("UI library:      " + libLabel)
	output.Step("Package manager: " + string(pm))
	output.Step("Location:        " + filepath.Join(dir, name))
}

// preview prints the generator command, install commands and file operations
// a run would perform.
func preview(ctx context.Context, w io.Writer, catalog *library.Catalog, s *project.Scaffolder, brand page.Brand, pm install.Manager, parent, name string, v variant.ProjectVariant) error {
	c, err := s.Command(parent, name, v)
	if err != nil {
		return err
	}
	pages := page.NewGenerator(catalog, brand)
	plan, err := catalog.Plan(v, pages.Brand())
	if err != nil {
		return err
	}
	fw, _ := catalog.Framework(v.Framework())
	dir := filepath.Join(parent, name)

	fmt.Fprintf(w, "✓ [DRY RUN] Run %s\n", c)
	for _, step := range plan.Steps {
		fmt.Fprintf(w, "✓ [DRY RUN] Run %s\n", step.Manual(pm))
	}
	for _, spec := range plan.Configs {
		fmt.Fprintf(w, "✓ [DRY RUN] Write %s\n", filepath.Join(dir, v.Expand(spec.Path)))
	}
	for _, target := range plan.Targets() {
		if path, ok := fw.Path(v, target); ok {
			fmt.Fprintf(w, "✓ [DRY RUN] Patch %s (%d edits)\n", filepath.Join(dir, path), len(plan.EditsFor(target)))
		}
	}

	files, err := pages.Files(v, name)
	if err != nil {
		return err
	}
	ops := page.NewTransaction(dir, files).Operations()
	return generator.Execute(ctx, ops, generator.ExecuteOptions{DryRun: true, Force: true, Writer: w})
}

func printReport(rep *pipeline.Report) {
	for _, w := range rep.Warnings {
		output.Warn(w.String())
	}
	if len(rep.Unwired) > 0 {
		output.Info("Finish these by hand:")
		for _, u := range rep.Unwired {
			output.Step(fmt.Sprintf("%s: %s", u.Feature, u.Command))
		}
	}
}

func devCommand(pm install.Manager, fw variant.Framework) string {
	script := "dev"
	if fw == variant.Angular {
		script = "start"
	}
	if pm == install.NPM || pm == install.PNPM {
		return fmt.Sprintf("%s run %s", pm, script)
	}
	return fmt.Sprintf("%s %s", pm, script)
}

// consolePrompter answers resolver questions on the console.
type consolePrompter struct {
	console *input.Console
}

func (p consolePrompter) Confirm(message string, defaultYes bool) (bool, error) {
	return p.console.Confirm(message, defaultYes), nil
}

func (p consolePrompter) Select(message string, options []variant.Option) (string, error) {
	choices := make([]input.Choice, len(options))
	for i, o := range options {
		choices[i] = input.Choice{Value: o.Value, Label: o.Label}
	}
	return p.console.Select(message, choices)
}
