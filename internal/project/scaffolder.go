package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/AlgoFoe/hackpack/internal/exec"
	"github.com/AlgoFoe/hackpack/internal/install"
	"github.com/AlgoFoe/hackpack/internal/logger"
	"github.com/AlgoFoe/hackpack/internal/variant"
)

var (
	// ErrGeneratorFailed means the framework generator exited non-zero or
	// did not create the project directory.
	ErrGeneratorFailed = errors.New("project generator failed")

	// ErrProjectExists is returned when the target directory is taken.
	ErrProjectExists = errors.New("project directory already exists")

	ErrInvalidName = errors.New("invalid project name")
)

// DefaultGenerators are the package specs run for each framework.
var DefaultGenerators = map[variant.Framework]string{
	variant.Next:      "create-next-app@latest",
	variant.ViteReact: "create-vite@latest",
	variant.Vue:       "create-vue@latest",
	variant.Angular:   "@angular/cli@latest",
	variant.Astro:     "create-astro@latest",
}

// npm package name rules, minus scopes.
var validName = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidateName checks that name works as a directory and npm package name.
func ValidateName(name string) error {
	if len(name) > 214 || !validName.MatchString(name) {
		return fmt.Errorf("%w: %q (lowercase letters, digits, '.', '_' and '-' only)", ErrInvalidName, name)
	}
	return nil
}

// Scaffolder runs framework generators.
type Scaffolder struct {
	runner     exec.Runner
	manager    install.Manager
	generators map[variant.Framework]string
	log        logger.Logger
}

// NewScaffolder creates a scaffolder. generators overrides entries of
// DefaultGenerators, e.g. to pin create-next-app@15.
func NewScaffolder(runner exec.Runner, manager install.Manager, generators map[variant.Framework]string, log logger.Logger) *Scaffolder {
	specs := make(map[variant.Framework]string, len(DefaultGenerators))
	for fw, spec := range DefaultGenerators {
		specs[fw] = spec
	}
	for fw, spec := range generators {
		if spec != "" {
			specs[fw] = spec
		}
	}
	if manager == "" {
		manager = install.NPM
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Scaffolder{runner: runner, manager: manager, generators: specs, log: log}
}

// Command returns the generator invocation creating parent/name for v.
func (s *Scaffolder) Command(parent, name string, v variant.ProjectVariant) (exec.Command, error) {
	spec, ok := s.generators[v.Framework()]
	if !ok {
		return exec.Command{}, fmt.Errorf("%w: framework %q", variant.ErrUnknownSelection, v.Framework())
	}

	var (
		args    []string
		env     []string
		message string
	)
	switch v.Framework() {
	case variant.Next:
		args = []string{spec, name}
		if v.Typed() {
			args = append(args, "--ts")
		} else {
			args = append(args, "--js")
		}
		if v.UsesUtilityCSS() {
			args = append(args, "--tailwind")
		} else {
			args = append(args, "--no-tailwind")
		}
		args = append(args, "--eslint", "--app", "--src-dir", "--import-alias", "@/*", s.manager.Flag())
		env = []string{"NEXT_TELEMETRY_DISABLED=1", "CI=true"}
		message = "Creating Next.js project"

	case variant.ViteReact:
		template := "react"
		if v.Typed() {
			template = "react-ts"
		}
		args = []string{spec, name, "--template", template}
		message = "Creating Vite + React project"

	case variant.Vue:
		args = []string{spec, name}
		opts := v.Options()
		for _, f := range []struct {
			on   bool
			flag string
		}{
			{v.Typed(), "--ts"},
			{opts.Router, "--router"},
			{opts.Pinia, "--pinia"},
			{opts.ESLint, "--eslint"},
			{opts.Prettier, "--prettier"},
		} {
			if f.on {
				args = append(args, f.flag)
			}
		}
		if len(args) == 2 {
			// create-vue prompts unless at least one feature flag is given.
			args = append(args, "--default")
		}
		env = []string{"CI=true"}
		message = "Creating Vue project"

	case variant.Angular:
		args = []string{spec, "new", name, "--routing", "--style=css", "--defaults", "--package-manager=" + string(s.manager)}
		message = "Creating Angular project"

	case variant.Astro:
		args = []string{spec, name, "--template", "basics", "--install", "--no-git", "--yes"}
		message = "Creating Astro project"
	}

	bin, argv := s.manager.ExecArgs(args)
	return exec.Command{Name: bin, Args: argv, Dir: parent, Env: env, Message: message}, nil
}

// Scaffold creates parent/name with the framework generator. Any generator
// failure is fatal and wraps ErrGeneratorFailed.
func (s *Scaffolder) Scaffold(ctx context.Context, parent, name string, v variant.ProjectVariant) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	dir := filepath.Join(parent, name)
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("%w: %s", ErrProjectExists, dir)
	}

	cmd, err := s.Command(parent, name, v)
	if err != nil {
		return err
	}

	log := s.log.WithFields(logger.F("framework", v.Framework()), logger.F("dir", dir))
	log.Debug("running generator", logger.F("cmd", cmd.String()))

	if err := s.runner.RunCommand(ctx, cmd); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrGeneratorFailed, cmd.Name, err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s was not created", ErrGeneratorFailed, dir)
	}

	log.Info("project generated")
	return nil
}
