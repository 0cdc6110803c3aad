// Package install adds the packages and runs the setup commands a UI library
// needs. A failing step degrades the run instead of aborting it.
package install

import (
	"context"
	"fmt"
	"strings"

	"github.com/AlgoFoe/hackpack/internal/exec"
	"github.com/AlgoFoe/hackpack/internal/logger"
)

// Step is one named feature to install. A step installs the project's
// declared dependencies, adds packages, runs a setup command through the
// package manager's runner, or a combination of these in that order.
type Step struct {
	Feature     string
	Sync        bool // install what package.json already declares
	Packages    []string
	DevPackages []string
	Flags       []string // extra flags for the add command, e.g. --force
	Exec        []string // e.g. {"shadcn@latest", "init", "-d"}
	Message     string

	// AfterConfig steps run once configuration files are written, for setup
	// commands that read them.
	AfterConfig bool
}

// Commands returns the concrete commands the step runs with m, in order.
func (s Step) Commands(m Manager, dir string) []exec.Command {
	msg := s.Message
	if msg == "" {
		msg = "Installing " + s.Feature
	}

	var cmds []exec.Command
	add := func(name string, args []string) {
		cmds = append(cmds, exec.Command{Name: name, Args: args, Dir: dir, Message: msg})
	}
	if s.Sync {
		add(m.InstallArgs())
	}
	if len(s.Packages) > 0 {
		add(m.AddArgs(false, s.Packages, s.Flags))
	}
	if len(s.DevPackages) > 0 {
		add(m.AddArgs(true, s.DevPackages, s.Flags))
	}
	if len(s.Exec) > 0 {
		add(m.ExecArgs(s.Exec))
	}
	return cmds
}

// Manual is the shell line a user runs to finish a failed step by hand.
func (s Step) Manual(m Manager) string {
	var lines []string
	for _, c := range s.Commands(m, "") {
		lines = append(lines, c.String())
	}
	return strings.Join(lines, " && ")
}

// Unwired is a feature that could not be installed.
type Unwired struct {
	Feature string
	Command string // manual fix
	Err     error
}

// Result summarizes an install run.
type Result struct {
	Installed []string
	Unwired   []Unwired
}

// Installer runs install steps in order. Nothing is retried.
type Installer struct {
	runner  exec.Runner
	manager Manager
	log     logger.Logger
}

// New creates an Installer.
func New(runner exec.Runner, manager Manager, log logger.Logger) *Installer {
	if manager == "" {
		manager = NPM
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Installer{runner: runner, manager: manager, log: log}
}

// Manager returns the package manager in use.
func (i *Installer) Manager() Manager {
	return i.manager
}

// Install runs steps inside dir. A failed step is logged and recorded in
// Result.Unwired; later steps still run. Only a cancelled context stops the
// loop early, in which case the remaining steps are reported as unwired.
func (i *Installer) Install(ctx context.Context, dir string, steps []Step) Result {
	var res Result

	for n, step := range steps {
		log := i.log.WithFields(logger.F("feature", step.Feature))

		if err := ctx.Err(); err != nil {
			for _, rest := range steps[n:] {
				res.Unwired = append(res.Unwired, Unwired{Feature: rest.Feature, Command: rest.Manual(i.manager), Err: err})
			}
			return res
		}

		if err := i.run(ctx, dir, step); err != nil {
			log.Warn("install step failed", logger.F("err", err))
			res.Unwired = append(res.Unwired, Unwired{Feature: step.Feature, Command: step.Manual(i.manager), Err: err})
			continue
		}
		log.Debug("install step done")
		res.Installed = append(res.Installed, step.Feature)
	}
	return res
}

func (i *Installer) run(ctx context.Context, dir string, step Step) error {
	cmds := step.Commands(i.manager, dir)
	if len(cmds) == 0 {
		return fmt.Errorf("step %q has nothing to run", step.Feature)
	}
	for _, c := range cmds {
		if err := i.runner.RunCommand(ctx, c); err != nil {
			return fmt.Errorf("%s: %w", c, err)
		}
	}
	return nil
}
