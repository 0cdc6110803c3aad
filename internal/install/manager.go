package install

import (
	"fmt"
	"strings"
)

// Manager is a JavaScript package manager.
type Manager string

const (
	NPM  Manager = "npm"
	PNPM Manager = "pnpm"
	Yarn Manager = "yarn"
	Bun  Manager = "bun"
)

// Managers lists the supported package managers, default first.
var Managers = []Manager{NPM, PNPM, Yarn, Bun}

// ParseManager accepts a package manager name. Empty means npm.
func ParseManager(s string) (Manager, error) {
	switch m := Manager(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return NPM, nil
	case NPM, PNPM, Yarn, Bun:
		return m, nil
	default:
		return "", fmt.Errorf("unknown package manager %q (want npm, pnpm, yarn or bun)", s)
	}
}

// AddArgs returns the command that adds pkgs to the project.
func (m Manager) AddArgs(dev bool, pkgs []string, flags []string) (string, []string) {
	var args []string
	switch m {
	case NPM:
		args = []string{"install"}
		if dev {
			args = append(args, "-D")
		}
	case Yarn, PNPM, Bun:
		args = []string{"add"}
		if dev {
			args = append(args, "-D")
		}
	}
	args = append(args, pkgs...)
	args = append(args, m.translateFlags(flags)...)
	return string(m), args
}

// InstallArgs returns the command that installs the dependencies already
// listed in package.json.
func (m Manager) InstallArgs() (string, []string) {
	return string(m), []string{"install"}
}

// ExecArgs returns the command that runs a package binary, downloading it
// when needed (npx and friends).
func (m Manager) ExecArgs(args []string) (string, []string) {
	switch m {
	case PNPM:
		return "pnpm", append([]string{"dlx"}, args...)
	case Yarn:
		return "yarn", append([]string{"dlx"}, args...)
	case Bun:
		return "bunx", args
	default:
		return "npx", append([]string{"-y"}, args...)
	}
}

// Flag is the create-next-app flag selecting this manager.
func (m Manager) Flag() string {
	return "--use-" + string(m)
}

// --force is npm's way past peer dependency conflicts; the others either
// accept it or have no equivalent.
func (m Manager) translateFlags(flags []string) []string {
	if m == NPM {
		return flags
	}
	var out []string
	for _, f := range flags {
		if f == "--force" && m != PNPM {
			continue
		}
		out = append(out, f)
	}
	return out
}
