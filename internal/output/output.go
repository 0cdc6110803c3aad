// Package output prints styled status lines for the hackpack CLI.
//
//   - Success: 🔥 green bold
//   - Error: ❌ red bold (stderr)
//   - Warn: ⚠️ yellow (stderr)
//   - Info: ℹ️ cyan
//   - Step: indented gray
//   - Verbose: 🔍 gray, only after SetVerbose(true)
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	verboseMode bool

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose output for debugging.
// The root command calls it when --verbose is set.
func SetVerbose(v bool) {
	verboseMode = v
}

// IsVerbose reports whether verbose output is enabled.
func IsVerbose() bool {
	return verboseMode
}

// SetOutput redirects output, mostly for tests. Nil writers keep the current one.
func SetOutput(out, errOut io.Writer) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// Success prints a success message for a completed operation.
//
//	output.Success("Created project: myapp")
func Success(msg string) {
	fmt.Fprintln(stdout, successStyle.Render("🔥 "+msg))
}

// Error prints a failure that needs user attention.
func Error(msg string) {
	fmt.Fprintln(stderr, errorStyle.Render("❌ "+msg))
}

// Warn prints a degraded-but-continuing condition, such as a package that
// failed to install.
func Warn(msg string) {
	fmt.Fprintln(stderr, warnStyle.Render("⚠️  "+msg))
}

// Info prints a status update.
func Info(msg string) {
	fmt.Fprintln(stdout, infoStyle.Render("ℹ️  "+msg))
}

// Step prints an indented sub-item or next step.
//
//	output.Step("cd myapp")
//	output.Step("npm run dev")
func Step(msg string) {
	fmt.Fprintln(stdout, stepStyle.Render("   "+msg))
}

// Verbose prints a debug message only if verbose mode is enabled.
func Verbose(msg string) {
	if verboseMode {
		fmt.Fprintln(stdout, stepStyle.Render("🔍 "+msg))
	}
}
