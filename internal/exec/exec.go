package exec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Command describes one external process invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory of the process. The hackpack process
	// itself never changes directory.
	Dir string
	Env []string
	// Message labels the spinner. Empty means stream output instead.
	Message string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner runs external commands. Stages depend on this interface so tests can
// record invocations instead of spawning processes.
type Runner interface {
	RunCommand(ctx context.Context, c Command) error
}

// Executor runs external commands with a spinner or streamed output.
type Executor struct {
	stdout  io.Writer
	stderr  io.Writer
	env     []string
	dir     string
	spinner bool

	// swapped in tests
	commandFunc func(name string, args ...string) *exec.Cmd
}

// Options configures command execution.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Env    []string // Additional environment variables
	Dir    string   // Default working directory
	// Spinner hides command output behind a spinner for commands that
	// carry a message.
	Spinner bool
	// Verbose streams command output with a prefix and disables the spinner.
	Verbose bool
}

// NewExecutor creates an executor with sensible defaults.
func NewExecutor(opts *Options) *Executor {
	if opts == nil {
		opts = &Options{Spinner: true}
	}

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	spin := opts.Spinner
	if opts.Verbose {
		stdout = NewStreamingWriter(stdout, "  │ ", lipgloss.Color("241"))
		stderr = NewStreamingWriter(stderr, "  │ ", lipgloss.Color("241"))
		spin = false
	}

	return &Executor{
		stdout:      stdout,
		stderr:      stderr,
		env:         opts.Env,
		dir:         opts.Dir,
		spinner:     spin,
		commandFunc: exec.Command,
	}
}

// RunCommand implements Runner. Commands with a Message run behind the
// spinner when it is enabled; everything else streams.
func (e *Executor) RunCommand(ctx context.Context, c Command) error {
	if c.Message != "" && e.spinner {
		return e.runQuiet(ctx, c)
	}
	return e.run(ctx, c, e.stdout, e.stderr)
}

func (e *Executor) run(ctx context.Context, c Command, stdout, stderr io.Writer) error {
	cmd := e.commandFunc(c.Name, c.Args...)
	cmd.Dir = e.dir
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	if env := e.environ(c); len(env) > 0 {
		base := cmd.Env
		if base == nil {
			base = os.Environ()
		}
		cmd.Env = append(base, env...)
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		if isCommandNotFound(err) {
			return notFound(err, c.Name)
		}
		return fmt.Errorf("starting %s: %w", c.Name, err)
	}
	defer flush(stdout, stderr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- cmd.Wait()
	}()

	select {
	case <-ctx.Done():
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		<-errCh
		return fmt.Errorf("%s cancelled: %w", c.Name, ctx.Err())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%s failed: %w", c.Name, err)
		}
		return nil
	}
}

// flush writes out a trailing line the process left without a newline.
func flush(writers ...io.Writer) {
	for _, w := range writers {
		if f, ok := w.(interface{ Flush() error }); ok {
			_ = f.Flush()
		}
	}
}

// environ merges the executor's extra variables with the command's. Neither
// slice is modified.
func (e *Executor) environ(c Command) []string {
	env := make([]string, 0, len(e.env)+len(c.Env))
	env = append(env, e.env...)
	return append(env, c.Env...)
}

// runQuiet runs c behind a progress spinner. The tail of its output is
// attached to the error when the command fails.
func (e *Executor) runQuiet(ctx context.Context, c Command) error {
	captured := newTailBuffer(4096)

	done := make(chan error, 1)
	go func() {
		done <- e.run(ctx, c, captured, captured)
	}()

	p := tea.NewProgram(newSpinnerModel(c.Message), tea.WithOutput(e.stderr), tea.WithInput(nil))
	finished := make(chan struct{})
	go func() {
		_, _ = p.Run()
		close(finished)
	}()

	err := <-done
	p.Send(spinnerDoneMsg{err: err})

	select {
	case <-finished:
	case <-time.After(200 * time.Millisecond):
		p.Quit()
	}

	if err != nil && captured.Len() > 0 {
		return fmt.Errorf("%w\n%s", err, strings.TrimRight(captured.String(), "\n"))
	}
	return err
}

// spinnerModel is the bubbletea model for the spinner
type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

type spinnerDoneMsg struct {
	err error
}

func newSpinnerModel(message string) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return fmt.Sprintf("❌ %s\n", m.message)
		}
		return fmt.Sprintf("✅ %s\n", m.message)
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
}

func isCommandNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) ||
		strings.Contains(err.Error(), "executable file not found")
}

// notFound explains a missing package manager or runner binary.
func notFound(err error, name string) error {
	hint := "install Node.js from https://nodejs.org"
	switch name {
	case "pnpm", "yarn":
		hint = "run `corepack enable` or pick another --package-manager"
	case "bun", "bunx":
		hint = "install Bun from https://bun.sh or pick another --package-manager"
	}
	return fmt.Errorf("%w\n💡 %s is not installed: %s", err, name, hint)
}
