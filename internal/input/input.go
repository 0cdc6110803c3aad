// Package input provides interactive terminal input utilities.
//
// Prompts read from a Console. On a terminal, Select shows a bubbletea menu
// navigated with the arrow keys; otherwise it falls back to a numbered list
// read line by line, so piped answers work too.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("prompt cancelled")

// Choice is one entry of a Select menu.
type Choice struct {
	Value string
	Label string
}

// Console reads answers from in and writes prompts to out.
type Console struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewConsole creates a console. Menus are only used when interactive is true.
func NewConsole(in io.Reader, out io.Writer, interactive bool) *Console {
	return &Console{in: bufio.NewReader(in), out: out, interactive: interactive}
}

// Stdio returns a console on the process's standard streams, interactive when
// both are terminals.
func Stdio() *Console {
	return NewConsole(os.Stdin, os.Stdout, IsTerminal())
}

// IsTerminal reports whether stdin and stdout are attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Prompt asks the user for text input with an optional default value.
// If the user presses Enter without typing anything, the default is returned.
//
// Example:
//
//	name := console.Prompt("Enter the name of your project", "myapp")
//	// Displays: Enter the name of your project (myapp): _
func (c *Console) Prompt(message, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprint(c.out, promptStyle.Render(message)+" "+
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue))+": ")
	} else {
		fmt.Fprint(c.out, promptStyle.Render(message)+": ")
	}

	answer, err := c.readLine()
	if err != nil || answer == "" {
		return defaultValue
	}
	return answer
}

// Confirm asks the user a yes/no question.
// If defaultYes is true, pressing Enter returns true. Otherwise, returns false.
//
// Example:
//
//	ok := console.Confirm("Ready to create your project?", true)
//	// Displays: Ready to create your project? [Y/n]: _
func (c *Console) Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	fmt.Fprint(c.out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	answer, err := c.readLine()
	if err != nil || answer == "" {
		return defaultYes
	}

	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// Select asks the user to pick one of choices and returns its Value.
func (c *Console) Select(message string, choices []Choice) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("no choices for %q", message)
	}
	if c.interactive {
		return runMenu(message, choices, c.out)
	}
	return c.selectLine(message, choices)
}

func (c *Console) selectLine(message string, choices []Choice) (string, error) {
	fmt.Fprintln(c.out, promptStyle.Render(message))
	for i, choice := range choices {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, choice.Label)
	}
	fmt.Fprint(c.out, hintStyle.Render(fmt.Sprintf("Choose 1-%d (1)", len(choices)))+": ")

	answer, err := c.readLine()
	if err != nil && answer == "" {
		if errors.Is(err, io.EOF) {
			return choices[0].Value, nil
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return matchChoice(answer, choices)
}

// matchChoice accepts a 1-based index or a choice value. Empty picks the first.
func matchChoice(answer string, choices []Choice) (string, error) {
	if answer == "" {
		return choices[0].Value, nil
	}
	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(choices) {
			return "", fmt.Errorf("choice %d out of range 1-%d", n, len(choices))
		}
		return choices[n-1].Value, nil
	}
	for _, choice := range choices {
		if strings.EqualFold(choice.Value, answer) {
			return choice.Value, nil
		}
	}
	return "", fmt.Errorf("unknown choice %q", answer)
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	return strings.TrimSpace(line), err
}

// runMenu shows the arrow-key menu and blocks until the user picks or quits.
func runMenu(message string, choices []Choice, out io.Writer) (string, error) {
	p := tea.NewProgram(newMenuModel(message, choices), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("failed to show menu: %w", err)
	}

	m := final.(menuModel)
	if m.selected < 0 {
		return "", ErrCancelled
	}
	return choices[m.selected].Value, nil
}

// menuModel is the bubbletea model for Select.
type menuModel struct {
	message  string
	choices  []Choice
	cursor   int
	selected int
}

func newMenuModel(message string, choices []Choice) menuModel {
	return menuModel{message: message, choices: choices, selected: -1}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case "enter":
		m.selected = m.cursor
		return m, tea.Quit
	}
	return m, nil
}

func (m menuModel) View() string {
	var b strings.Builder

	b.WriteString(promptStyle.Render(m.message) + "\n")
	if m.selected >= 0 {
		b.WriteString("  " + selectedStyle.Render(m.choices[m.selected].Label) + "\n")
		return b.String()
	}

	b.WriteString(hintStyle.Render("  [↑/↓] Navigate    [Enter] Select    [q] Cancel") + "\n")
	for i, choice := range m.choices {
		if m.cursor == i {
			b.WriteString("  " + selectedStyle.Render("> "+choice.Label) + "\n")
		} else {
			b.WriteString("    " + choice.Label + "\n")
		}
	}
	return b.String()
}
