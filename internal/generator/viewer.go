package generator

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// inlineDiffLimit is the largest diff, in lines, printed inline.
const inlineDiffLimit = 20

var borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// ShowDiff prints diff to w, or opens a full-screen scrollable viewer when
// interactive is set and the diff is longer than a screenful.
func ShowDiff(w io.Writer, path, diff string, interactive bool) error {
	if diff == "" {
		return nil
	}
	if !interactive || strings.Count(diff, "\n") <= inlineDiffLimit {
		_, err := fmt.Fprint(w, diff)
		return err
	}

	p := tea.NewProgram(newDiffViewerModel(path, diff), tea.WithAltScreen(), tea.WithOutput(w))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to show diff: %w", err)
	}
	return nil
}

type diffViewerModel struct {
	path     string
	diff     string
	viewport viewport.Model
	ready    bool
	quit     bool
}

func newDiffViewerModel(path, diff string) diffViewerModel {
	return diffViewerModel{path: path, diff: diff}
}

func (m diffViewerModel) Init() tea.Cmd {
	return nil
}

func (m diffViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc", "enter":
			m.quit = true
			return m, tea.Quit
		case "pgup", "b":
			m.viewport.PageUp()
			return m, nil
		case "pgdown", "f", " ":
			m.viewport.PageDown()
			return m, nil
		}

	case tea.WindowSizeMsg:
		const verticalMargin = 5 // header 3, footer 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-verticalMargin)
			m.viewport.SetContent(m.diff)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - verticalMargin
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m diffViewerModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	title := fmt.Sprintf("─ %s ", m.path)
	b.WriteString(borderStyle.Render("┌"+title+strings.Repeat("─", max(0, m.viewport.Width-lipgloss.Width(title)+2))+"┐") + "\n")

	for _, line := range strings.Split(m.viewport.View(), "\n") {
		pad := strings.Repeat(" ", max(0, m.viewport.Width-lipgloss.Width(line)))
		b.WriteString(borderStyle.Render("│") + " " + line + pad + " " + borderStyle.Render("│") + "\n")
	}

	footer := fmt.Sprintf(" %3.f%%  [↑/↓] Scroll  [q] Next file ", m.viewport.ScrollPercent()*100)
	b.WriteString(borderStyle.Render("└"+strings.Repeat("─", max(0, m.viewport.Width-lipgloss.Width(footer)+2))+footer+"┘") + "\n")

	return b.String()
}
