package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/AlgoFoe/hackpack/internal/library"
)

var (
	frameworkStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("cyan"))
	idStyle        = lipgloss.NewStyle().Width(16).PaddingLeft(2)
	labelStyle     = lipgloss.NewStyle().Width(42)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ListCmd creates the 'list' command, which prints the supported
// frameworks and UI libraries.
func ListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List supported frameworks and UI libraries",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printCatalog(cmd.OutOrStdout(), library.Default())
		},
	}
}

func printCatalog(w io.Writer, catalog *library.Catalog) {
	for i, fw := range catalog.All() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", frameworkStyle.Render(fw.Label), dimStyle.Render("--framework "+string(fw.ID)))
		fmt.Fprintln(w, dimStyle.Render("  "+frameworkNotes(fw)))
		for _, lib := range fw.Libraries {
			requires := ""
			if lib.Requires != "" {
				requires = dimStyle.Render("requires " + lib.Requires.Label())
			}
			fmt.Fprintln(w, idStyle.Render(lib.ID)+labelStyle.Render(lib.Label)+requires)
		}
	}
}

func frameworkNotes(fw library.Framework) string {
	var notes []string
	if fw.TypedOnly {
		notes = append(notes, "TypeScript only")
	} else {
		notes = append(notes, "TypeScript or JavaScript")
	}
	if fw.DefaultUtility == "" {
		notes = append(notes, "plain CSS only")
	} else {
		notes = append(notes, "Tailwind defaults to "+fw.DefaultUtility.Label())
		for _, u := range fw.Utilities {
			if u != fw.DefaultUtility {
				notes = append(notes, u.Label()+" on request")
			}
		}
	}
	return strings.Join(notes, ", ")
}
