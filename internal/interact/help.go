package interact

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var commands = []struct {
	key  string
	desc string
}{
	{"j", "down"},
	{"k", "up"},
	{"<Space>", "switch Bought to BoughtX"},
	{"<Enter>", "send Enter to Quicken"},
	{"<Escape>", "quit"},
}

// PrintHelp writes the command summary shown before the loop starts.
func PrintHelp(w io.Writer) {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true)
	key := r.NewStyle().Foreground(lipgloss.Color("12")).Width(10)

	fmt.Fprintln(w, title.Render("Commands:"))
	for _, c := range commands {
		fmt.Fprintf(w, "\t%s- %s\n", key.Render(c.key), c.desc)
	}
}
