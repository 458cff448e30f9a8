package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Styles used by the human-readable command output. Styling is only
// applied when stdout is a terminal; piped output stays plain.
var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleValue   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	styleTrusted = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleInvalid = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// render applies a style only when writing to a terminal.
func render(style lipgloss.Style, s string) string {
	if !stdoutIsTerminal() {
		return s
	}
	return style.Render(s)
}
