// Package style centralizes the lipgloss styles the CLI uses for its
// banner, prompt, and diagnostic output, so every command renders
// errors and results the same way.
package style

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	Banner = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86"))

	Prompt = lipgloss.NewStyle().
		Foreground(lipgloss.Color("212"))

	Error = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("203"))

	Result = lipgloss.NewStyle().
		Foreground(lipgloss.Color("228"))
)

// Errorf renders a message in the diagnostic style, used for wrapping the
// error text from the lexer, parser, decorator, generator, or VM.
func Errorf(format string, args ...any) string {
	return Error.Render(fmt.Sprintf(format, args...))
}
