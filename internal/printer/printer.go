package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Style definitions for consistent console output across the application.
var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan
)

var out io.Writer = os.Stdout

// SetOutput redirects all Print functions to w and returns a function that
// restores the previous writer.
func SetOutput(w io.Writer) (restore func()) {
	prev := out
	out = w
	return func() { out = prev }
}

// SetNoColor disables, or re-enables, ANSI styling for all output.
func SetNoColor(disabled bool) {
	if disabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}

// Faint returns text with faint styling.
func Faint(text string) string { return faintStyle.Render(text) }

// Bold returns text with bold styling.
func Bold(text string) string { return boldStyle.Render(text) }

// Success returns text with success (green) styling.
func Success(text string) string { return successStyle.Render(text) }

// Error returns text with error (red) styling.
func Error(text string) string { return errorStyle.Render(text) }

// Warning returns text with warning (yellow) styling.
func Warning(text string) string { return warningStyle.Render(text) }

// Info returns text with info (cyan) styling.
func Info(text string) string { return infoStyle.Render(text) }

// Print functions write styled text to the output followed by a newline.

func PrintFaint(text string)   { writeln(Faint(text)) }
func PrintBold(text string)    { writeln(Bold(text)) }
func PrintSuccess(text string) { writeln(Success(text)) }
func PrintError(text string)   { writeln(Error(text)) }
func PrintWarning(text string) { writeln(Warning(text)) }
func PrintInfo(text string)    { writeln(Info(text)) }

// Println writes unstyled text.
func Println(text string) { writeln(text) }

func writeln(text string) {
	_, _ = fmt.Fprintln(out, text)
}
