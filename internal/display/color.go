// Package display provides terminal styling and aligned tables built on lipgloss.
//
// It respects the NO_COLOR environment variable (https://no-color.org/) and
// detects whether stdout is a terminal. Colors are automatically disabled when
// output is piped or redirected, or when NO_COLOR is set.
package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Palette entries use the basic ANSI colors so they follow the terminal theme.
var (
	renderer = lipgloss.NewRenderer(os.Stdout)

	boldStyle   lipgloss.Style
	dimStyle    lipgloss.Style
	greenStyle  lipgloss.Style
	yellowStyle lipgloss.Style
	cyanStyle   lipgloss.Style
	grayStyle   lipgloss.Style
	accentStyle lipgloss.Style
)

// enabled reports whether color output is active.
var enabled bool

func init() {
	SetEnabled(shouldEnable())
}

// shouldEnable determines whether to use color output.
func shouldEnable() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	// Respect FORCE_COLOR for testing.
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// SetEnabled overrides the auto-detected color state.
// Useful for testing or when --json forces plain output.
func SetEnabled(b bool) {
	enabled = b
	if b {
		renderer.SetColorProfile(termenv.ANSI)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	boldStyle = renderer.NewStyle().Bold(true)
	dimStyle = renderer.NewStyle().Faint(true)
	greenStyle = renderer.NewStyle().Foreground(lipgloss.Color("2"))
	yellowStyle = renderer.NewStyle().Foreground(lipgloss.Color("3"))
	cyanStyle = renderer.NewStyle().Foreground(lipgloss.Color("6"))
	grayStyle = renderer.NewStyle().Foreground(lipgloss.Color("8"))
	accentStyle = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
}

// Enabled reports whether color output is currently active.
func Enabled() bool {
	return enabled
}

// Bold returns text rendered in bold.
func Bold(text string) string { return boldStyle.Render(text) }

// Dim returns text rendered in dim/faint.
func Dim(text string) string { return dimStyle.Render(text) }

func Green(text string) string  { return greenStyle.Render(text) }
func Yellow(text string) string { return yellowStyle.Render(text) }
func Cyan(text string) string   { return cyanStyle.Render(text) }

// Gray returns text rendered in gray (bright black).
func Gray(text string) string { return grayStyle.Render(text) }

// Accent returns text rendered in the accent color (cyan + bold).
// Used for the "next prayer" highlight.
func Accent(text string) string { return accentStyle.Render(text) }

// Boldf formats and bolds a string.
func Boldf(format string, a ...interface{}) string {
	return Bold(fmt.Sprintf(format, a...))
}

// Width returns the printed width of s, ignoring escape sequences and
// counting wide runes correctly.
func Width(s string) int {
	return lipgloss.Width(s)
}
