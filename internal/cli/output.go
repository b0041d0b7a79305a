package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	labelStyle   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
)

var stdout io.Writer = os.Stdout

func Success(format string, args ...interface{}) {
	fmt.Fprintln(stdout, successStyle.Render("✓ ")+fmt.Sprintf(format, args...))
}

func Warning(format string, args ...interface{}) {
	fmt.Fprintln(stdout, warningStyle.Render("⚠ ")+fmt.Sprintf(format, args...))
}

func Error(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✗ ")+fmt.Sprintf(format, args...))
}

// KeyValue prints an aligned "key  value" line.
func KeyValue(key, value string) {
	fmt.Fprintln(stdout, labelStyle.Width(12).Render(key)+" "+value)
}

func Muted(format string, args ...interface{}) {
	fmt.Fprintln(stdout, mutedStyle.Render(fmt.Sprintf(format, args...)))
}
