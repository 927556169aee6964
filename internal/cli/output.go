package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorDanger  = lipgloss.Color("#EF4444") // Red
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorInfo    = lipgloss.Color("#3B82F6") // Blue
	colorMuted   = lipgloss.Color("#6B7280") // Gray
)

var (
	successStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle  = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle    = lipgloss.NewStyle().Foreground(colorDanger)
	progressStyle = lipgloss.NewStyle().Foreground(colorInfo)
	headerStyle   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
)

// paint renders s with style unless color is disabled.
func paint(style lipgloss.Style, s string) string {
	if globalNoColor {
		return s
	}
	return style.Render(s)
}

// printInfo prints an informational message
func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Println(msg)
}

// printSuccess prints a success message
func printSuccess(msg string) {
	if globalQuiet {
		return
	}
	fmt.Printf("%s %s\n", paint(successStyle, "✓"), msg)
}

// printWarning prints a warning message
func printWarning(msg string) {
	if globalQuiet {
		return
	}
	fmt.Printf("%s %s\n", paint(warningStyle, "⚠"), msg)
}

// printErrorMsg prints an error message to stderr, even in quiet mode.
func printErrorMsg(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", paint(errorStyle, "✗"), msg)
}

// printProgress prints a progress indicator
func printProgress(msg string) {
	if globalQuiet {
		return
	}
	fmt.Printf("%s %s\n", paint(progressStyle, "→"), msg)
}

// printDetail prints an indented secondary line
func printDetail(msg string) {
	if globalQuiet {
		return
	}
	fmt.Printf("  %s\n", paint(mutedStyle, msg))
}

// printHeader prints a section header
func printHeader(title string) {
	if globalQuiet {
		return
	}
	fmt.Printf("\n%s\n", paint(headerStyle, title))
}
