// Package console renders user-facing terminal output and interactive
// prompts. Messages are written to stderr so stdout stays free for machine
// readable output such as the dry-run request body.
package console

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#56B6C2"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	verboseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).Italic(true)
)

// FormatSuccessMessage formats a success line.
func FormatSuccessMessage(message string) string {
	return successStyle.Render("✓ ") + message
}

// FormatInfoMessage formats an informational line.
func FormatInfoMessage(message string) string {
	return infoStyle.Render("ℹ ") + message
}

// FormatWarningMessage formats a warning line.
func FormatWarningMessage(message string) string {
	return warningStyle.Render("⚠ ") + message
}

// FormatErrorMessage formats an error line.
func FormatErrorMessage(message string) string {
	return errorStyle.Render("✗ " + message)
}

// FormatCommandMessage formats a shell command or URL the user may copy.
func FormatCommandMessage(command string) string {
	return commandStyle.Render(command)
}

// FormatVerboseMessage formats a line only shown in verbose mode.
func FormatVerboseMessage(message string) string {
	return verboseStyle.Render("  " + message)
}

// FormatMutedMessage formats secondary text such as credits or hints.
func FormatMutedMessage(message string) string {
	return mutedStyle.Render(message)
}

// FormatErrorWithSuggestions formats an error followed by a bulleted list of
// things the user can try.
func FormatErrorWithSuggestions(message string, suggestions []string) string {
	var b strings.Builder
	b.WriteString(FormatErrorMessage(message))
	if len(suggestions) > 0 {
		b.WriteString("\n\nSuggestions:\n")
		for _, s := range suggestions {
			b.WriteString("  • ")
			b.WriteString(s)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// LogVerbose prints message to stderr when verbose is set.
func LogVerbose(verbose bool, message string) {
	if verbose {
		fmt.Fprintln(os.Stderr, FormatVerboseMessage(message))
	}
}

// FormatFileSize renders a byte count with a binary unit.
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
