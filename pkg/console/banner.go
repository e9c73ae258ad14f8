package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	bannerRuleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
)

// Banner writes the welcome header shown before the provisioning prompts.
func Banner(w io.Writer, title, credit string) {
	rule := bannerRuleStyle.Render(strings.Repeat("-", 25))
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, bannerTitleStyle.Render(title))
	fmt.Fprintln(w)
	if credit != "" {
		fmt.Fprintln(w, FormatMutedMessage(credit))
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}
