package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var bannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#5FD7FF"))

// Banner styles the welcome message for the full-screen host.
func Banner(text string) string {
	if text == "" {
		return text
	}
	return bannerStyle.Render(text)
}
