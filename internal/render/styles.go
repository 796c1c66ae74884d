package render

import "github.com/charmbracelet/lipgloss"

var (
	Accent     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))
	Muted      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Bold(true)

	cardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#6C7086")).
		Padding(0, 1)
)
