package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Base styles: noteloft neutral palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ece9f4")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c4c2d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565066"))

	// Accent: the violet the web app uses for primary actions
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b5cf6")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	// Destructive notifications and inline form errors
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565066"))

	// Sidebar
	navActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ece9f4")).
			Background(lipgloss.Color("#2a2440")).
			Bold(true)

	navItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	navLockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444054"))

	sidebarBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, true, false, false).
				BorderForeground(lipgloss.Color("#2a2440"))

	// Form inputs
	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8b5cf6")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#39354a"))

	// Auth tab bar
	tabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ece9f4")).
			Bold(true).
			Underline(true)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#565066"))

	// Toast chrome
	toastDefaultStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0f0d16")).
				Background(lipgloss.Color("#4ade80")).
				Padding(0, 1)

	toastDestructiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ece9f4")).
				Background(lipgloss.Color("#b91c1c")).
				Padding(0, 1)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878"))
)

// renderLogo renders the two-tone NOTELOFT wordmark for the header line.
func renderLogo() string {
	return accentStyle.Render("NOTE") + selectedStyle.Render("LOFT")
}
