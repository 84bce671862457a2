package tui

import "github.com/charmbracelet/lipgloss"

// Static styles for the panes
var (
	SidebarTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Bold(true).
				Padding(0, 1)

	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	PlayerInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	UpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#96CEB4"))

	DownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	focusedBorder   = lipgloss.Color("#04B575")
	unfocusedBorder = lipgloss.Color("#626262")
)
