package tui

import "charm.land/lipgloss/v2"

// Палитра
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#06B6D4")
	colorBorder    = lipgloss.Color("#374151")
	colorText      = lipgloss.Color("#F9FAFB")
	colorMuted     = lipgloss.Color("#B0B8C4")
	colorError     = lipgloss.Color("#EF4444")
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	avatarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Background(colorPrimary).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	activeItemStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	ownBubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	otherBubbleStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(0, 1)

	senderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)

	footerKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)
)
