package tui

import "github.com/charmbracelet/lipgloss"

// The palette mirrors the plain-output commands: green for languages, cyan
// for tags, yellow for the selection cursor. Adaptive pairs keep the
// browser readable on light terminals.
var (
	colorText      = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}
	colorMuted     = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}
	colorLanguage  = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00D700"}
	colorTag       = lipgloss.AdaptiveColor{Light: "#008787", Dark: "#00D7D7"}
	colorSelection = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}
)

var (
	// StyleNormal renders untinted row text.
	StyleNormal = lipgloss.NewStyle().Foreground(colorText)

	// StyleHighlight marks the row under the cursor.
	StyleHighlight = lipgloss.NewStyle().
			Foreground(colorSelection).
			Bold(true)

	// StyleLanguage tints the language column.
	StyleLanguage = lipgloss.NewStyle().Foreground(colorLanguage)

	// StyleTag tints the bracketed tag list.
	StyleTag = lipgloss.NewStyle().Foreground(colorTag)

	// StyleHelp dims descriptions, pagination, and key hints.
	StyleHelp = lipgloss.NewStyle().Foreground(colorMuted)

	// StyleHeader is the list title.
	StyleHeader = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	// StyleBorder frames the whole browser view.
	StyleBorder = lipgloss.NewStyle().
			Foreground(colorMuted).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted)
)
