package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. Adaptive colors keep the playback view readable on both
// light and dark terminals.
var (
	ColorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}

	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}

	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
)

var (
	// TitleStyle renders the top bar.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	// StatusStyle renders the bottom status line.
	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext).
			Padding(0, 1)

	// MessageStyle renders a dispatched item message.
	MessageStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// CurrentMessageStyle highlights the most recent message.
	CurrentMessageStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorInfo)

	// PlayingStyle marks active playback in the status line.
	PlayingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	// PausedStyle marks paused playback.
	PausedStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// ErrStyle renders error notices.
	ErrStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	// HelpStyle renders the short key hints.
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// PanelStyle frames the message viewport.
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBgHighlight)
)
