// Package styles contains Lip Gloss style definitions shared by the studio TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	HighlightColor = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}
	SubtleColor    = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ErrorColor     = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	SuccessColor   = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
	BorderColor    = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
)

var (
	// Title renders pane headers.
	Title = lipgloss.NewStyle().Bold(true).Foreground(HighlightColor)

	// Subtle renders secondary text such as hints and metadata.
	Subtle = lipgloss.NewStyle().Foreground(SubtleColor)

	// Error renders failure messages.
	Error = lipgloss.NewStyle().Foreground(ErrorColor)

	// Success renders completion messages.
	Success = lipgloss.NewStyle().Foreground(SuccessColor)

	// Pane draws a rounded border around a content region.
	Pane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	// SelectionIndicator is the "> " marker for list selections.
	SelectionIndicator = lipgloss.NewStyle().Bold(true).Foreground(HighlightColor)

	// StatusBar renders the bottom status line.
	StatusBar = lipgloss.NewStyle().Foreground(SubtleColor).PaddingLeft(1)
)
