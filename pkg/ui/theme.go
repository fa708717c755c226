package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme bundles dv's colors and pre-computed styles. Styles are created once
// at startup instead of per-frame.
type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Money
	Positive lipgloss.AdaptiveColor // you are owed
	Negative lipgloss.AdaptiveColor // you owe

	// UI elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor // walkthrough highlight border
	Muted     lipgloss.AdaptiveColor

	// Styles
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	PaneTitle   lipgloss.Style
	MutedText   lipgloss.Style
	PositiveAmt lipgloss.Style
	NegativeAmt lipgloss.Style
	StatusLine  lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive).
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},

		Positive: lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}, // green
		Negative: lipgloss.AdaptiveColor{Light: "#B3003C", Dark: "#FF5555"}, // red

		Border:    lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#B35900", Dark: "#FFB86C"}, // orange
		Muted:     lipgloss.AdaptiveColor{Light: "#999999", Dark: "#6C6F85"},
	}

	t.TabActive = r.NewStyle().Bold(true).Foreground(t.Primary).Underline(true)
	t.TabInactive = r.NewStyle().Foreground(t.Secondary)
	t.PaneTitle = r.NewStyle().Bold(true).Foreground(t.Primary)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.PositiveAmt = r.NewStyle().Foreground(t.Positive)
	t.NegativeAmt = r.NewStyle().Foreground(t.Negative)
	t.StatusLine = r.NewStyle().Foreground(t.Subtext)

	return t
}
