package tui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for the issue browser.
var Colors = struct {
	Primary  lipgloss.Color
	Muted    lipgloss.Color
	Error    lipgloss.Color
	Selected lipgloss.Color
	Normal   lipgloss.Color
}{
	Primary:  lipgloss.Color("#6C5CE7"), // Purple
	Muted:    lipgloss.Color("#636E72"), // Gray
	Error:    lipgloss.Color("#D63031"), // Red
	Selected: lipgloss.Color("#FFEAA7"), // Yellow
	Normal:   lipgloss.Color("#DFE6E9"), // Light gray
}

// Styles contains the lipgloss styles for the issue browser.
type Styles struct {
	App    lipgloss.Style
	Header lipgloss.Style

	ItemNormal   lipgloss.Style
	ItemSelected lipgloss.Style
	ItemDesc     lipgloss.Style

	DetailTitle lipgloss.Style
	DetailLabel lipgloss.Style
	DetailBody  lipgloss.Style

	Input    lipgloss.Style
	ErrorMsg lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),
		Header: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true).
			MarginBottom(1),

		ItemNormal:   lipgloss.NewStyle().Foreground(Colors.Normal),
		ItemSelected: lipgloss.NewStyle().Foreground(Colors.Selected).Bold(true),
		ItemDesc:     lipgloss.NewStyle().Foreground(Colors.Muted),

		DetailTitle: lipgloss.NewStyle().Foreground(Colors.Selected).Bold(true),
		DetailLabel: lipgloss.NewStyle().Foreground(Colors.Muted),
		DetailBody:  lipgloss.NewStyle().Foreground(Colors.Normal),

		Input:    lipgloss.NewStyle().Foreground(Colors.Normal),
		ErrorMsg: lipgloss.NewStyle().Foreground(Colors.Error),
		Help:     lipgloss.NewStyle().Foreground(Colors.Muted),
	}
}
