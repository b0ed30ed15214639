package display

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	accent      = lipgloss.Color("#8BC34A")
	muted       = lipgloss.Color("#8a94a6")
	destructive = lipgloss.Color("#e53935")
	warning     = lipgloss.Color("#FFC107")
	info        = lipgloss.Color("#2196F3")
)

// Styles holds the lipgloss styles used for terminal output.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Muted   lipgloss.Style
	Result  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Border  lipgloss.Style
}

// NewStyles returns the colored styles, or plain ones when color is false.
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{
			Title:   plain,
			Header:  plain,
			Cell:    plain.Padding(0, 1),
			Muted:   plain,
			Result:  plain,
			Success: plain,
			Warning: plain,
			Error:   plain,
			Border:  plain,
		}
	}
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Header: lipgloss.NewStyle().
			Foreground(info).
			Bold(true).
			Padding(0, 1),
		Cell: lipgloss.NewStyle().
			Padding(0, 1),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		Result: lipgloss.NewStyle().
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(warning).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(destructive).
			Bold(true),
		Border: lipgloss.NewStyle().
			Foreground(muted),
	}
}
