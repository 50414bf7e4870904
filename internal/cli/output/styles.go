package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles applied to terminal output. Off a
// terminal every style is the zero style, so rendered text passes through
// unchanged and piped output stays free of escape codes.
type Styles struct {
	Header lipgloss.Style
	Bold   lipgloss.Style
	Muted  lipgloss.Style
	Path   lipgloss.Style
	Warn   lipgloss.Style
	Error  lipgloss.Style
}

func newStyles(isTTY bool) Styles {
	if !isTTY {
		return Styles{}
	}
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:   lipgloss.NewStyle().Bold(true),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Path:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}
